// Package dimacs is the external-collaborator surface for the solver core:
// it reads the DIMACS CNF wire format and models files, and is explicitly
// outside the "hard part" the solver package implements. Adapted from
// rhartert-yass/parsers, wrapping the same github.com/rhartert/dimacs
// ReadBuilder the teacher uses.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/elantha/satarena/internal/sat"
)

// SATSolver is the subset of *sat.Solver that loading a CNF instance needs.
type SATSolver interface {
	AddVariable() int
	AddClause(lits []sat.Literal) bool
}

func open(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// Load parses the DIMACS CNF file at filename and loads its formula into
// solver. gzipped indicates the file is gzip-compressed. It returns false if
// the instance is unsatisfiable by construction (AddClause reports a root-
// level conflict, e.g. an empty clause).
func Load(filename string, gzipped bool, solver SATSolver) (bool, error) {
	r, err := open(filename, gzipped)
	if err != nil {
		return false, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	b := &builder{solver: solver, ok: true}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return false, fmt.Errorf("error parsing %q: %w", filename, err)
	}
	return b.ok, nil
}

// builder adapts a SATSolver to dimacs.Builder.
type builder struct {
	solver SATSolver
	ok     bool
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacs: unsupported problem type %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(raw []int) error {
	lits := make([]sat.Literal, len(raw))
	for i, l := range raw {
		if l < 0 {
			lits[i] = sat.NegativeLiteral(-l - 1)
		} else {
			lits[i] = sat.PositiveLiteral(l - 1)
		}
	}
	if !b.solver.AddClause(lits) {
		b.ok = false
	}
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil
}

// ReadModels parses a witness file (one satisfying assignment per line, as
// signed DIMACS literals terminated by 0) into the list of boolean models
// it encodes, for cross-checking a solver's output against known-good
// witnesses in tests.
func ReadModels(filename string) ([][]bool, error) {
	r, err := open(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", filename, err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("dimacs: model files should not have problem lines")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(raw []int) error {
	model := make([]bool, len(raw))
	for i, l := range raw {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
