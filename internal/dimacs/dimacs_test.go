package dimacs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elantha/satarena/internal/sat"
)

func writeCNF(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.cnf")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadSatisfiableInstance(t *testing.T) {
	path := writeCNF(t, "c a trivial instance\np cnf 3 3\n1 2 0\n-1 3 0\n-2 -3 0\n")

	s := sat.NewDefaultSolver()
	loaded, err := Load(path, false, s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded {
		t.Fatalf("Load() reported an immediate root conflict for a satisfiable instance")
	}
	if s.NumVariables() != 3 {
		t.Errorf("NumVariables() = %d, want 3", s.NumVariables())
	}
	if !s.Solve() {
		t.Fatalf("Solve() = false, want true")
	}
}

func TestLoadImmediateConflict(t *testing.T) {
	path := writeCNF(t, "p cnf 1 2\n1 0\n-1 0\n")

	s := sat.NewDefaultSolver()
	loaded, err := Load(path, false, s)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded {
		t.Fatalf("Load() = true, want false (unit clauses 1 and -1 conflict at the root)")
	}
}

func TestLoadRejectsUnsupportedProblemType(t *testing.T) {
	path := writeCNF(t, "p sat 1\n")

	s := sat.NewDefaultSolver()
	if _, err := Load(path, false, s); err == nil {
		t.Fatalf("Load() on a non-cnf problem line returned no error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := sat.NewDefaultSolver()
	if _, err := Load(filepath.Join(t.TempDir(), "missing.cnf"), false, s); err == nil {
		t.Fatalf("Load() on a missing file returned no error")
	}
}

func TestReadModels(t *testing.T) {
	path := writeCNF(t, "1 -2 3 0\n-1 2 -3 0\n")

	models, err := ReadModels(path)
	if err != nil {
		t.Fatalf("ReadModels: %v", err)
	}
	want := [][]bool{
		{true, false, true},
		{false, true, false},
	}
	if len(models) != len(want) {
		t.Fatalf("ReadModels() returned %d models, want %d", len(models), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if models[i][j] != want[i][j] {
				t.Errorf("models[%d][%d] = %v, want %v", i, j, models[i][j], want[i][j])
			}
		}
	}
}
