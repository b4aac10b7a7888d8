package sat

import (
	"log"
	"time"
)

// Options configures a Solver's tunable parameters, renamed from the
// teacher's ClauseDecay/VariableDecay/MaxConflicts/Timeout/PhaseSaving to
// match this package's vocabulary (phase saving is no longer a toggle, see
// backtrack.go).
type Options struct {
	VarDecay         float64
	RestartBase      uint64
	RestartInc       uint64
	LearntSizeFactor float64
	LearntSizeInc    float64
	MaxConflicts     int64
	Timeout          time.Duration
}

// DefaultOptions mirrors the constants at the top of
// original_source/src/solver.rs (RESTART_BASE, RESTART_INC,
// LEARNTSIZE_FACTOR, LEARNTSIZE_INC) and the teacher's variable decay.
var DefaultOptions = Options{
	VarDecay:         defaultDecayRate,
	RestartBase:      defaultRestartBase,
	RestartInc:       defaultRestartInc,
	LearntSizeFactor: 1.0 / 3.0,
	LearntSizeInc:    1.3,
	MaxConflicts:     -1,
	Timeout:          -1,
}

// Stats collects search counters, grounded on original_source/src/stats.rs
// and the teacher's TotalConflicts/TotalRestarts fields.
type Stats struct {
	TotalConflicts      int64
	TotalRestarts       int64
	TotalPropagations   int64
	TotalLearntLiterals int64

	// LearntSize is the trailing average size of learnt clauses.
	LearntSize EMA
}

// Solver is a single self-contained CDCL instance (spec.md §5: no global
// mutable state, lifetime bounded by the caller). It owns the clause arena,
// watch index, activity heap, and every per-variable array; Propagator and
// Analyzer are handed read/write access to those arrays as explicit
// parameters on each call (spec.md §9's "pass immutable views plus a
// mutable sink function"), rather than holding their own copies.
type Solver struct {
	opts Options

	arena    *ClauseArena
	watches  *WatchIndex
	heap     *ActivityHeap
	analyzer *Analyzer
	prop     *Propagator
	restart  *RestartController

	assignment []LBool
	level      []int
	reason     []ClauseHandle

	trail       []Literal
	levelStarts []int

	unsat       bool
	learntCount int
	maxLearnts  float64

	timedOut  bool
	startTime time.Time

	Stats Stats
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// learntSizeEMADecay smooths Stats.LearntSize over roughly the last few
// dozen learnt clauses.
const learntSizeEMADecay = 0.95

// NewSolver returns an empty solver (no variables, no clauses) configured
// with ops.
func NewSolver(ops Options) *Solver {
	return &Solver{
		opts:     ops,
		arena:    NewClauseArena(),
		watches:  NewWatchIndex(0),
		heap:     NewActivityHeap(ops.VarDecay),
		analyzer: NewAnalyzer(),
		prop:     NewPropagator(),
		restart:  NewRestartController(ops.RestartBase, ops.RestartInc),
		Stats:    Stats{LearntSize: NewEMA(learntSizeEMADecay)},
	}
}

// NumVariables returns the number of variables registered so far.
func (s *Solver) NumVariables() int {
	return len(s.assignment)
}

// currentLevel is the number of decisions currently open.
func (s *Solver) currentLevel() int {
	return len(s.levelStarts)
}

func (s *Solver) litValue(l Literal) LBool {
	return litValue(s.assignment, l)
}

func (s *Solver) hasUnassignedVars() bool {
	return len(s.trail) < len(s.assignment)
}

// AddVariable registers a new variable, unassigned, at activity zero, and
// returns its id.
func (s *Solver) AddVariable() int {
	v := len(s.assignment)
	s.assignment = append(s.assignment, Unknown)
	s.level = append(s.level, UnassignedLevel)
	s.reason = append(s.reason, NoReason)
	s.watches.Grow()
	s.heap.AddVar()
	s.analyzer.Grow()
	return v
}

// AddClause adds a clause at the root level and returns false if doing so
// proves the instance unsatisfiable (an empty clause, or a conflict
// discovered while propagating a resulting unit clause). It must only be
// called before Solve (or again after Clear); spec.md §6 treats an empty
// clause as immediate UNSAT rather than malformed input. Duplicate literals
// are collapsed (first occurrence kept) before the clause is stored.
func (s *Solver) AddClause(lits []Literal) bool {
	if s.unsat {
		return false
	}
	if len(lits) == 0 {
		s.unsat = true
		return false
	}

	deduped := make([]Literal, 0, len(lits))
	for _, l := range lits {
		dup := false
		for _, d := range deduped {
			if d == l {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, l)
		}
	}
	lits = deduped

	h := s.arena.Add(lits)
	unit, ok := s.watches.Watch(s.arena, h)
	if ok {
		return true
	}

	conflict, n := s.prop.With(unit, h, 0, s.assignment, s.level, s.reason, &s.trail, s.watches, s.arena)
	s.Stats.TotalPropagations += int64(n)
	if !conflict.IsNone() {
		s.unsat = true
		return false
	}
	return true
}

// shouldStop reports whether an optional resource bound (MaxConflicts,
// Timeout) has tripped. Disabled (the DefaultOptions case) when both are
// negative.
func (s *Solver) shouldStop() bool {
	if s.opts.MaxConflicts >= 0 && s.Stats.TotalConflicts >= s.opts.MaxConflicts {
		return true
	}
	if s.opts.Timeout >= 0 && time.Since(s.startTime) >= s.opts.Timeout {
		return true
	}
	return false
}

// TimedOut reports whether the last Solve call returned false because a
// resource bound tripped rather than because the instance is UNSAT. This is
// the extension point spec.md §5 mentions ("not a spec requirement"); with
// DefaultOptions it is never true.
func (s *Solver) TimedOut() bool {
	return s.timedOut
}

// Solve runs the CDCL main loop (spec.md §4.9) to completion: decide, then
// propagate/analyze/backtrack until either every variable is assigned (SAT)
// or a conflict survives at level 0 (UNSAT).
func (s *Solver) Solve() bool {
	if s.unsat {
		return false
	}

	s.timedOut = false
	s.startTime = time.Now()
	s.maxLearnts = float64(s.arena.NumLiveClauses()) * s.opts.LearntSizeFactor

	for s.hasUnassignedVars() {
		if s.shouldStop() {
			s.timedOut = true
			return false
		}

		s.levelStarts = append(s.levelStarts, len(s.trail))
		lit := s.heap.NextDecision(func(v int) bool { return s.assignment[v] != Unknown })

		conflict, n := s.prop.With(lit, NoReason, s.currentLevel(), s.assignment, s.level, s.reason, &s.trail, s.watches, s.arena)
		s.Stats.TotalPropagations += int64(n)

		for !conflict.IsNone() {
			s.restart.MarkConflict()
			s.Stats.TotalConflicts++

			if s.currentLevel() == 0 {
				s.unsat = true
				return false
			}

			learnt, btl := s.analyzer.Analyze(s.arena, s.heap, s.trail, s.level, s.reason, s.currentLevel(), conflict)
			if btl >= s.currentLevel() {
				log.Panicf("sat: analyze returned backtrack level %d not below current level %d", btl, s.currentLevel())
			}

			BacktrackTo(btl, &s.trail, &s.levelStarts, s.assignment, s.level, s.reason, s.heap)

			if len(learnt) == 0 {
				s.unsat = true
				return false
			}
			s.Stats.TotalLearntLiterals += int64(len(learnt))
			s.Stats.LearntSize.Add(float64(len(learnt)))

			h := s.arena.Add(learnt)
			s.learntCount++
			assertLit := s.watches.AddLearnt(s.litValue, s.arena, h)

			s.heap.Decay()

			conflict, n = s.prop.With(assertLit, h, s.currentLevel(), s.assignment, s.level, s.reason, &s.trail, s.watches, s.arena)
			s.Stats.TotalPropagations += int64(n)
		}

		if s.restart.SuggestsRestart() {
			s.Stats.TotalRestarts++
			s.restart.Restart()
			BacktrackTo(0, &s.trail, &s.levelStarts, s.assignment, s.level, s.reason, s.heap)
		}

		if s.currentLevel() == 0 {
			s.watches.RemoveSatisfied(s.litValue)

			if float64(s.learntCount) > s.maxLearnts {
				units := Compact(s.arena, s.watches, s.assignment, s.level)
				for _, u := range units {
					if s.litValue(u) == False {
						s.unsat = true
						return false
					}
					conflict, n := s.prop.With(u, NoReason, 0, s.assignment, s.level, s.reason, &s.trail, s.watches, s.arena)
					s.Stats.TotalPropagations += int64(n)
					if !conflict.IsNone() {
						s.unsat = true
						return false
					}
				}
				s.maxLearnts *= s.opts.LearntSizeInc
			}
		}
	}

	return true
}

// FinalAssignment returns one boolean per variable. It panics if any
// variable is still unassigned; the result is a model only after Solve
// returned true (spec.md §6).
func (s *Solver) FinalAssignment() []bool {
	if s.hasUnassignedVars() {
		log.Panicf("sat: FinalAssignment called with unassigned variables outstanding")
	}
	model := make([]bool, len(s.assignment))
	for v, val := range s.assignment {
		model[v] = val.Bool()
	}
	return model
}

// Clear resets the solver to the state NewSolver(ops) would produce, with
// the same Options, so the value can be reused for a new instance (spec.md
// §6: "Idempotent only across clear()"), mirroring
// original_source/src/solver.rs's `clear`.
func (s *Solver) Clear() {
	ops := s.opts
	*s = Solver{opts: ops}
	s.arena = NewClauseArena()
	s.watches = NewWatchIndex(0)
	s.heap = NewActivityHeap(ops.VarDecay)
	s.analyzer = NewAnalyzer()
	s.prop = NewPropagator()
	s.restart = NewRestartController(ops.RestartBase, ops.RestartInc)
	s.Stats = Stats{LearntSize: NewEMA(learntSizeEMADecay)}
}
