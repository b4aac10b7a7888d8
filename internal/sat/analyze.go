package sat

// seenState tracks, per variable, what the current conflict analysis has
// learned about it (spec.md §4.5). Indices not touched by the current
// analysis sit at seenNone; Analyze restores every touched index to
// seenNone before returning.
type seenState uint8

const (
	seenNone seenState = iota
	seenSource
	seenRequired
	seenRedundant
)

// redundantFrame is one stack frame of the iterative minimization walk: lit
// is the literal whose reason clause is being inspected, and idx is the
// index within that clause to resume from (the walk suspends a frame when it
// recurses into another literal's reason, and resumes it afterwards).
type redundantFrame struct {
	lit Literal
	idx int
}

// Analyzer implements First-UIP conflict analysis with self-subsuming
// minimization (spec.md §4.5), grounded on original_source/src/solver.rs's
// `analyze`/`lit_redundant` for the UIP walk and minimization respectively,
// and on rhartert-yass/internal/sat/solver.go's `analyze` for the
// trail-walking idiom. Its scratch buffers persist across calls to avoid
// reallocating on every conflict.
type Analyzer struct {
	seen    []seenState
	touched []int // variable ids marked non-seenNone since the last reset
	stack   []redundantFrame
	learnt  []Literal
}

// NewAnalyzer returns an analyzer with no variables registered.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Grow registers one freshly added variable.
func (a *Analyzer) Grow() {
	a.seen = append(a.seen, seenNone)
}

func (a *Analyzer) mark(v int, st seenState) {
	if a.seen[v] == seenNone {
		a.touched = append(a.touched, v)
	}
	a.seen[v] = st
}

// Analyze resolves the conflict clause conflict against the trail until it
// reaches the first unique implication point, minimizes the result, and
// reports the clause (not yet added to the arena — the caller does that) and
// the level to backtrack to. trail, level and reason are the Solver's shared
// per-assignment arrays; heap receives the activity bumps. The returned
// slice aliases the Analyzer's internal buffer and is only valid until the
// next call to Analyze.
func (a *Analyzer) Analyze(
	arena *ClauseArena,
	heap *ActivityHeap,
	trail []Literal,
	level []int,
	reason []ClauseHandle,
	decisionLevel int,
	conflict ClauseHandle,
) ([]Literal, int) {
	learnt := a.learnt[:0]
	counter := 0

	resolve := func(lits []Literal, exclude Literal) {
		for _, lit := range lits {
			if lit == exclude {
				continue
			}
			v := lit.VarID()
			if a.seen[v] != seenNone {
				continue
			}
			lv := level[v]
			if lv == 0 {
				continue
			}
			a.mark(v, seenSource)
			heap.Bump(v)
			if lv == decisionLevel {
				counter++
			} else {
				learnt = append(learnt, lit)
			}
		}
	}

	resolve(arena.Slice(conflict), InvalidLiteral)

	trailIdx := len(trail) - 1
	var pivot Literal
	for {
		for a.seen[trail[trailIdx].VarID()] == seenNone {
			trailIdx--
		}
		pivot = trail[trailIdx]
		trailIdx--

		pv := pivot.VarID()
		a.seen[pv] = seenNone
		counter--
		if counter == 0 {
			break
		}
		resolve(arena.Slice(reason[pv]), pivot)
	}

	// Self-subsuming minimization: drop any literal whose reason clause is
	// entirely subsumed by what analysis already knows. Decision literals
	// (no reason) are never redundant.
	a.stack = a.stack[:0]
	kept := learnt[:0]
	for _, lit := range learnt {
		if reason[lit.VarID()].IsNone() || !a.isRedundant(lit, arena, level, reason) {
			kept = append(kept, lit)
		}
	}
	learnt = append(kept, pivot.Opposite())

	backtrackLevel := 0
	if len(learnt) > 1 {
		max1, max2 := -1, -1
		for _, lit := range learnt {
			lv := level[lit.VarID()]
			switch {
			case lv > max1:
				max2 = max1
				max1 = lv
			case lv > max2 && lv < max1:
				max2 = lv
			}
		}
		backtrackLevel = max2
	}

	for _, v := range a.touched {
		a.seen[v] = seenNone
	}
	a.touched = a.touched[:0]
	a.learnt = learnt

	return learnt, backtrackLevel
}

// isRedundant reports whether lit's reason clause is entirely explained by
// literals already seen as Source/Redundant, at level 0, or themselves
// recursively redundant — run iteratively over a.stack to bound the depth.
// It caches its verdict in a.seen as it goes, per spec.md §4.5.
func (a *Analyzer) isRedundant(lit Literal, arena *ClauseArena, level []int, reason []ClauseHandle) bool {
	a.stack = append(a.stack[:0], redundantFrame{lit: lit, idx: 0})

	for len(a.stack) > 0 {
		top := a.stack[len(a.stack)-1]
		a.stack = a.stack[:len(a.stack)-1]

		lits := arena.Slice(reason[top.lit.VarID()])
		resumed := false
		for i := top.idx; i < len(lits); i++ {
			toCheck := lits[i]
			if toCheck == top.lit {
				continue
			}
			v := toCheck.VarID()
			if level[v] == 0 {
				continue
			}
			st := a.seen[v]
			if st == seenSource || st == seenRedundant {
				continue
			}
			if reason[v].IsNone() || st == seenRequired {
				a.mark(top.lit.VarID(), seenRequired)
				for _, f := range a.stack {
					a.mark(f.lit.VarID(), seenRequired)
				}
				return false
			}
			a.stack = append(a.stack, redundantFrame{lit: top.lit, idx: i + 1})
			a.stack = append(a.stack, redundantFrame{lit: toCheck, idx: 0})
			resumed = true
			break
		}
		if !resumed {
			a.mark(top.lit.VarID(), seenRedundant)
		}
	}
	return true
}
