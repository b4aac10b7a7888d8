package sat

// watchEntry records that a clause is watching some literal L; other is the
// clause's second watched literal (the pair is symmetric: other's own watch
// list carries the matching entry pointing back at L).
type watchEntry struct {
	handle ClauseHandle
	other  Literal
}

// WatchIndex locates, for each newly-false literal, exactly the clauses
// whose propagation status may have changed (spec.md §4.2). It is indexed
// directly by the watched literal's raw value (entries[L] holds every
// clause currently watching L); each cell is a per-literal vector of
// (handle, other) pairs (the MiniSat "Watcher" representation, spec.md §9).
type WatchIndex struct {
	entries [][]watchEntry
}

// NewWatchIndex returns an index with slots for nVars variables (2*nVars
// literal slots).
func NewWatchIndex(nVars int) *WatchIndex {
	return &WatchIndex{entries: make([][]watchEntry, nVars*2)}
}

// Grow adds a slot pair for one freshly added variable.
func (w *WatchIndex) Grow() {
	w.entries = append(w.entries, nil, nil)
}

// addSymmetric installs the watch pair: l0's list gets an entry pointing at
// l1 (the "other" watch), and l1's list gets the matching entry pointing
// back at l0.
func (w *WatchIndex) addSymmetric(h ClauseHandle, l0, l1 Literal) {
	w.entries[l0] = append(w.entries[l0], watchEntry{handle: h, other: l1})
	w.entries[l1] = append(w.entries[l1], watchEntry{handle: h, other: l0})
}

// Watch picks the first two literals in the clause addressed by h. If the
// clause has only one literal, it returns it as a unit (ok=false). Otherwise
// it records the symmetric watch pair and returns ok=true.
func (w *WatchIndex) Watch(arena *ClauseArena, h ClauseHandle) (unit Literal, ok bool) {
	lits := arena.Slice(h)
	if len(lits) == 1 {
		return lits[0], false
	}
	w.addSymmetric(h, lits[0], lits[1])
	return InvalidLiteral, true
}

// WatchWith unconditionally installs the given pair; used by the Compactor
// after rebuilding the arena, where the two watched literals are already
// known from the compaction result.
func (w *WatchIndex) WatchWith(h ClauseHandle, l0, l1 Literal) {
	w.addSymmetric(h, l0, l1)
}

// AddLearnt is invoked immediately after the Analyzer emits a new clause.
// Exactly one literal (the asserting literal) must be unassigned; the rest
// must be false. It installs watches on (asserting, any false) and returns
// the asserting literal so the Solver can enqueue it. A length-1 clause has
// no watches to install; its sole literal is returned directly.
func (w *WatchIndex) AddLearnt(assign func(Literal) LBool, arena *ClauseArena, h ClauseHandle) Literal {
	lits := arena.Slice(h)
	if len(lits) == 1 {
		return lits[0]
	}

	asserting := InvalidLiteral
	falseLit := InvalidLiteral
	for _, lit := range lits {
		switch assign(lit) {
		case Unknown:
			asserting = lit
		case False:
			if !falseLit.IsValid() {
				falseLit = lit
			}
		}
	}
	if !asserting.IsValid() || !falseLit.IsValid() {
		panic("sat: add_learnt invariant violated: need exactly one unassigned literal and at least one false literal")
	}
	w.addSymmetric(h, asserting, falseLit)
	return asserting
}

// Set is called when l has just been assigned true, i.e. ¬l is now false.
// For every clause watched by ¬l, it either leaves the watch alone (the
// other watched literal is already true), finds a replacement watch, or
// reports the clause as unit/conflicting via emit.
func (w *WatchIndex) Set(l Literal, assign func(Literal) LBool, arena *ClauseArena, emit func(ClauseHandle, Literal)) {
	falseLit := l.Opposite()
	old := w.entries[falseLit]
	kept := old[:0]

	for _, e := range old {
		if assign(e.other) == True {
			kept = append(kept, e)
			continue
		}

		lits := arena.Slice(e.handle)
		trueLit := InvalidLiteral
		unassignedLit := InvalidLiteral
		for _, lit := range lits {
			if lit == e.other || lit == falseLit {
				continue
			}
			switch assign(lit) {
			case True:
				trueLit = lit
			case Unknown:
				if !unassignedLit.IsValid() {
					unassignedLit = lit
				}
			}
		}

		replacement := InvalidLiteral
		switch {
		case trueLit.IsValid():
			replacement = trueLit
		case unassignedLit.IsValid():
			replacement = unassignedLit
		}

		if replacement.IsValid() {
			w.entries[replacement] = append(w.entries[replacement], watchEntry{handle: e.handle, other: e.other})
			w.replaceOther(e.other, e.handle, replacement)
			continue
		}

		kept = append(kept, e)
		emit(e.handle, e.other)
	}

	w.entries[falseLit] = kept
}

// replaceOther updates the symmetric entry on literal other's watch list so
// that it now points at clause h with the new other-watch newOther.
func (w *WatchIndex) replaceOther(other Literal, h ClauseHandle, newOther Literal) {
	list := w.entries[other]
	for i := range list {
		if list[i].handle == h {
			list[i].other = newOther
			return
		}
	}
	panic("sat: watch index symmetry violated: missing matching entry")
}

// RemoveSatisfied is a level-0-only memory reclamation pass: for every
// literal that is true at the root, its entire watch list is dropped; for
// every other literal, entries whose "other" watcher is true are dropped.
// Clauses removed here will also be removed by the next Compactor pass.
func (w *WatchIndex) RemoveSatisfied(assign func(Literal) LBool) {
	for lit := range w.entries {
		l := Literal(lit)
		if assign(l) == True {
			w.entries[lit] = nil
			continue
		}
		list := w.entries[lit]
		kept := list[:0]
		for _, e := range list {
			if assign(e.other) != True {
				kept = append(kept, e)
			}
		}
		w.entries[lit] = kept
	}
}

// DrainedEntry is one deduplicated (L, other, handle) triple yielded by
// Drain.
type DrainedEntry struct {
	L      Literal
	Other  Literal
	Handle ClauseHandle
}

// Drain yields (L, other, handle) for every watch entry and empties the
// index; used by the Compactor. Each clause appears twice in the raw index
// (once per watch) — Drain deduplicates by keeping only the entry where
// L < other (total order on literal raw values).
func (w *WatchIndex) Drain() []DrainedEntry {
	out := make([]DrainedEntry, 0, len(w.entries))
	for lit, list := range w.entries {
		l := Literal(lit)
		for _, e := range list {
			if l.Raw() < e.other.Raw() {
				out = append(out, DrainedEntry{L: l, Other: e.other, Handle: e.handle})
			}
		}
		w.entries[lit] = nil
	}
	return out
}
