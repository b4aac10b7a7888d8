package sat

// ClauseHandle is an opaque (offset, length) pair addressing a contiguous
// span of literals in a ClauseArena. Handles are comparable and hashable; a
// total order by offset suffices since clauses never overlap. A handle
// issued before a compaction is invalid afterwards unless re-issued by the
// compactor.
type ClauseHandle struct {
	offset int32
	length int32
}

// Len returns the number of literals addressed by the handle.
func (h ClauseHandle) Len() int {
	return int(h.length)
}

// NoReason is the zero-value ClauseHandle, used as the sentinel "no reason"
// (a decision literal). Add never returns a handle with length 0, so this is
// unambiguous.
var NoReason ClauseHandle

// IsNone reports whether h is the NoReason sentinel.
func (h ClauseHandle) IsNone() bool {
	return h.length == 0
}

// ClauseArena is a single growable sequence of literals. A clause occupies
// a half-open slice [offset, offset+length) of the arena. Writes are
// append-only between compactions; the arena is the sole owner of clause
// literal storage, every other component refers to clauses by handle.
type ClauseArena struct {
	literals []Literal

	// scratch is reused across compactions to avoid reallocating the old
	// live buffer every time; it holds the pre-compaction contents while
	// literals is rebuilt in place.
	scratch []Literal

	// liveClauses is the number of clauses currently addressable; tombstoned
	// clauses are not counted. It is incremented by Add, decremented by
	// markDead, and recounted from zero by Compact.
	liveClauses int
}

// NewClauseArena returns an empty arena.
func NewClauseArena() *ClauseArena {
	return &ClauseArena{}
}

// Add appends lits verbatim to the arena and returns a handle addressing
// them. lits must not be empty.
func (a *ClauseArena) Add(lits []Literal) ClauseHandle {
	if len(lits) == 0 {
		panic("sat: cannot add an empty clause to the arena")
	}
	offset := len(a.literals)
	a.literals = append(a.literals, lits...)
	a.liveClauses++
	return ClauseHandle{offset: int32(offset), length: int32(len(lits))}
}

// Slice returns a read-only view of the handle's literals. The returned
// slice aliases the arena's backing storage and is only valid until the
// next compaction.
func (a *ClauseArena) Slice(h ClauseHandle) []Literal {
	return a.literals[h.offset : h.offset+h.length]
}

// NumLiveClauses returns the number of clauses the arena currently
// addresses (tombstoned clauses are excluded as soon as they are marked).
func (a *ClauseArena) NumLiveClauses() int {
	return a.liveClauses
}

// markDead tombstones the clause at h by overwriting its first literal with
// the invalid sentinel. The rest of the clause's literals are left
// untouched (and unreachable) until the next compaction reclaims the space.
func (a *ClauseArena) markDead(h ClauseHandle) {
	a.literals[h.offset] = InvalidLiteral
	a.liveClauses--
}

// CompactResult describes one surviving clause after a compaction pass.
type CompactResult struct {
	Handle ClauseHandle
	First  Literal
	// Second is InvalidLiteral if the clause shrank to a single literal
	// after false-literal removal (the caller must enqueue it as a fact).
	Second Literal
}

// Compact rebuilds the arena, keeping only clauses named by handles that:
//   - have not been tombstoned via markDead, and
//   - contain no literal assigned true at level 0 (assignment[var] == true
//     with level[var] == 0 is a root-level fact, so the whole clause is
//     satisfied and can be dropped).
//
// Literals assigned false at level 0 are dropped from surviving clauses.
// A clause that would shrink to zero literals is a contradiction and is
// reported as a result whose First and Second are both InvalidLiteral; the
// caller (the
// Compactor, spec.md §4.8) is expected to treat that as a fatal internal
// error since root propagation should have already ruled it out.
//
// Implementation swaps the live buffer with a scratch buffer and rebuilds
// the live buffer by copying kept clauses, an O(total literals) pass.
func (a *ClauseArena) Compact(isRootTrue, isRootFalse func(Literal) bool, handles []ClauseHandle) []CompactResult {
	a.literals, a.scratch = a.scratch[:0], a.literals

	results := make([]CompactResult, 0, len(handles))
	a.liveClauses = 0

	for _, h := range handles {
		old := a.scratch[h.offset : h.offset+h.length]
		if !old[0].IsValid() {
			continue // tombstoned
		}

		satisfied := false
		newOffset := len(a.literals)
		for _, lit := range old {
			if isRootTrue(lit) {
				satisfied = true
				break
			}
			if isRootFalse(lit) {
				continue
			}
			a.literals = append(a.literals, lit)
		}
		if satisfied {
			a.literals = a.literals[:newOffset]
			continue
		}

		kept := a.literals[newOffset:]
		nh := ClauseHandle{offset: int32(newOffset), length: int32(len(kept))}
		a.liveClauses++

		switch len(kept) {
		case 0:
			results = append(results, CompactResult{Handle: nh, First: InvalidLiteral, Second: InvalidLiteral})
		case 1:
			results = append(results, CompactResult{Handle: nh, First: kept[0], Second: InvalidLiteral})
		default:
			results = append(results, CompactResult{Handle: nh, First: kept[0], Second: kept[1]})
		}
	}

	return results
}
