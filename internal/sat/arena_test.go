package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestArenaAddAndSlice(t *testing.T) {
	a := NewClauseArena()

	h1 := a.Add([]Literal{PositiveLiteral(0), NegativeLiteral(1)})
	h2 := a.Add([]Literal{PositiveLiteral(2)})

	if diff := cmp.Diff([]Literal{PositiveLiteral(0), NegativeLiteral(1)}, a.Slice(h1)); diff != "" {
		t.Errorf("Slice(h1) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Literal{PositiveLiteral(2)}, a.Slice(h2)); diff != "" {
		t.Errorf("Slice(h2) mismatch (-want +got):\n%s", diff)
	}
	if got, want := a.NumLiveClauses(), 2; got != want {
		t.Errorf("NumLiveClauses() = %d, want %d", got, want)
	}
}

func TestArenaAddEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Add(nil) did not panic")
		}
	}()
	NewClauseArena().Add(nil)
}

func TestNoReasonIsNone(t *testing.T) {
	if !NoReason.IsNone() {
		t.Errorf("NoReason.IsNone() = false, want true")
	}
	a := NewClauseArena()
	h := a.Add([]Literal{PositiveLiteral(0)})
	if h.IsNone() {
		t.Errorf("a real handle reported IsNone() = true")
	}
}

func TestArenaCompactDropsRootSatisfiedAndFalse(t *testing.T) {
	a := NewClauseArena()

	// c0: (0 v 1 v 2), satisfied at root since var 0 is true.
	c0 := a.Add([]Literal{PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2)})
	// c1: (!0 v 1 v 2), var0 false at root drops literal 0, shrinks to (1 v 2).
	c1 := a.Add([]Literal{NegativeLiteral(0), PositiveLiteral(1), PositiveLiteral(2)})
	// c2: (!0 v 1), shrinks to unit (1).
	c2 := a.Add([]Literal{NegativeLiteral(0), PositiveLiteral(1)})

	isRootTrue := func(l Literal) bool { return l == PositiveLiteral(0) }
	isRootFalse := func(l Literal) bool { return l == NegativeLiteral(0) }

	results := a.Compact(isRootTrue, isRootFalse, []ClauseHandle{c0, c1, c2})

	if got, want := len(results), 2; got != want {
		t.Fatalf("Compact() returned %d results, want %d (c0 should be dropped)", got, want)
	}
	if results[0].First != PositiveLiteral(1) || results[0].Second != PositiveLiteral(2) {
		t.Errorf("results[0] = %+v, want (1, 2)", results[0])
	}
	if results[1].First != PositiveLiteral(1) || results[1].Second.IsValid() {
		t.Errorf("results[1] = %+v, want unit (1)", results[1])
	}
	if got, want := a.NumLiveClauses(), 2; got != want {
		t.Errorf("NumLiveClauses() after compact = %d, want %d", got, want)
	}
}

func TestArenaCompactSkipsTombstoned(t *testing.T) {
	a := NewClauseArena()
	h := a.Add([]Literal{PositiveLiteral(0), PositiveLiteral(1)})
	a.markDead(h)

	results := a.Compact(func(Literal) bool { return false }, func(Literal) bool { return false }, []ClauseHandle{h})
	if len(results) != 0 {
		t.Errorf("Compact() returned %d results for a tombstoned clause, want 0", len(results))
	}
}
