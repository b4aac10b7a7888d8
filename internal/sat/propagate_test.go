package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestSolverState(nVars int) (arena *ClauseArena, watches *WatchIndex, assignment []LBool, level []int, reason []ClauseHandle) {
	arena = NewClauseArena()
	watches = NewWatchIndex(nVars)
	assignment = make([]LBool, nVars)
	level = make([]int, nVars)
	reason = make([]ClauseHandle, nVars)
	for i := range assignment {
		assignment[i] = Unknown
		level[i] = UnassignedLevel
		reason[i] = NoReason
	}
	return arena, watches, assignment, level, reason
}

func TestPropagatorWithChainsUnitPropagation(t *testing.T) {
	arena, watches, assignment, level, reason := newTestSolverState(3)

	// (!0 v 1): var0 true forces var1 true.
	h1 := arena.Add([]Literal{NegativeLiteral(0), PositiveLiteral(1)})
	watches.Watch(arena, h1)
	// (!1 v 2): var1 true forces var2 true.
	h2 := arena.Add([]Literal{NegativeLiteral(1), PositiveLiteral(2)})
	watches.Watch(arena, h2)

	p := NewPropagator()
	var trail []Literal

	conflict, n := p.With(PositiveLiteral(0), NoReason, 1, assignment, level, reason, &trail, watches, arena)
	if !conflict.IsNone() {
		t.Fatalf("With() returned conflict %v, want none", conflict)
	}
	if n != 3 {
		t.Errorf("With() propagated %d literals, want 3 (var0, var1, var2)", n)
	}
	if got := trail; len(got) != 3 || got[0] != PositiveLiteral(0) || got[1] != PositiveLiteral(1) || got[2] != PositiveLiteral(2) {
		t.Errorf("trail = %v, want [var0, var1, var2] in that order", got)
	}
	if reason[1] != h1 {
		t.Errorf("reason[1] = %v, want %v", reason[1], h1)
	}
	if reason[2] != h2 {
		t.Errorf("reason[2] = %v, want %v", reason[2], h2)
	}
	for v := 0; v < 3; v++ {
		if level[v] != 1 {
			t.Errorf("level[%d] = %d, want 1", v, level[v])
		}
	}
}

func TestPropagatorWithDetectsConflict(t *testing.T) {
	arena, watches, assignment, level, reason := newTestSolverState(2)

	// (!0 v 1) and (!0 v !1): deciding var0 true forces var1 both true and
	// false in the same propagation run.
	hA := arena.Add([]Literal{NegativeLiteral(0), PositiveLiteral(1)})
	watches.Watch(arena, hA)
	hB := arena.Add([]Literal{NegativeLiteral(0), NegativeLiteral(1)})
	watches.Watch(arena, hB)

	p := NewPropagator()
	var trail []Literal

	conflict, _ := p.With(PositiveLiteral(0), NoReason, 1, assignment, level, reason, &trail, watches, arena)
	if conflict != hB {
		t.Errorf("With() conflict = %v, want %v", conflict, hB)
	}
}

func TestPropagatorWithSkipsAlreadyTrueLiteral(t *testing.T) {
	arena, watches, assignment, level, reason := newTestSolverState(1)
	assignment[0] = True
	level[0] = 0

	p := NewPropagator()
	var trail []Literal

	conflict, n := p.With(PositiveLiteral(0), NoReason, 0, assignment, level, reason, &trail, watches, arena)
	if !conflict.IsNone() {
		t.Fatalf("With() on an already-true literal returned conflict %v", conflict)
	}
	if n != 0 || len(trail) != 0 {
		t.Errorf("With() on an already-true literal propagated %d literals onto trail %v, want 0/empty", n, trail)
	}
}

func TestPendingQueuePushResizesAndUnrotates(t *testing.T) {
	pl := func(v int) pendingLit { return pendingLit{lit: PositiveLiteral(v), reason: NoReason} }

	q := &pendingQueue{
		ring:  []pendingLit{pl(3), pl(4), pl(1), pl(2)},
		start: 2,
		end:   2,
		size:  4,
		mask:  0b11,
	}
	want := &pendingQueue{
		ring:  []pendingLit{pl(1), pl(2), pl(3), pl(4), pl(5), {}, {}, {}},
		start: 0,
		end:   5,
		size:  5,
		mask:  0b111,
	}

	q.push(pl(5))

	if diff := cmp.Diff(want, q, cmp.AllowUnexported(pendingQueue{}, pendingLit{}, ClauseHandle{})); diff != "" {
		t.Errorf("push() on a full, rotated queue (-want +got):\n%s", diff)
	}
}

func TestPropagatorWithReportsConflictOnPropagatedLiteral(t *testing.T) {
	arena, watches, assignment, level, reason := newTestSolverState(2)

	// (0 v 1): var0 false forces var1 true via this clause's reason handle.
	h := arena.Add([]Literal{PositiveLiteral(0), PositiveLiteral(1)})
	watches.Watch(arena, h)

	assignment[1] = False
	level[1] = 0

	p := NewPropagator()
	var trail []Literal

	// var0 false should propagate var1 true through h, which conflicts with
	// var1 already being false.
	conflict, _ := p.With(NegativeLiteral(0), NoReason, 0, assignment, level, reason, &trail, watches, arena)
	if conflict != h {
		t.Errorf("With() conflict = %v, want %v", conflict, h)
	}
}
