package sat

import "log"

// Compact runs the level-0 clause database compaction pass (spec.md §4.8):
// drain the watch index to one handle per clause, rebuild the arena keeping
// only clauses that survive root-level simplification, and re-watch the
// survivors. It returns literals that must be enqueued as new root-level
// facts (clauses that shrank to a single literal during compaction).
//
// Grounded on original_source/src/solver.rs's compaction block in `solve`
// (drain → database.compact → re-watch) and Database::compact.
func Compact(arena *ClauseArena, watches *WatchIndex, assignment []LBool, level []int) []Literal {
	drained := watches.Drain()
	handles := make([]ClauseHandle, len(drained))
	for i, d := range drained {
		handles[i] = d.Handle
	}

	isRootTrue := func(l Literal) bool {
		v := l.VarID()
		return level[v] == 0 && litValue(assignment, l) == True
	}
	isRootFalse := func(l Literal) bool {
		v := l.VarID()
		return level[v] == 0 && litValue(assignment, l) == False
	}

	results := arena.Compact(isRootTrue, isRootFalse, handles)

	var units []Literal
	for _, r := range results {
		switch {
		case !r.First.IsValid():
			log.Panicf("sat: compaction produced an empty clause; root propagation should have ruled this out")
		case !r.Second.IsValid():
			units = append(units, r.First)
		default:
			watches.WatchWith(r.Handle, r.First, r.Second)
		}
	}
	return units
}
