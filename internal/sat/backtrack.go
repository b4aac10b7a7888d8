package sat

// UnassignedLevel is the sentinel level of a variable with no current
// assignment, matching rhartert-yass's `s.level[v] = -1` in undoOne.
const UnassignedLevel = -1

// BacktrackTo reverts the trail to decision level target (target must be
// less than the level the trail is currently at). For every literal undone,
// it clears assignment/level/reason, saves its polarity for phase saving
// (spec.md §4.6/§9 — always on, unlike rhartert-yass's optional toggle), and
// re-enables the variable in the activity heap. trail and levelStarts are
// truncated in place.
//
// Grounded on original_source/src/solver.rs's `backtrack_to` for the
// always-on phase-save-on-undo behavior, and on rhartert-yass's
// cancel/cancelUntil/undoOne for the per-literal undo shape.
func BacktrackTo(
	target int,
	trail *[]Literal,
	levelStarts *[]int,
	assignment []LBool,
	level []int,
	reason []ClauseHandle,
	heap *ActivityHeap,
) {
	t := *trail
	start := (*levelStarts)[target]

	for i := len(t) - 1; i >= start; i-- {
		lit := t[i]
		v := lit.VarID()
		heap.SavePolarity(v, lit.IsPositive())
		assignment[v] = Unknown
		level[v] = UnassignedLevel
		reason[v] = NoReason
		heap.Enable(v)
	}

	*trail = t[:start]
	*levelStarts = (*levelStarts)[:target]
}
