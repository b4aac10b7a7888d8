package sat

// luby returns the i-th element (0-indexed) of the base-y Luby sequence:
// find the smallest k with 2^k-1 > i; if 2^k-1 == i+1 return y^(k-1),
// otherwise recurse on i - 2^(k-1) + 1. Written iteratively, following the
// doubling-search shape of original_source/src/luby.rs's `luby`.
func luby(i, y uint64) uint64 {
	size := uint64(1)
	seq := uint64(0)
	for size < i+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != i {
		size = (size - 1) >> 1
		seq--
		i %= size
	}
	return ipow(y, seq)
}

func ipow(base, exp uint64) uint64 {
	result := uint64(1)
	for ; exp > 0; exp-- {
		result *= base
	}
	return result
}

// RestartController schedules restarts on a Luby sequence over conflicts
// (spec.md §4.7). Interval before restart #n is base * luby(n, inc).
type RestartController struct {
	base uint64
	inc  uint64

	numRestarts uint64
	remaining   uint64
}

// defaultRestartBase and defaultRestartInc are the spec's defaults.
const (
	defaultRestartBase = 100
	defaultRestartInc  = 2
)

// NewRestartController returns a controller with the given base interval
// (in conflicts) and Luby growth factor.
func NewRestartController(base, inc uint64) *RestartController {
	return &RestartController{
		base:      base,
		inc:       inc,
		remaining: base * luby(0, inc),
	}
}

// MarkConflict decrements the remaining-conflicts counter, saturating at 0.
func (r *RestartController) MarkConflict() {
	if r.remaining > 0 {
		r.remaining--
	}
}

// SuggestsRestart reports whether the current interval has elapsed.
func (r *RestartController) SuggestsRestart() bool {
	return r.remaining == 0
}

// Restart schedules the next interval. The caller is responsible for
// actually backtracking to level 0.
func (r *RestartController) Restart() {
	r.numRestarts++
	r.remaining = r.base * luby(r.numRestarts, r.inc)
}

// NumRestarts returns how many restarts have been executed so far.
func (r *RestartController) NumRestarts() uint64 {
	return r.numRestarts
}
