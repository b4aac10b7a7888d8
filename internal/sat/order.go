package sat

import (
	"log"

	"github.com/rhartert/yagh"
)

// ActivityHeap is the Variable-Activity Heap (spec.md §4.3): a max-priority
// queue over variables with floating activities that decay over time
// (VSIDS). Ties are broken deterministically by the heap's own insertion
// order (variable id), since yagh.IntMap breaks ties by key.
type ActivityHeap struct {
	// order is a min-heap over negated activities, so that Pop returns the
	// variable with the highest activity.
	order *yagh.IntMap[float64]

	activities []float64 // in [0, 1e100)
	inc        float64   // in (0, 1e100)
	decayRate  float64   // in (1, ...], default 1.2 per spec.md §4.3

	// polarities holds the last-assigned value of each variable (phase
	// saving, spec.md §4.6/§9). Seeded to false, so the first decision of a
	// variable picks ¬var.
	polarities []bool
}

// defaultDecayRate is the spec's default variable decay (spec.md §4.3).
const defaultDecayRate = 1.2

// NewActivityHeap returns an empty heap that decays activities by decayRate
// on every Decay call.
func NewActivityHeap(decayRate float64) *ActivityHeap {
	return &ActivityHeap{
		order:     yagh.New[float64](0),
		inc:       1,
		decayRate: decayRate,
	}
}

// AddVar registers a new variable at activity zero, enabled and with its
// phase seeded to false.
func (h *ActivityHeap) AddVar() {
	v := len(h.activities)
	h.activities = append(h.activities, 0)
	h.polarities = append(h.polarities, false)
	h.order.GrowBy(1)
	h.order.Put(v, 0)
}

// Bump increases var's activity by the current increment. If the activity
// would overflow the rescale threshold, every activity (and the increment)
// is rescaled down, preserving relative order (spec.md §4.3 "Equivalent
// implementation").
func (h *ActivityHeap) Bump(v int) {
	h.activities[v] += h.inc
	if h.order.Contains(v) {
		h.order.Put(v, -h.activities[v])
	}
	if h.activities[v] > 1e100 {
		h.rescale()
	}
}

// Decay scales the increment up by decayRate, which is mathematically
// equivalent to dividing every activity by decayRate but far cheaper.
func (h *ActivityHeap) Decay() {
	h.inc *= h.decayRate
	if h.inc > 1e100 {
		h.rescale()
	}
}

func (h *ActivityHeap) rescale() {
	h.inc *= 1e-100
	for v, a := range h.activities {
		na := a * 1e-100
		h.activities[v] = na
		if h.order.Contains(v) {
			h.order.Put(v, -na)
		}
	}
}

// TakeHighest removes and returns the highest-activity variable; it will
// not be returned again until Enable is called for it.
func (h *ActivityHeap) TakeHighest() (int, bool) {
	item, ok := h.order.Pop()
	if !ok {
		return 0, false
	}
	return item.Elem, true
}

// Enable returns a previously disabled variable to the heap at its current
// activity.
func (h *ActivityHeap) Enable(v int) {
	h.order.Put(v, -h.activities[v])
}

// SavePolarity records the last value assigned to v, used by NextDecision to
// pick the decision's polarity (phase saving).
func (h *ActivityHeap) SavePolarity(v int, val bool) {
	h.polarities[v] = val
}

// NextDecision repeatedly takes the highest-activity variable until it
// finds one that isAssigned reports as unassigned, discarding (without
// re-enabling) every already-assigned variable it encounters along the way
// — those became stale because they were assigned by propagation rather
// than through TakeHighest, so Enable was never called for them. It panics
// if the heap is exhausted, since the driver only calls this while
// spec.md's "unassigned variable" loop condition holds.
func (h *ActivityHeap) NextDecision(isAssigned func(int) bool) Literal {
	for {
		v, ok := h.TakeHighest()
		if !ok {
			log.Panicf("sat: activity heap exhausted with an unassigned variable outstanding")
		}
		if isAssigned(v) {
			continue
		}
		if h.polarities[v] {
			return PositiveLiteral(v)
		}
		return NegativeLiteral(v)
	}
}
