package chartdata

import "sync"

type reducerKey struct {
	head      *Point
	length    int
	maxPoints int
	strategy  Strategy
	axisKey   string
}

// Reducer memoizes Sample on the identity of its inputs so a series is only
// re-reduced when the slice, cap, or strategy actually change. Safe for
// concurrent use.
type Reducer struct {
	mu    sync.Mutex
	valid bool
	key   reducerKey
	out   []Point
}

// Sample returns the bounded series, recomputing only when (data, maxPoints,
// strategy) identity differs from the previous call.
func (r *Reducer) Sample(data []Point, maxPoints int, strategy Strategy) []Point {
	return r.SampleAxis(data, maxPoints, strategy, "")
}

// SampleAxis is the memoized SampleAxis.
func (r *Reducer) SampleAxis(data []Point, maxPoints int, strategy Strategy, axisKey string) []Point {
	key := reducerKey{
		length:    len(data),
		maxPoints: maxPoints,
		strategy:  strategy,
		axisKey:   axisKey,
	}
	if len(data) > 0 {
		key.head = &data[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.valid && r.key == key {
		return r.out
	}
	r.out = SampleAxis(data, maxPoints, strategy, axisKey)
	r.key = key
	r.valid = true
	return r.out
}

// Invalidate drops the memoized result.
func (r *Reducer) Invalidate() {
	r.mu.Lock()
	r.valid = false
	r.out = nil
	r.mu.Unlock()
}
