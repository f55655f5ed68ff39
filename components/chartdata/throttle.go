package chartdata

import (
	"sync"
	"time"
)

// Throttle coalesces rapid updates with a trailing-edge policy: a burst of
// pushes inside one interval yields exactly one emission, carrying the most
// recent value, once the stream goes quiet. Intermediate values are dropped,
// not queued.
//
// Stop must be called on teardown so the pending timer does not hold a
// reference to the callback and whatever state it closes over.
type Throttle[T any] struct {
	interval time.Duration
	emit     func(T)

	mu      sync.Mutex
	timer   *time.Timer
	latest  T
	pending bool
	stopped bool
}

// NewThrottle builds a throttle that delivers coalesced values to emit.
func NewThrottle[T any](interval time.Duration, emit func(T)) *Throttle[T] {
	return &Throttle[T]{interval: interval, emit: emit}
}

// Push records the latest value and re-arms the quiet-period timer. A value
// arriving before the window elapses implicitly cancels the previous one.
func (t *Throttle[T]) Push(value T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.latest = value
	t.pending = true
	if t.timer == nil {
		t.timer = time.AfterFunc(t.interval, t.fire)
	} else {
		t.timer.Reset(t.interval)
	}
}

// Flush emits the pending value immediately, if any.
func (t *Throttle[T]) Flush() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.mu.Unlock()
	t.fire()
}

// Stop cancels any pending emission. The throttle accepts no further pushes.
func (t *Throttle[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.pending = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Throttle[T]) fire() {
	t.mu.Lock()
	if t.stopped || !t.pending {
		t.mu.Unlock()
		return
	}
	value := t.latest
	t.pending = false
	t.timer = nil
	emit := t.emit
	t.mu.Unlock()

	if emit != nil {
		emit(value)
	}
}
