package input

import (
	"sync"
	"time"

	"github.com/alban-care/snake-game/pkg/clock"
)

// Throttler rate-limits calls to fn. The first call in a window runs at once;
// calls arriving inside the window overwrite a single pending value, which
// is replayed when the window closes and opens the next window.
type Throttler[T any] struct {
	clock  clock.Clock
	window time.Duration
	fn     func(T)

	mu         sync.Mutex
	throttled  bool
	pending    T
	hasPending bool
	timer      clock.Timer
	stopped    bool
}

// NewThrottler wraps fn with a window fixed at construction.
func NewThrottler[T any](c clock.Clock, window time.Duration, fn func(T)) *Throttler[T] {
	return &Throttler[T]{clock: c, window: window, fn: fn}
}

// Call invokes fn now or defers v to the end of the current window.
func (t *Throttler[T]) Call(v T) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.throttled {
		t.pending = v
		t.hasPending = true
		t.mu.Unlock()
		return
	}
	t.throttled = true
	t.timer = t.clock.AfterFunc(t.window, t.release)
	t.mu.Unlock()

	t.fn(v)
}

func (t *Throttler[T]) release() {
	t.mu.Lock()
	t.timer = nil
	if !t.hasPending || t.stopped {
		t.throttled = false
		t.mu.Unlock()
		return
	}
	v := t.pending
	var zero T
	t.pending = zero
	t.hasPending = false
	// Claim the next window before unlocking; a concurrent Call queues
	// behind the replayed value.
	t.timer = t.clock.AfterFunc(t.window, t.release)
	t.mu.Unlock()

	t.fn(v)
}

// Stop drops any pending call and ignores all later ones.
func (t *Throttler[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.hasPending = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
