package metrics

import (
	"container/ring"
	"sync"
	"time"
)

var _ Window = (*CountWindow)(nil)

type measurement struct {
	duration time.Duration
	outcome  Outcome
}

// CountWindow is a fixed-capacity sliding window. Once the capacity is
// reached, each recorded call evicts the oldest one (FIFO); the total call
// count saturates at the capacity.
type CountWindow struct {
	mu    sync.Mutex
	ring  *ring.Ring
	total aggregation
}

func NewCountWindow(size int) *CountWindow {
	if size < 1 {
		size = 1
	}

	return &CountWindow{
		ring: ring.New(size),
	}
}

func (w *CountWindow) Record(duration time.Duration, outcome Outcome) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if old, ok := w.ring.Value.(measurement); ok {
		w.total.remove(old.duration, old.outcome)
	}

	w.ring.Value = measurement{duration: duration, outcome: outcome}
	w.total.record(duration, outcome)
	w.ring = w.ring.Next()

	return w.total.snapshot()
}

func (w *CountWindow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.total.snapshot()
}

func (w *CountWindow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.ring = ring.New(w.ring.Len())
	w.total.reset()
}
