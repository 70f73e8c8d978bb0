package metrics

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var _ Window = (*TimeWindow)(nil)

type bucket struct {
	epochSecond int64
	aggregation
}

// TimeWindow is a time-bucketed sliding window spanning a fixed number of
// seconds, one bucket per epoch second. Buckets older than the span are
// evicted wholesale as time advances; the total call count reflects only
// live buckets.
type TimeWindow struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	buckets []bucket
	head    int
	total   aggregation
}

func NewTimeWindow(windowSizeSeconds int) *TimeWindow {
	return NewTimeWindowWithClock(windowSizeSeconds, clockwork.NewRealClock())
}

// NewTimeWindowWithClock injects the clock used for bucket rotation. Tests
// pass a clockwork.FakeClock to drive eviction deterministically.
func NewTimeWindowWithClock(windowSizeSeconds int, clock clockwork.Clock) *TimeWindow {
	if windowSizeSeconds < 1 {
		windowSizeSeconds = 1
	}

	w := &TimeWindow{
		clock:   clock,
		buckets: make([]bucket, windowSizeSeconds),
	}

	epoch := clock.Now().Unix()
	for i := range w.buckets {
		// Pre-date the buckets so they are all expired relative to now.
		w.buckets[i].epochSecond = epoch - int64(windowSizeSeconds-i)
	}
	w.buckets[w.head].epochSecond = epoch

	return w
}

func (w *TimeWindow) Record(duration time.Duration, outcome Outcome) Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := w.advanceToCurrentSecond()
	b.record(duration, outcome)
	w.total.record(duration, outcome)

	return w.total.snapshot()
}

func (w *TimeWindow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.advanceToCurrentSecond()

	return w.total.snapshot()
}

func (w *TimeWindow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	epoch := w.clock.Now().Unix()
	for i := range w.buckets {
		w.buckets[i].reset()
		w.buckets[i].epochSecond = epoch - int64(len(w.buckets)-i)
	}
	w.head = 0
	w.buckets[w.head].epochSecond = epoch
	w.total.reset()
}

// advanceToCurrentSecond rotates the head forward to the bucket for the
// current epoch second, evicting every bucket it passes over, and returns
// the current bucket. Caller must hold the lock.
func (w *TimeWindow) advanceToCurrentSecond() *bucket {
	now := w.clock.Now().Unix()
	diff := now - w.buckets[w.head].epochSecond
	if diff <= 0 {
		return &w.buckets[w.head]
	}

	if diff >= int64(len(w.buckets)) {
		// The whole span has elapsed; every bucket is stale.
		for i := range w.buckets {
			w.buckets[i].reset()
			w.buckets[i].epochSecond = now - int64(len(w.buckets)-i)
		}
		w.head = 0
		w.buckets[w.head].epochSecond = now
		w.total.reset()
		return &w.buckets[w.head]
	}

	for i := int64(0); i < diff; i++ {
		w.head = (w.head + 1) % len(w.buckets)
		next := &w.buckets[w.head]
		w.total.removeAll(next.aggregation)
		next.reset()
		next.epochSecond = now - diff + i + 1
	}

	return &w.buckets[w.head]
}
