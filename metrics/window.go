package metrics

import (
	"time"
)

// Window accumulates classified call outcomes over a bounded, continuously
// evicting sample population. Implementations are safe for concurrent use;
// every Snapshot they hand out is consistent relative to any single Record.
type Window interface {
	// Record appends one classified outcome, evicts per the window's
	// strategy, and returns a snapshot reflecting the new state.
	Record(duration time.Duration, outcome Outcome) Snapshot

	// Snapshot returns the current aggregate state without mutating anything.
	Snapshot() Snapshot

	Reset()
}
