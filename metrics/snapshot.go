package metrics

import (
	"time"
)

// Snapshot is an immutable aggregate view of a window's sample population at
// one instant. Rates are percentages in [0, 100]; an empty population yields
// NoSampledCalls for both rates.
type Snapshot struct {
	totalDuration   time.Duration
	totalCalls      int
	failedCalls     int
	slowCalls       int
	slowFailedCalls int
}

// NoSampledCalls is the rate sentinel returned when a snapshot holds no calls.
const NoSampledCalls float64 = -1

func (s Snapshot) TotalNumberOfCalls() int {
	return s.totalCalls
}

func (s Snapshot) NumberOfSuccessfulCalls() int {
	return s.totalCalls - s.failedCalls
}

func (s Snapshot) NumberOfFailedCalls() int {
	return s.failedCalls
}

func (s Snapshot) NumberOfSlowCalls() int {
	return s.slowCalls
}

func (s Snapshot) NumberOfSlowFailedCalls() int {
	return s.slowFailedCalls
}

func (s Snapshot) TotalDuration() time.Duration {
	return s.totalDuration
}

func (s Snapshot) AverageDuration() time.Duration {
	if s.totalCalls == 0 {
		return 0
	}
	return s.totalDuration / time.Duration(s.totalCalls)
}

// FailureRate returns the failed calls as a percentage of all sampled calls,
// or NoSampledCalls when the snapshot is empty.
func (s Snapshot) FailureRate() float64 {
	if s.totalCalls == 0 {
		return NoSampledCalls
	}
	return float64(s.failedCalls) / float64(s.totalCalls) * 100
}

// SlowCallRate returns the slow calls as a percentage of all sampled calls,
// or NoSampledCalls when the snapshot is empty.
func (s Snapshot) SlowCallRate() float64 {
	if s.totalCalls == 0 {
		return NoSampledCalls
	}
	return float64(s.slowCalls) / float64(s.totalCalls) * 100
}

// aggregation is the running total behind a window. Windows mutate it under
// their own lock and hand out value copies as Snapshots.
type aggregation struct {
	totalDuration   time.Duration
	totalCalls      int
	failedCalls     int
	slowCalls       int
	slowFailedCalls int
}

func (a *aggregation) record(duration time.Duration, outcome Outcome) {
	a.totalCalls++
	a.totalDuration += duration

	if outcome.IsError() {
		a.failedCalls++
	}
	if outcome.IsSlow() {
		a.slowCalls++
	}
	if outcome == OutcomeSlowError {
		a.slowFailedCalls++
	}
}

func (a *aggregation) remove(duration time.Duration, outcome Outcome) {
	a.totalCalls--
	a.totalDuration -= duration

	if outcome.IsError() {
		a.failedCalls--
	}
	if outcome.IsSlow() {
		a.slowCalls--
	}
	if outcome == OutcomeSlowError {
		a.slowFailedCalls--
	}
}

func (a *aggregation) removeAll(other aggregation) {
	a.totalCalls -= other.totalCalls
	a.totalDuration -= other.totalDuration
	a.failedCalls -= other.failedCalls
	a.slowCalls -= other.slowCalls
	a.slowFailedCalls -= other.slowFailedCalls
}

func (a *aggregation) reset() {
	*a = aggregation{}
}

func (a aggregation) snapshot() Snapshot {
	return Snapshot{
		totalDuration:   a.totalDuration,
		totalCalls:      a.totalCalls,
		failedCalls:     a.failedCalls,
		slowCalls:       a.slowCalls,
		slowFailedCalls: a.slowFailedCalls,
	}
}
