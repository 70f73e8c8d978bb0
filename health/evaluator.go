package health

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/CarlosMaundu-zz/resilience4j/metrics"
)

// Evaluator classifies completed calls against the slow-call duration
// threshold, records them into its sliding window, and evaluates every
// resulting snapshot against the failure-rate and slow-call-rate thresholds.
// One evaluator serves one governed call-site for the call-site's lifetime.
//
// All methods are safe for concurrent use; none of them block.
type Evaluator struct {
	// name is the name of the evaluator
	name string

	// metrics is the metrics reporter for the evaluator
	// if nil, uses the global metrics instance
	metrics Metrics

	window metrics.Window

	minimumNumberOfCalls      int
	failureRateThreshold      float64
	slowCallRateThreshold     float64
	slowCallDurationThreshold time.Duration

	// notPermitted is a striped counter, so concurrent load-shedding callers
	// do not contend on a single cache line
	notPermitted *xsync.Counter
}

func New(name string, opts ...Option) (*Evaluator, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	minimumNumberOfCalls := config.MinimumNumberOfCalls
	window := config.Window
	if window == nil {
		switch config.WindowType {
		case WindowTypeTime:
			window = metrics.NewTimeWindow(config.WindowSize)
		default:
			window = metrics.NewCountWindow(config.WindowSize)
			// A minimum above the window capacity could never be satisfied
			// and would block evaluation forever.
			if minimumNumberOfCalls > config.WindowSize {
				minimumNumberOfCalls = config.WindowSize
			}
		}
	}

	return &Evaluator{
		name:                      name,
		metrics:                   config.Metrics,
		window:                    window,
		minimumNumberOfCalls:      minimumNumberOfCalls,
		failureRateThreshold:      config.FailureRateThreshold,
		slowCallRateThreshold:     config.SlowCallRateThreshold,
		slowCallDurationThreshold: config.SlowCallDurationThreshold,
		notPermitted:              xsync.NewCounter(),
	}, nil
}

func MustNew(name string, opts ...Option) *Evaluator {
	e, err := New(name, opts...)
	if err != nil {
		panic(err)
	}

	return e
}

func (e *Evaluator) Name() string {
	return e.name
}

// OnCallNotPermitted records a call that was rejected without being
// attempted. The rejected call never enters the window.
func (e *Evaluator) OnCallNotPermitted() {
	e.notPermitted.Inc()

	e.metricsReporter().RecordNotPermitted(context.Background(), Rejection{Name: e.name})
}

// OnSuccess records a successful call and returns the verdict for the
// updated window.
func (e *Evaluator) OnSuccess(duration time.Duration) Result {
	outcome := metrics.OutcomeSuccess
	if duration > e.slowCallDurationThreshold {
		outcome = metrics.OutcomeSlowSuccess
	}

	return e.record(duration, outcome)
}

// OnError records a failed call and returns the verdict for the updated
// window.
func (e *Evaluator) OnError(duration time.Duration) Result {
	outcome := metrics.OutcomeError
	if duration > e.slowCallDurationThreshold {
		outcome = metrics.OutcomeSlowError
	}

	return e.record(duration, outcome)
}

func (e *Evaluator) record(duration time.Duration, outcome metrics.Outcome) Result {
	snapshot := e.window.Record(duration, outcome)
	result := e.checkThresholds(snapshot)

	reporter := e.metricsReporter()
	ctx := context.Background()
	reporter.RecordCall(ctx, Call{
		Name:     e.name,
		Outcome:  outcome,
		Duration: duration,
		Result:   result,
	})
	reporter.RecordRates(ctx, Rates{
		Name:         e.name,
		FailureRate:  e.rate(snapshot.NumberOfFailedCalls(), snapshot.TotalNumberOfCalls()),
		SlowCallRate: e.rate(snapshot.NumberOfSlowCalls(), snapshot.TotalNumberOfCalls()),
		TotalCalls:   snapshot.TotalNumberOfCalls(),
	})

	return result
}

// checkThresholds is a pure function of one snapshot. Insufficient data
// takes precedence over both threshold checks; equality at a threshold
// counts as a breach.
func (e *Evaluator) checkThresholds(snapshot metrics.Snapshot) Result {
	failureRate := e.rate(snapshot.NumberOfFailedCalls(), snapshot.TotalNumberOfCalls())
	if failureRate == metrics.NoSampledCalls {
		return ResultBelowMinimumCalls
	}

	if failureRate >= e.failureRateThreshold {
		return ResultAboveThresholds
	}

	slowCallRate := e.rate(snapshot.NumberOfSlowCalls(), snapshot.TotalNumberOfCalls())
	if slowCallRate == metrics.NoSampledCalls {
		return ResultBelowMinimumCalls
	}

	if slowCallRate >= e.slowCallRateThreshold {
		return ResultAboveThresholds
	}

	return ResultBelowThresholds
}

// rate guards the percentage computation behind the minimum-calls check.
func (e *Evaluator) rate(count, total int) float64 {
	if total == 0 || total < e.minimumNumberOfCalls {
		return metrics.NoSampledCalls
	}

	return float64(count) / float64(total) * 100
}

// FailureRate returns the current failure rate in percentage, or
// metrics.NoSampledCalls while the window holds fewer than the minimum
// number of calls.
func (e *Evaluator) FailureRate() float64 {
	snapshot := e.window.Snapshot()
	return e.rate(snapshot.NumberOfFailedCalls(), snapshot.TotalNumberOfCalls())
}

// SlowCallRate returns the current slow call rate in percentage, or
// metrics.NoSampledCalls while the window holds fewer than the minimum
// number of calls.
func (e *Evaluator) SlowCallRate() float64 {
	snapshot := e.window.Snapshot()
	return e.rate(snapshot.NumberOfSlowCalls(), snapshot.TotalNumberOfCalls())
}

func (e *Evaluator) NumberOfSuccessfulCalls() int {
	return e.window.Snapshot().NumberOfSuccessfulCalls()
}

func (e *Evaluator) NumberOfFailedCalls() int {
	return e.window.Snapshot().NumberOfFailedCalls()
}

func (e *Evaluator) NumberOfSlowCalls() int {
	return e.window.Snapshot().NumberOfSlowCalls()
}

// NumberOfBufferedCalls returns how many calls the window currently samples.
func (e *Evaluator) NumberOfBufferedCalls() int {
	return e.window.Snapshot().TotalNumberOfCalls()
}

func (e *Evaluator) NumberOfNotPermittedCalls() int64 {
	return e.notPermitted.Value()
}

func (e *Evaluator) metricsReporter() Metrics {
	if e.metrics != nil {
		return e.metrics
	}

	return GetGlobalMetrics()
}
