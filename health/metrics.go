package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/CarlosMaundu-zz/resilience4j/metrics"
)

var _ Metrics = (*NoopMetrics)(nil)

var _globalMetrics = atomic.Value{}

// Call represents one completed call recorded into an evaluator
type Call struct {
	Name     string
	Outcome  metrics.Outcome
	Duration time.Duration
	Result   Result
}

// Rejection represents a call that was rejected without being attempted
type Rejection struct {
	Name string
}

// Rates represents the rate statistics after a recorded call
type Rates struct {
	Name         string
	FailureRate  float64
	SlowCallRate float64
	TotalCalls   int
}

// Metrics defines the interface for evaluator instrumentation
type Metrics interface {
	// RecordCall records one completed call and its verdict
	RecordCall(ctx context.Context, call Call)

	// RecordNotPermitted records a call rejected without attempt
	RecordNotPermitted(ctx context.Context, rejection Rejection)

	// RecordRates records the rate statistics after a recorded call
	RecordRates(ctx context.Context, rates Rates)
}

// NoopMetrics is a no-operation implementation of the Metrics interface
type NoopMetrics struct{}

func (n *NoopMetrics) RecordCall(ctx context.Context, call Call) {}

func (n *NoopMetrics) RecordNotPermitted(ctx context.Context, rejection Rejection) {}

func (n *NoopMetrics) RecordRates(ctx context.Context, rates Rates) {}

// SetGlobalMetrics sets the global Metrics implementation
func SetGlobalMetrics(m Metrics) {
	if m == nil {
		m = &NoopMetrics{}
	}
	_globalMetrics.Store(m)
}

// GetGlobalMetrics returns the global Metrics implementation
func GetGlobalMetrics() Metrics {
	m := _globalMetrics.Load()
	if m == nil {
		return &NoopMetrics{}
	}
	return m.(Metrics)
}
