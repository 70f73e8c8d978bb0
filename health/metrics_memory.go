package health

import (
	"context"
	"sync/atomic"
)

var _ Metrics = (*InMemoryMetrics)(nil)

type InMemoryMetrics struct {
	callsTotal         atomic.Int64
	callsSuccess       atomic.Int64
	callsFailure       atomic.Int64
	callsSlow          atomic.Int64
	callsDurationTotal atomic.Int64

	verdictsAbove        atomic.Int64
	verdictsBelow        atomic.Int64
	verdictsBelowMinimum atomic.Int64

	notPermittedTotal atomic.Int64
}

func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{}
}

func (m *InMemoryMetrics) RecordCall(_ context.Context, call Call) {
	m.callsTotal.Add(1)
	if call.Outcome.IsError() {
		m.callsFailure.Add(1)
	} else {
		m.callsSuccess.Add(1)
	}
	if call.Outcome.IsSlow() {
		m.callsSlow.Add(1)
	}
	m.callsDurationTotal.Add(call.Duration.Milliseconds())

	switch call.Result {
	case ResultAboveThresholds:
		m.verdictsAbove.Add(1)
	case ResultBelowThresholds:
		m.verdictsBelow.Add(1)
	case ResultBelowMinimumCalls:
		m.verdictsBelowMinimum.Add(1)
	}
}

func (m *InMemoryMetrics) RecordNotPermitted(_ context.Context, _ Rejection) {
	m.notPermittedTotal.Add(1)
}

func (m *InMemoryMetrics) RecordRates(_ context.Context, _ Rates) {}

func (m *InMemoryMetrics) GetMetrics() map[string]int64 {
	return map[string]int64{
		"calls_total":               m.callsTotal.Load(),
		"calls_success":             m.callsSuccess.Load(),
		"calls_failure":             m.callsFailure.Load(),
		"calls_slow":                m.callsSlow.Load(),
		"calls_duration_total":      m.callsDurationTotal.Load(),
		"verdicts_above_thresholds": m.verdictsAbove.Load(),
		"verdicts_below_thresholds": m.verdictsBelow.Load(),
		"verdicts_below_minimum":    m.verdictsBelowMinimum.Load(),
		"not_permitted_total":       m.notPermittedTotal.Load(),
	}
}
