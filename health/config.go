package health

import (
	"time"

	"github.com/CarlosMaundu-zz/resilience4j/metrics"
)

// WindowType selects the sliding-window strategy backing an evaluator.
type WindowType int

const (
	// WindowTypeCount keeps the last WindowSize calls, evicting the oldest
	// call once the capacity is reached.
	WindowTypeCount WindowType = iota

	// WindowTypeTime keeps the calls of the last WindowSize seconds in
	// per-second buckets, evicting expired buckets wholesale.
	WindowTypeTime
)

func (t WindowType) String() string {
	switch t {
	case WindowTypeCount:
		return "COUNT_BASED"
	case WindowTypeTime:
		return "TIME_BASED"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	// Window injects a custom window collaborator. When set, WindowType and
	// WindowSize are ignored and MinimumNumberOfCalls is used as configured,
	// since the capacity of an arbitrary window is not knowable through the
	// interface.
	Window metrics.Window

	Metrics Metrics

	// WindowType selects the sliding-window strategy
	WindowType WindowType

	// WindowSize is the sample capacity: calls for count-based windows,
	// seconds for time-based windows
	WindowSize int

	// MinimumNumberOfCalls is the minimum number of sampled calls required
	// before the rates are evaluated against the thresholds. For count-based
	// windows it is clamped to WindowSize at construction, since a minimum
	// above the window's capacity could never be satisfied.
	MinimumNumberOfCalls int

	// FailureRateThreshold is the failure rate in percentage at or above
	// which the evaluation reports a breach
	FailureRateThreshold float64

	// SlowCallRateThreshold is the slow call rate in percentage at or above
	// which the evaluation reports a breach
	SlowCallRateThreshold float64

	// SlowCallDurationThreshold is the duration above which a call is
	// considered slow
	SlowCallDurationThreshold time.Duration
}

type Option func(*Config)

func defaultConfig() Config {
	return Config{
		WindowType:                WindowTypeCount,
		WindowSize:                100,
		MinimumNumberOfCalls:      100,
		FailureRateThreshold:      50.0,
		SlowCallRateThreshold:     100.0,
		SlowCallDurationThreshold: 60 * time.Second,
	}
}

func WithWindow(window metrics.Window) Option {
	return func(c *Config) {
		c.Window = window
	}
}

func WithMetrics(m Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

func WithWindowType(t WindowType) Option {
	return func(c *Config) {
		c.WindowType = t
	}
}

func WithWindowSize(size int) Option {
	return func(c *Config) {
		c.WindowSize = size
	}
}

func WithMinimumNumberOfCalls(n int) Option {
	return func(c *Config) {
		c.MinimumNumberOfCalls = n
	}
}

func WithFailureRateThreshold(threshold float64) Option {
	return func(c *Config) {
		c.FailureRateThreshold = threshold
	}
}

func WithSlowCallRateThreshold(threshold float64) Option {
	return func(c *Config) {
		c.SlowCallRateThreshold = threshold
	}
}

func WithSlowCallDurationThreshold(duration time.Duration) Option {
	return func(c *Config) {
		c.SlowCallDurationThreshold = duration
	}
}

func (c *Config) Validate() error {
	if c.WindowType != WindowTypeCount && c.WindowType != WindowTypeTime {
		return &ValidationError{Field: "windowType", Message: "must be COUNT_BASED or TIME_BASED"}
	}

	if c.Window == nil && c.WindowSize < 1 {
		return &ValidationError{Field: "windowSize", Message: "must be at least 1"}
	}

	if c.MinimumNumberOfCalls < 1 {
		return &ValidationError{Field: "minimumNumberOfCalls", Message: "must be at least 1"}
	}

	if c.FailureRateThreshold <= 0 || c.FailureRateThreshold > 100 {
		return &ValidationError{Field: "failureRateThreshold", Message: "must be between 0 (exclusive) and 100 (inclusive)"}
	}

	if c.SlowCallRateThreshold <= 0 || c.SlowCallRateThreshold > 100 {
		return &ValidationError{Field: "slowCallRateThreshold", Message: "must be between 0 (exclusive) and 100 (inclusive)"}
	}

	if c.SlowCallDurationThreshold <= 0 {
		return &ValidationError{Field: "slowCallDurationThreshold", Message: "must be greater than 0"}
	}

	return nil
}
