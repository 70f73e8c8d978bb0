package health

// Result is the tri-state verdict of a threshold evaluation, consumed by an
// external call-gating mechanism.
type Result int

const (
	// ResultBelowThresholds means the sampled call stream is healthy.
	ResultBelowThresholds Result = iota

	// ResultAboveThresholds means the failure rate or the slow call rate
	// reached its threshold; the caller should act (e.g. open the circuit).
	ResultAboveThresholds

	// ResultBelowMinimumCalls means too few calls have been sampled for the
	// thresholds to be trusted. Callers treat this as healthy by default.
	ResultBelowMinimumCalls
)

func (r Result) String() string {
	switch r {
	case ResultBelowThresholds:
		return "BELOW_THRESHOLDS"
	case ResultAboveThresholds:
		return "ABOVE_THRESHOLDS"
	case ResultBelowMinimumCalls:
		return "BELOW_MINIMUM_CALLS_THRESHOLD"
	default:
		return "UNKNOWN"
	}
}

// HasExceededThresholds reports whether the verdict calls for gating action.
func (r Result) HasExceededThresholds() bool {
	return r == ResultAboveThresholds
}
