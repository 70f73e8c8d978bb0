package metrics

// Outcome classifies a single completed call. Every call is exactly one of
// the four values; "slow" is part of the classification, not a second axis.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeError
	OutcomeSlowSuccess
	OutcomeSlowError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	case OutcomeSlowSuccess:
		return "slow_success"
	case OutcomeSlowError:
		return "slow_error"
	default:
		return "unknown"
	}
}

// IsError reports whether the outcome counts toward the failure rate.
func (o Outcome) IsError() bool {
	return o == OutcomeError || o == OutcomeSlowError
}

// IsSlow reports whether the outcome counts toward the slow call rate.
func (o Outcome) IsSlow() bool {
	return o == OutcomeSlowSuccess || o == OutcomeSlowError
}
