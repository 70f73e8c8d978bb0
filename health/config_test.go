package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		wantField string
	}{
		{
			name:      "window size below 1",
			opts:      []Option{WithWindowSize(0)},
			wantField: "windowSize",
		},
		{
			name:      "minimum calls below 1",
			opts:      []Option{WithMinimumNumberOfCalls(0)},
			wantField: "minimumNumberOfCalls",
		},
		{
			name:      "negative failure rate threshold",
			opts:      []Option{WithFailureRateThreshold(-1)},
			wantField: "failureRateThreshold",
		},
		{
			name:      "failure rate threshold above 100",
			opts:      []Option{WithFailureRateThreshold(101)},
			wantField: "failureRateThreshold",
		},
		{
			name:      "zero slow call rate threshold",
			opts:      []Option{WithSlowCallRateThreshold(0)},
			wantField: "slowCallRateThreshold",
		},
		{
			name:      "negative slow call duration threshold",
			opts:      []Option{WithSlowCallDurationThreshold(-time.Second)},
			wantField: "slowCallDurationThreshold",
		},
		{
			name:      "unknown window type",
			opts:      []Option{WithWindowType(WindowType(42))},
			wantField: "windowType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New("test.Evaluator", tt.opts...)
			require.Nil(t, e)
			require.True(t, IsValidationError(err))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	e, err := New("test.Evaluator")
	require.NoError(t, err)

	require.Equal(t, "test.Evaluator", e.Name())
	require.Equal(t, 100, e.minimumNumberOfCalls)
	require.Equal(t, 50.0, e.failureRateThreshold)
	require.Equal(t, 100.0, e.slowCallRateThreshold)
	require.Equal(t, 60*time.Second, e.slowCallDurationThreshold)
}

func TestMustNewPanicsOnInvalidConfig(t *testing.T) {
	require.Panics(t, func() {
		MustNew("test.Evaluator", WithMinimumNumberOfCalls(-1))
	})
}
