package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestCountWindowEmptySnapshot(t *testing.T) {
	w := NewCountWindow(10)
	s := w.Snapshot()

	require.Equal(t, 0, s.TotalNumberOfCalls())
	require.Equal(t, NoSampledCalls, s.FailureRate())
	require.Equal(t, NoSampledCalls, s.SlowCallRate())
	require.Equal(t, time.Duration(0), s.AverageDuration())
}

func TestCountWindowAggregation(t *testing.T) {
	w := NewCountWindow(10)

	w.Record(100*time.Millisecond, OutcomeSuccess)
	w.Record(100*time.Millisecond, OutcomeError)
	s := w.Record(300*time.Millisecond, OutcomeSlowError)

	require.Equal(t, 3, s.TotalNumberOfCalls())
	require.Equal(t, 1, s.NumberOfSuccessfulCalls())
	require.Equal(t, 2, s.NumberOfFailedCalls())
	require.Equal(t, 1, s.NumberOfSlowCalls())
	require.Equal(t, 1, s.NumberOfSlowFailedCalls())
	require.Equal(t, 500*time.Millisecond, s.TotalDuration())
	require.InDelta(t, 66.66, s.FailureRate(), 0.01)
	require.InDelta(t, 33.33, s.SlowCallRate(), 0.01)
}

func TestCountWindowInvariantFailedPlusSuccessful(t *testing.T) {
	w := NewCountWindow(4)

	outcomes := []Outcome{OutcomeSuccess, OutcomeSlowSuccess, OutcomeError, OutcomeSlowError}
	for _, o := range outcomes {
		s := w.Record(time.Millisecond, o)
		require.Equal(t, s.TotalNumberOfCalls(), s.NumberOfFailedCalls()+s.NumberOfSuccessfulCalls())
	}
}

func TestCountWindowEvictsOldest(t *testing.T) {
	w := NewCountWindow(10)

	for i := 0; i < 10; i++ {
		w.Record(50*time.Millisecond, OutcomeError)
	}

	s := w.Snapshot()
	require.Equal(t, 10, s.TotalNumberOfCalls())
	require.Equal(t, 10, s.NumberOfFailedCalls())
	require.Equal(t, 500*time.Millisecond, s.TotalDuration())

	// The 11th record replaces the oldest error and its duration.
	s = w.Record(200*time.Millisecond, OutcomeSlowSuccess)
	require.Equal(t, 10, s.TotalNumberOfCalls())
	require.Equal(t, 9, s.NumberOfFailedCalls())
	require.Equal(t, 1, s.NumberOfSuccessfulCalls())
	require.Equal(t, 1, s.NumberOfSlowCalls())
	require.Equal(t, 650*time.Millisecond, s.TotalDuration())
}

func TestCountWindowReset(t *testing.T) {
	w := NewCountWindow(5)
	w.Record(time.Second, OutcomeSlowError)
	w.Reset()

	s := w.Snapshot()
	require.Equal(t, 0, s.TotalNumberOfCalls())
	require.Equal(t, time.Duration(0), s.TotalDuration())

	s = w.Record(time.Millisecond, OutcomeSuccess)
	require.Equal(t, 1, s.TotalNumberOfCalls())
	require.Equal(t, 0, s.NumberOfSlowCalls())
}

func TestCountWindowConcurrentRecord(t *testing.T) {
	w := NewCountWindow(1000)

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				w.Record(time.Millisecond, OutcomeError)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	s := w.Snapshot()
	require.Equal(t, 1000, s.TotalNumberOfCalls())
	require.Equal(t, 1000, s.NumberOfFailedCalls())
	require.Equal(t, float64(100), s.FailureRate())
}
