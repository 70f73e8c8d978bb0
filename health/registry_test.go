package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry(WithWindowSize(10), WithMinimumNumberOfCalls(10))

	a, err := r.GetOrCreate("upstream-a")
	require.NoError(t, err)

	again, err := r.GetOrCreate("upstream-a")
	require.NoError(t, err)
	require.Same(t, a, again)

	b, err := r.GetOrCreate("upstream-b", WithFailureRateThreshold(25))
	require.NoError(t, err)
	require.NotSame(t, a, b)
	require.Equal(t, 25.0, b.failureRateThreshold)

	// Registry defaults still apply underneath per-name options.
	require.Equal(t, 10, b.minimumNumberOfCalls)
}

func TestRegistryGetOrCreateInvalidOptions(t *testing.T) {
	r := NewRegistry()

	e, err := r.GetOrCreate("broken", WithFailureRateThreshold(-5))
	require.Nil(t, e)
	require.True(t, IsValidationError(err))

	_, ok := r.Get("broken")
	require.False(t, ok)
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()

	_, err := r.GetOrCreate("upstream")
	require.NoError(t, err)

	r.Remove("upstream")
	_, ok := r.Get("upstream")
	require.False(t, ok)
}

func TestRegistryRange(t *testing.T) {
	r := NewRegistry()

	names := []string{"a", "b", "c"}
	for _, n := range names {
		_, err := r.GetOrCreate(n)
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	r.Range(func(name string, e *Evaluator) bool {
		seen[name] = true
		return true
	})
	require.Len(t, seen, 3)
}

func TestRegistryConcurrentGetOrCreate(t *testing.T) {
	r := NewRegistry(WithWindowSize(10), WithMinimumNumberOfCalls(1))

	evaluators := make([]*Evaluator, 20)
	var g errgroup.Group
	for i := range evaluators {
		i := i
		g.Go(func() error {
			e, err := r.GetOrCreate("shared")
			if err != nil {
				return err
			}
			evaluators[i] = e
			e.OnSuccess(time.Millisecond)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, e := range evaluators {
		require.Same(t, evaluators[0], e)
	}
	require.Equal(t, 10, evaluators[0].NumberOfBufferedCalls())
}
