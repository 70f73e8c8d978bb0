package health

import (
	"context"
	"errors"
	"runtime/debug"
	"time"
)

type PanicError struct {
	Recover any
	Cause   error
	Stack   []byte
}

func (r *PanicError) Error() string {
	return "health: panic occurred"
}

func (r *PanicError) Unwrap() error {
	return r.Cause
}

func IsPanicError(err error) bool {
	var panicError *PanicError
	ok := errors.As(err, &panicError)
	return ok
}

func safeExecute[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{
				Recover: r,
				Cause:   err,
				Stack:   debug.Stack(),
			}
		}
	}()

	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	return fn(ctx)
}

// Observe times fn and feeds the measured duration into the evaluator:
// OnSuccess when fn returns nil, OnError otherwise. A panic inside fn is
// recovered into a PanicError and recorded as an error, so the sample is
// never lost. Observe does no gating; callers that measure durations
// themselves can use OnSuccess and OnError directly.
func Observe[T any](ctx context.Context, e *Evaluator, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()

	result, err := safeExecute(ctx, fn)
	duration := time.Since(start)

	if err != nil {
		e.OnError(duration)
	} else {
		e.OnSuccess(duration)
	}

	return result, err
}

func Do(ctx context.Context, e *Evaluator, fn func(context.Context) error) (err error) {
	_, err = Observe(ctx, e, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})

	return err
}
