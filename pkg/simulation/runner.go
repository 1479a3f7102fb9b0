package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrSinkOpen is returned by Run when the sink cannot be reset at startup
var ErrSinkOpen = errors.New("telemetry sink could not be opened")

// Sink receives one record per tick, in tick order
type Sink interface {
	Reset() error
	Append(record TelemetryRecord) error
}

// Observer is notified after each record has been handed to the sink
type Observer interface {
	Observe(record TelemetryRecord)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(record TelemetryRecord)

// Observe calls f(record)
func (f ObserverFunc) Observe(record TelemetryRecord) { f(record) }

// WriteError reports a record that the sink failed to append
type WriteError struct {
	Tick int
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to append telemetry record for tick %d: %v", e.Tick, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteErrorHandler decides what happens after a failed append.
// Returning nil continues the run, returning an error stops it.
type WriteErrorHandler func(err *WriteError) error

// Sleeper blocks for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithSleeper replaces the real-time pacing sleep
func WithSleeper(sleep Sleeper) RunnerOption {
	return func(r *Runner) {
		r.sleep = sleep
	}
}

// WithObserver registers an observer for emitted records
func WithObserver(o Observer) RunnerOption {
	return func(r *Runner) {
		r.observers = append(r.observers, o)
	}
}

// WithWriteErrorHandler sets the policy applied to failed appends
func WithWriteErrorHandler(h WriteErrorHandler) RunnerOption {
	return func(r *Runner) {
		r.onWriteError = h
	}
}

// WithMaxTicks stops the run after n ticks. Zero means run until cancelled.
func WithMaxTicks(n int) RunnerOption {
	return func(r *Runner) {
		r.maxTicks = n
	}
}

// Runner drives a Simulator at the phase-dependent cadence
type Runner struct {
	sim          *Simulator
	sink         Sink
	observers    []Observer
	sleep        Sleeper
	onWriteError WriteErrorHandler
	maxTicks     int
}

// NewRunner creates a runner that feeds records from sim into sink
func NewRunner(sim *Simulator, sink Sink, opts ...RunnerOption) *Runner {
	r := &Runner{
		sim:          sim,
		sink:         sink,
		sleep:        sleepContext,
		onWriteError: func(err *WriteError) error { return err },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resets the sink and then ticks until ctx is cancelled, MaxTicks is
// reached or the write-error handler aborts.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.sink.Reset(); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkOpen, err)
	}

	for ticks := 0; r.maxTicks == 0 || ticks < r.maxTicks; ticks++ {
		if ctx.Err() != nil {
			return nil
		}

		record := r.sim.Step()
		if err := r.sink.Append(record); err != nil {
			if herr := r.onWriteError(&WriteError{Tick: record.Tick, Err: err}); herr != nil {
				return herr
			}
		} else {
			for _, o := range r.observers {
				o.Observe(record)
			}
		}

		if delay := PacingDelay(record.Phase()); delay > 0 {
			if err := r.sleep(ctx, delay); err != nil {
				return nil
			}
		}
	}
	return nil
}

// sleepContext waits for d, returning early with ctx.Err() on cancellation
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
