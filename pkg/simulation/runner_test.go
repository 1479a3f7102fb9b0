package simulation

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink records calls in order and can fail on demand
type recordingSink struct {
	calls     []string
	records   []TelemetryRecord
	resetErr  error
	appendErr func(tick int) error
}

func (s *recordingSink) Reset() error {
	s.calls = append(s.calls, "reset")
	return s.resetErr
}

func (s *recordingSink) Append(record TelemetryRecord) error {
	s.calls = append(s.calls, "append")
	if s.appendErr != nil {
		if err := s.appendErr(record.Tick); err != nil {
			return err
		}
	}
	s.records = append(s.records, record)
	return nil
}

// fakeSleeper collects requested delays without waiting
type fakeSleeper struct {
	delays []time.Duration
}

func (f *fakeSleeper) sleep(ctx context.Context, d time.Duration) error {
	f.delays = append(f.delays, d)
	return ctx.Err()
}

func TestRunner_ResetsBeforeFirstRecord(t *testing.T) {
	sink := &recordingSink{}
	sim := NewSimulator(rand.New(rand.NewSource(3)))
	runner := NewRunner(sim, sink, WithMaxTicks(5))

	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, []string{"reset", "append", "append", "append", "append", "append"}, sink.calls)
	require.Len(t, sink.records, 5)
	for i, r := range sink.records {
		assert.Equal(t, i+1, r.Tick)
		assert.True(t, r.TrainingPhase)
		assert.False(t, r.EngineFailure)
	}
}

func TestRunner_ResetFailureIsFatal(t *testing.T) {
	sink := &recordingSink{resetErr: errors.New("permission denied")}
	runner := NewRunner(NewSimulator(&scriptedRand{}), sink, WithMaxTicks(5))

	err := runner.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSinkOpen)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, []string{"reset"}, sink.calls)
}

func TestRunner_PacingFollowsPhase(t *testing.T) {
	sleeper := &fakeSleeper{}
	sink := &recordingSink{}
	runner := NewRunner(NewSimulator(rand.New(rand.NewSource(5))), sink,
		WithMaxTicks(TrainingTicks+4),
		WithSleeper(sleeper.sleep))

	require.NoError(t, runner.Run(context.Background()))

	assert.Len(t, sink.records, TrainingTicks+4)
	assert.Equal(t, []time.Duration{TestingInterval, TestingInterval, TestingInterval, TestingInterval}, sleeper.delays)
}

func TestRunner_StrictlyIncreasingTicks(t *testing.T) {
	sink := &recordingSink{}
	observed := []int{}
	runner := NewRunner(NewSimulator(rand.New(rand.NewSource(11))), sink,
		WithMaxTicks(200),
		WithSleeper((&fakeSleeper{}).sleep),
		WithObserver(ObserverFunc(func(r TelemetryRecord) { observed = append(observed, r.Tick) })))

	require.NoError(t, runner.Run(context.Background()))

	require.Len(t, sink.records, 200)
	for i, r := range sink.records {
		require.Equal(t, i+1, r.Tick)
	}
	assert.Len(t, observed, 200)
}

func TestRunner_WriteErrorAbortsByDefault(t *testing.T) {
	diskFull := errors.New("no space left on device")
	sink := &recordingSink{appendErr: func(tick int) error {
		if tick == 3 {
			return diskFull
		}
		return nil
	}}
	runner := NewRunner(NewSimulator(&scriptedRand{}), sink, WithMaxTicks(10))

	err := runner.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, diskFull)
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 3, writeErr.Tick)
	assert.Len(t, sink.records, 2)
}

func TestRunner_WriteErrorHandlerCanContinue(t *testing.T) {
	sink := &recordingSink{appendErr: func(tick int) error {
		if tick%2 == 0 {
			return errors.New("transient")
		}
		return nil
	}}
	failed := []int{}
	observed := 0
	runner := NewRunner(NewSimulator(&scriptedRand{}), sink,
		WithMaxTicks(6),
		WithObserver(ObserverFunc(func(TelemetryRecord) { observed++ })),
		WithWriteErrorHandler(func(err *WriteError) error {
			failed = append(failed, err.Tick)
			return nil
		}))

	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, []int{2, 4, 6}, failed)
	assert.Len(t, sink.records, 3)
	assert.Equal(t, 3, observed, "observers only see persisted records")
}

func TestRunner_StopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sink := &recordingSink{}
	ticks := 0
	runner := NewRunner(NewSimulator(rand.New(rand.NewSource(8))), sink,
		WithSleeper((&fakeSleeper{}).sleep),
		WithObserver(ObserverFunc(func(r TelemetryRecord) {
			ticks++
			if r.Tick == 130 {
				cancel()
			}
		})))

	require.NoError(t, runner.Run(ctx))
	assert.Equal(t, 130, ticks)
	assert.Len(t, sink.records, 130)
}

func TestRunner_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &recordingSink{}

	require.NoError(t, NewRunner(NewSimulator(&scriptedRand{}), sink).Run(ctx))
	assert.Equal(t, []string{"reset"}, sink.calls)
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := sleepContext(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
