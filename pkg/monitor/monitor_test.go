package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sherine-k/flightsim/pkg/simulation"
)

func record(tick int, failing bool) simulation.TelemetryRecord {
	return simulation.TelemetryRecord{
		Tick:          tick,
		TrainingPhase: tick <= simulation.TrainingTicks,
		EngineFailure: failing,
		Vibration:     2.5,
	}
}

func TestTracker_Counts(t *testing.T) {
	tr := NewTracker()

	empty := tr.Summary()
	assert.Equal(t, "TRAINING", empty.Phase)
	assert.Nil(t, empty.Latest)

	tr.Observe(record(120, false))
	tr.Observe(record(121, true))
	tr.Observe(record(122, true))
	tr.Observe(record(123, false))
	tr.Observe(record(124, true))
	tr.WriteFailed()

	s := tr.Summary()
	assert.Equal(t, 5, s.Records)
	assert.Equal(t, 1, s.TrainingTicks)
	assert.Equal(t, 4, s.TestingTicks)
	assert.Equal(t, 3, s.FailureTicks)
	assert.Equal(t, 2, s.FailureOnsets)
	assert.Equal(t, 1, s.WriteErrors)
	assert.Equal(t, "TESTING", s.Phase)
	require.NotNil(t, s.Latest)
	assert.Equal(t, 124, s.Latest.Tick)
}

func TestTracker_SummaryIsACopy(t *testing.T) {
	tr := NewTracker()
	tr.Observe(record(1, false))

	s := tr.Summary()
	s.Latest.Tick = 42
	assert.Equal(t, 1, tr.Summary().Latest.Tick)
}

func TestEventLogger_LogsTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	el := NewEventLogger(zap.New(core))

	el.Observe(record(120, false))
	el.Observe(record(121, false))
	el.Observe(record(122, true))
	el.Observe(record(123, true))
	el.Observe(record(124, false))

	messages := []string{}
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{
		"first telemetry record written",
		"training phase complete, switching to paced testing",
		"engine failure injected",
		"engine failure cleared",
	}, messages)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestLogSummary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tr := NewTracker()
	tr.Observe(record(121, true))

	LogSummary(zap.New(core), tr.Summary())

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, int64(1), fields["records"])
	assert.Equal(t, int64(1), fields["failure_onsets"])
	assert.Equal(t, "TESTING", fields["phase"])
	assert.Equal(t, int64(121), fields["tick"])
	assert.Equal(t, true, fields["engine_failure"])
}

func TestStartSummaries(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tr := NewTracker()

	c, err := StartSummaries("@every 1s", tr, zap.New(core))
	require.NoError(t, err)
	defer func() { <-c.Stop().Done() }()

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("flight summary").Len() > 0
	}, 5*time.Second, 50*time.Millisecond)
}

func TestStartSummaries_InvalidSchedule(t *testing.T) {
	_, err := StartSummaries("whenever", NewTracker(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule flight summary")
}
