package monitor

import (
	"go.uber.org/zap"

	"github.com/sherine-k/flightsim/pkg/simulation"
)

// EventLogger logs phase changes and engine failure transitions
type EventLogger struct {
	logger *zap.Logger
	last   *simulation.TelemetryRecord
}

// NewEventLogger creates an observer that logs state transitions
func NewEventLogger(logger *zap.Logger) *EventLogger {
	return &EventLogger{logger: logger}
}

// Observe compares the record with the previous one and logs what changed
func (e *EventLogger) Observe(record simulation.TelemetryRecord) {
	prev := e.last
	e.last = &record

	if prev == nil {
		e.logger.Info("first telemetry record written",
			zap.Int("tick", record.Tick),
			zap.Stringer("phase", record.Phase()))
		return
	}

	if prev.TrainingPhase && !record.TrainingPhase {
		e.logger.Info("training phase complete, switching to paced testing",
			zap.Int("tick", record.Tick),
			zap.Duration("interval", simulation.TestingInterval))
	}

	switch {
	case record.EngineFailure && !prev.EngineFailure:
		e.logger.Warn("engine failure injected",
			zap.Int("tick", record.Tick),
			zap.Float64("vibration", record.Vibration),
			zap.Float64("airspeed", record.Airspeed))
	case !record.EngineFailure && prev.EngineFailure:
		e.logger.Info("engine failure cleared", zap.Int("tick", record.Tick))
	}
}
