package monitor

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sherine-k/flightsim/pkg/config"
)

// StartSummaries logs a flight summary on the given cron schedule.
// The returned cron must be stopped by the caller.
func StartSummaries(schedule string, tracker *Tracker, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithParser(config.ScheduleParser))
	if _, err := c.AddFunc(schedule, func() { LogSummary(logger, tracker.Summary()) }); err != nil {
		return nil, fmt.Errorf("failed to schedule flight summary: %w", err)
	}
	c.Start()
	return c, nil
}

// LogSummary writes one structured summary entry
func LogSummary(logger *zap.Logger, s Summary) {
	fields := []zap.Field{
		zap.Int("records", s.Records),
		zap.Int("training_ticks", s.TrainingTicks),
		zap.Int("testing_ticks", s.TestingTicks),
		zap.Int("failure_ticks", s.FailureTicks),
		zap.Int("failure_onsets", s.FailureOnsets),
		zap.Int("write_errors", s.WriteErrors),
		zap.String("phase", s.Phase),
	}
	if s.Latest != nil {
		fields = append(fields,
			zap.Int("tick", s.Latest.Tick),
			zap.Float64("altitude", s.Latest.Altitude),
			zap.Bool("engine_failure", s.Latest.EngineFailure),
		)
	}
	logger.Info("flight summary", fields...)
}
