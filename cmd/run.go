package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sherine-k/flightsim/pkg/config"
	"github.com/sherine-k/flightsim/pkg/logging"
	"github.com/sherine-k/flightsim/pkg/metrics"
	"github.com/sherine-k/flightsim/pkg/monitor"
	"github.com/sherine-k/flightsim/pkg/server"
	"github.com/sherine-k/flightsim/pkg/simulation"
	"github.com/sherine-k/flightsim/pkg/sink"
)

var (
	outputPath string
	maxTicks   int
	seed       int64
	quiet      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the flight simulation",
	Long: `Run the flight simulation until interrupted.

The telemetry file is truncated at startup and one JSON record is appended
per tick. Stop the simulation with Ctrl+C or SIGTERM.`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Telemetry file path (overrides output.path)")
	runCmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "Stop after this many ticks (0 runs until interrupted)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the random source (overrides seed, 0 uses the clock)")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print a console line per tick")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyRunFlags(cmd, cfg)

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rngSeed := cfg.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	logger.Info("starting flight telemetry simulator",
		zap.String("output", cfg.Output.Path),
		zap.String("on_write_error", string(cfg.Output.OnWriteError)),
		zap.Int64("seed", rngSeed),
		zap.Int("max_ticks", maxTicks))

	tracker := monitor.NewTracker()
	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	if cfg.Metrics.Address != "" {
		srv := server.New(cfg.Metrics.Address, tracker, registry, logger)
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Error("status server stopped", zap.Error(err))
			}
		}()
	}

	if cfg.Summary.Schedule != "" {
		c, err := monitor.StartSummaries(cfg.Summary.Schedule, tracker, logger)
		if err != nil {
			return err
		}
		defer func() { <-c.Stop().Done() }()
	}

	fileSink := sink.NewFileSink(cfg.Output.Path)
	defer func() {
		if err := fileSink.Close(); err != nil {
			logger.Error("failed to close telemetry file", zap.Error(err))
		}
	}()

	opts := []simulation.RunnerOption{
		simulation.WithMaxTicks(maxTicks),
		simulation.WithObserver(tracker),
		simulation.WithObserver(collector),
		simulation.WithObserver(monitor.NewEventLogger(logger)),
		simulation.WithWriteErrorHandler(writeErrorHandler(cfg.Output.OnWriteError, logger, tracker, collector)),
	}
	if cfg.Output.ConsoleEnabled() {
		opts = append(opts, simulation.WithObserver(simulation.NewConsoleObserver(os.Stdout)))
	}

	sim := simulation.NewSimulator(rand.New(rand.NewSource(rngSeed)))
	runner := simulation.NewRunner(sim, fileSink, opts...)

	runErr := runner.Run(ctx)
	monitor.LogSummary(logger, tracker.Summary())
	if runErr != nil {
		logger.Error("simulation stopped", zap.Error(runErr))
		return fmt.Errorf("simulation failed: %w", runErr)
	}
	logger.Info("simulation stopped")
	return nil
}

// applyRunFlags lets explicitly set flags override the configuration file
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output") {
		cfg.Output.Path = outputPath
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("quiet") {
		console := !quiet
		cfg.Output.Console = &console
	}
}

// writeErrorHandler turns the configured policy into a runner handler
func writeErrorHandler(policy config.ErrorPolicy, logger *zap.Logger, tracker *monitor.Tracker, collector *metrics.Collector) simulation.WriteErrorHandler {
	return func(err *simulation.WriteError) error {
		tracker.WriteFailed()
		collector.WriteFailed()
		if policy == config.ErrorPolicyContinue {
			logger.Error("telemetry record lost", zap.Int("tick", err.Tick), zap.Error(err.Err))
			return nil
		}
		return err
	}
}
