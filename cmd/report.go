package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sherine-k/flightsim/pkg/analysis"
	"github.com/sherine-k/flightsim/pkg/chart"
	"github.com/sherine-k/flightsim/pkg/config"
	"github.com/sherine-k/flightsim/pkg/sink"
)

var (
	inputPath        string
	chartWidth       int
	showTimeline     bool
	timelineLimit    int
	showEventSummary bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise a telemetry file",
	Long: `Read a telemetry file written by "flightsim run" and display a vibration
chart, a per-phase summary, engine failure episodes and optionally a detailed
timeline of records.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Telemetry file to read (defaults to output.path)")
	reportCmd.Flags().IntVarP(&chartWidth, "width", "w", 80, "Chart width in columns")
	reportCmd.Flags().BoolVarP(&showTimeline, "timeline", "t", false, "Show detailed timeline of records")
	reportCmd.Flags().IntVarP(&timelineLimit, "timeline-limit", "l", 50, "Limit number of timeline records to display")
	reportCmd.Flags().BoolVarP(&showEventSummary, "summary", "s", true, "Show telemetry summary")
}

func runReport(cmd *cobra.Command, args []string) error {
	path := inputPath
	if path == "" {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		path = cfg.Output.Path
	}

	records, err := sink.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load telemetry: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loaded %d telemetry records from %s\n", len(records), path)
	if len(records) > 1 {
		span := records[len(records)-1].Time().Sub(records[0].Time())
		fmt.Fprintf(out, "  - Flight time: %s\n", chart.FormatDuration(span))
	}

	chartGen := chart.NewGenerator().WithWidth(chartWidth)
	result := analysis.Analyze(records)

	fmt.Fprintln(out, chartGen.GenerateVibrationChart(records))

	if showEventSummary {
		fmt.Fprintln(out, chartGen.GenerateSummary(result))
	}

	fmt.Fprintln(out, chartGen.GenerateWarnings(result.Episodes))

	if showTimeline {
		fmt.Fprintln(out, chartGen.GenerateDetailedTimeline(records, timelineLimit))
	}

	return nil
}
