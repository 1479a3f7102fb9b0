package chart

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sherine-k/flightsim/pkg/analysis"
	"github.com/sherine-k/flightsim/pkg/simulation"
)

const (
	chartWidth  = 80
	chartHeight = 16

	vibrationFloor   = 2.0
	vibrationCeiling = 10.0
)

// Generator generates ASCII charts
type Generator struct {
	width  int
	height int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{
		width:  chartWidth,
		height: chartHeight,
	}
}

// WithWidth returns a generator drawing charts width columns wide
func (g *Generator) WithWidth(width int) *Generator {
	if width < 20 {
		width = 20
	}
	return &Generator{width: width, height: g.height}
}

// GenerateVibrationChart generates an ASCII chart of vibration across ticks
func (g *Generator) GenerateVibrationChart(records []simulation.TelemetryRecord) string {
	if len(records) == 0 {
		return "No data to display"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\n")
	sb.WriteString("Vibration Over Ticks\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	plotWidth := g.width - 6
	columns := len(records)
	if columns > plotWidth {
		columns = plotWidth
	}

	// Each column shows the peak reading of the records it covers
	type column struct {
		vibration float64
		failing   bool
		training  bool
		firstTick int
	}
	cols := make([]column, columns)
	for x := 0; x < columns; x++ {
		from := x * len(records) / columns
		to := (x + 1) * len(records) / columns
		c := column{vibration: math.Inf(-1), training: true, firstTick: records[from].Tick}
		for _, r := range records[from:to] {
			c.vibration = math.Max(c.vibration, r.Vibration)
			c.failing = c.failing || r.EngineFailure
			c.training = c.training && r.TrainingPhase
		}
		cols[x] = c
	}

	step := (vibrationCeiling - vibrationFloor) / float64(g.height)
	for row := g.height; row >= 1; row-- {
		level := vibrationFloor + float64(row)*step

		// Y-axis label on every other row
		if row%2 == 0 {
			sb.WriteString(fmt.Sprintf("%3.0f |", level))
		} else {
			sb.WriteString("    |")
		}

		for _, c := range cols {
			if c.vibration >= level-step/2 {
				if c.failing {
					sb.WriteString("!")
				} else {
					sb.WriteString("█")
				}
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	// X-axis, with the phase boundary marked
	sb.WriteString("    +")
	for x, c := range cols {
		if x > 0 && cols[x-1].training && !c.training {
			sb.WriteString("|")
		} else {
			sb.WriteString("-")
		}
	}
	sb.WriteString("\n")

	// X-axis labels - tick numbers every 10 columns
	labelLine := make([]rune, columns)
	for i := range labelLine {
		labelLine[i] = ' '
	}
	for x := 0; x < columns; x += 10 {
		marker := fmt.Sprintf("%d", cols[x].firstTick)
		if x+len(marker) > columns {
			break
		}
		for i, ch := range marker {
			labelLine[x+i] = ch
		}
	}
	sb.WriteString("     ")
	sb.WriteString(string(labelLine))
	sb.WriteString("\n")

	// Legend
	sb.WriteString("\n")
	sb.WriteString("Legend:\n")
	sb.WriteString("    █ - Nominal vibration (g)\n")
	sb.WriteString("    ! - Vibration with engine failure\n")
	sb.WriteString("    | - Training to testing transition\n")
	sb.WriteString("\n")

	return sb.String()
}

// GenerateSummary generates a summary of the telemetry stream
func (g *Generator) GenerateSummary(a analysis.Analysis) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Telemetry Summary\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Total Records: %d (ticks %d-%d)\n", a.Records, a.FirstTick, a.LastTick))
	sb.WriteString(fmt.Sprintf("  - Training: %d\n", a.TrainingTicks))
	sb.WriteString(fmt.Sprintf("  - Testing: %d\n", a.TestingTicks))
	sb.WriteString(fmt.Sprintf("  - Engine Failure Ticks: %d\n", a.FailureTicks))
	sb.WriteString(fmt.Sprintf("  - Failure Episodes: %d\n", len(a.Episodes)))
	if a.Gaps > 0 {
		sb.WriteString(fmt.Sprintf("  - Tick Gaps: %d\n", a.Gaps))
	}
	sb.WriteString("\n")
	sb.WriteString("Vibration Severity:\n")
	for _, s := range analysis.Severities {
		sb.WriteString(fmt.Sprintf("  - %-8s %d\n", s, a.BySeverity[s]))
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateWarnings generates a list of engine failure episodes
func (g *Generator) GenerateWarnings(episodes []analysis.Episode) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Warnings\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	if len(episodes) == 0 {
		sb.WriteString("No engine failures!\n")
		return sb.String()
	}

	for _, e := range episodes {
		timestamp := toTime(e.StartTime).Format("2006-01-02 15:04:05")
		sb.WriteString(fmt.Sprintf("[%s] Engine failure at tick %d for %d tick(s), peak vibration %.2fg (%s)\n",
			timestamp, e.StartTick, e.Ticks(), e.PeakVibration, analysis.ClassifyVibration(e.PeakVibration)))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total Warnings: %d\n", len(episodes)))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateDetailedTimeline generates a detailed timeline of records
func (g *Generator) GenerateDetailedTimeline(records []simulation.TelemetryRecord, limit int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Detailed Timeline")
	if limit > 0 && limit < len(records) {
		sb.WriteString(fmt.Sprintf(" (showing first %d records)", limit))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	displayCount := len(records)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}

	for i := 0; i < displayCount; i++ {
		record := records[i]
		timestamp := toTime(record.Timestamp).Format("15:04:05.000")
		sb.WriteString(fmt.Sprintf("[%s] %5d %s\n", timestamp, record.Tick, simulation.FormatLine(record)))
	}

	if limit > 0 && limit < len(records) {
		sb.WriteString(fmt.Sprintf("\n... and %d more records\n", len(records)-limit))
	}

	sb.WriteString("\n")

	return sb.String()
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}

func toTime(epochSeconds float64) time.Time {
	return simulation.TelemetryRecord{Timestamp: epochSeconds}.Time()
}
