package analysis

import (
	"github.com/sherine-k/flightsim/pkg/simulation"
)

// Severity classifies a vibration reading
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Severities lists every severity from least to most severe
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// ClassifyVibration maps a vibration level in g to a severity
func ClassifyVibration(g float64) Severity {
	switch {
	case g > 8.0:
		return SeverityCritical
	case g > 6.0:
		return SeverityHigh
	case g > 4.0:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Episode is a run of consecutive ticks with the engine failing
type Episode struct {
	StartTick     int
	EndTick       int
	StartTime     float64
	PeakVibration float64
}

// Ticks returns the number of ticks the episode lasted
func (e Episode) Ticks() int {
	return e.EndTick - e.StartTick + 1
}

// Analysis summarises a telemetry stream
type Analysis struct {
	Records       int
	TrainingTicks int
	TestingTicks  int
	FailureTicks  int
	FirstTick     int
	LastTick      int
	Gaps          int
	Episodes      []Episode
	BySeverity    map[Severity]int
}

// Analyze walks the records in order and collects statistics.
// Records are expected in tick order; a tick that does not follow its
// predecessor by exactly one is counted as a gap.
func Analyze(records []simulation.TelemetryRecord) Analysis {
	a := Analysis{
		Records:    len(records),
		Episodes:   []Episode{},
		BySeverity: make(map[Severity]int),
	}
	if len(records) == 0 {
		return a
	}

	a.FirstTick = records[0].Tick
	a.LastTick = records[len(records)-1].Tick

	var current *Episode
	for i, r := range records {
		if i > 0 && r.Tick != records[i-1].Tick+1 {
			a.Gaps++
		}

		if r.TrainingPhase {
			a.TrainingTicks++
		} else {
			a.TestingTicks++
		}
		a.BySeverity[ClassifyVibration(r.Vibration)]++

		if !r.EngineFailure {
			current = nil
			continue
		}

		a.FailureTicks++
		if current == nil || r.Tick != current.EndTick+1 {
			a.Episodes = append(a.Episodes, Episode{
				StartTick:     r.Tick,
				EndTick:       r.Tick,
				StartTime:     r.Timestamp,
				PeakVibration: r.Vibration,
			})
			current = &a.Episodes[len(a.Episodes)-1]
			continue
		}
		current.EndTick = r.Tick
		if r.Vibration > current.PeakVibration {
			current.PeakVibration = r.Vibration
		}
	}

	return a
}
