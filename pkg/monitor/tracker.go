package monitor

import (
	"sync"

	"github.com/sherine-k/flightsim/pkg/simulation"
)

// Summary is a point-in-time view of a run
type Summary struct {
	Records       int                         `json:"records"`
	TrainingTicks int                         `json:"trainingTicks"`
	TestingTicks  int                         `json:"testingTicks"`
	FailureTicks  int                         `json:"failureTicks"`
	FailureOnsets int                         `json:"failureOnsets"`
	WriteErrors   int                         `json:"writeErrors"`
	Phase         string                      `json:"phase"`
	Latest        *simulation.TelemetryRecord `json:"latest,omitempty"`
}

// Tracker accumulates run statistics. The tick loop writes to it while the
// status server and summary scheduler read from other goroutines.
type Tracker struct {
	mu      sync.RWMutex
	summary Summary
	latest  simulation.TelemetryRecord
	seen    bool
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{summary: Summary{Phase: simulation.PhaseTraining.String()}}
}

// Observe records a persisted telemetry record
func (t *Tracker) Observe(record simulation.TelemetryRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.summary.Records++
	if record.TrainingPhase {
		t.summary.TrainingTicks++
	} else {
		t.summary.TestingTicks++
	}
	if record.EngineFailure {
		t.summary.FailureTicks++
		if !t.seen || !t.latest.EngineFailure {
			t.summary.FailureOnsets++
		}
	}
	t.summary.Phase = record.Phase().String()
	t.latest = record
	t.seen = true
}

// WriteFailed counts a record that could not be persisted
func (t *Tracker) WriteFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.summary.WriteErrors++
}

// Summary returns a copy of the current statistics
func (t *Tracker) Summary() Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := t.summary
	if t.seen {
		latest := t.latest
		s.Latest = &latest
	}
	return s
}
