package simulation

import (
	"time"
)

// Phase defines the operating phase of the simulation
type Phase int

const (
	PhaseTraining Phase = iota
	PhaseTesting
)

// TrainingTicks is the last tick that belongs to the training phase
const TrainingTicks = 120

// TestingInterval is the real-time delay between testing ticks
const TestingInterval = 500 * time.Millisecond

// String returns the console tag name of the phase
func (p Phase) String() string {
	if p == PhaseTesting {
		return "TESTING"
	}
	return "TRAINING"
}

// State is the evolving flight state owned by a Simulator
type State struct {
	Tick          int
	Phase         Phase
	EngineFailure bool
	Altitude      float64 // feet
	Airspeed      float64 // knots
	Pitch         float64 // degrees
	Vibration     float64 // g
}

// InitialState returns the state of a freshly started aircraft
func InitialState() State {
	return State{
		Tick:      0,
		Phase:     PhaseTraining,
		Altitude:  1000.0,
		Airspeed:  250.0,
		Pitch:     2.0,
		Vibration: 2.5,
	}
}

// TelemetryRecord is the snapshot emitted once per tick
type TelemetryRecord struct {
	Timestamp     float64 `json:"timestamp"`
	Altitude      float64 `json:"altitude"`
	Airspeed      float64 `json:"airspeed"`
	Pitch         float64 `json:"pitch"`
	Vibration     float64 `json:"vibration"`
	EngineFailure bool    `json:"engineFailure"`
	TrainingPhase bool    `json:"trainingPhase"`
	Tick          int     `json:"simulationTime"`
}

// Phase returns the phase the record was produced in
func (r TelemetryRecord) Phase() Phase {
	if r.TrainingPhase {
		return PhaseTraining
	}
	return PhaseTesting
}

// Time converts the fractional epoch timestamp back to a time.Time
func (r TelemetryRecord) Time() time.Time {
	return time.UnixMilli(int64(r.Timestamp*1000 + 0.5))
}
