package simulation

import (
	"math"
	"time"
)

// RandomSource supplies the random draws used for failure injection and vibration.
// *rand.Rand from math/rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// Clock returns the current wall-clock time
type Clock func() time.Time

// Option configures a Simulator
type Option func(*Simulator)

// WithClock overrides the wall clock used for record timestamps
func WithClock(clock Clock) Option {
	return func(s *Simulator) {
		s.clock = clock
	}
}

// WithState starts the simulator from the given state instead of InitialState
func WithState(state State) Option {
	return func(s *Simulator) {
		s.state = state
	}
}

// Simulator advances the flight state one tick at a time
type Simulator struct {
	state State
	rng   RandomSource
	clock Clock
}

// NewSimulator creates a new simulator
func NewSimulator(rng RandomSource, opts ...Option) *Simulator {
	s := &Simulator{
		state: InitialState(),
		rng:   rng,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a copy of the current flight state
func (s *Simulator) State() State {
	return s.state
}

// Step advances the simulation by one tick and returns the record for it
func (s *Simulator) Step() TelemetryRecord {
	s.state.Tick++
	s.updatePhase()
	s.updateFlightParameters()
	s.updateEngineStatus()
	s.updateVibration()
	return s.record()
}

// updatePhase derives the phase from the tick counter
func (s *Simulator) updatePhase() {
	s.state.Phase = PhaseForTick(s.state.Tick)
	if s.state.Phase == PhaseTraining {
		s.state.EngineFailure = false
	}
}

// updateFlightParameters moves altitude using the previous pitch, then recomputes airspeed and pitch
func (s *Simulator) updateFlightParameters() {
	s.state.Altitude += AltitudeDelta(s.state.Pitch)
	s.state.Airspeed = Airspeed(s.state.Tick, s.state.EngineFailure)
	s.state.Pitch = Pitch(s.state.Tick, s.state.EngineFailure)
}

// updateEngineStatus injects and clears engine failures during testing
func (s *Simulator) updateEngineStatus() {
	if s.state.Phase != PhaseTesting {
		return
	}
	if s.rng.Intn(20)%20 == 0 {
		s.state.EngineFailure = true
	}
	if s.rng.Intn(10)%10 == 0 {
		s.state.EngineFailure = false
	}
}

// updateVibration samples vibration from the band matching the engine status
func (s *Simulator) updateVibration() {
	if s.state.EngineFailure {
		s.state.Vibration = sampleRange(s.rng, 5.0, 10.0)
	} else {
		s.state.Vibration = sampleRange(s.rng, 2.5, 3.5)
	}
}

// record packages the current state with a wall-clock timestamp
func (s *Simulator) record() TelemetryRecord {
	return TelemetryRecord{
		Timestamp:     float64(s.clock().UnixMilli()) / 1000.0,
		Altitude:      s.state.Altitude,
		Airspeed:      s.state.Airspeed,
		Pitch:         s.state.Pitch,
		Vibration:     s.state.Vibration,
		EngineFailure: s.state.EngineFailure,
		TrainingPhase: s.state.Phase == PhaseTraining,
		Tick:          s.state.Tick,
	}
}

// PhaseForTick returns the phase a given tick belongs to
func PhaseForTick(tick int) Phase {
	if tick <= TrainingTicks {
		return PhaseTraining
	}
	return PhaseTesting
}

// PacingDelay returns how long the loop waits after emitting a record in the given phase
func PacingDelay(phase Phase) time.Duration {
	if phase == PhaseTesting {
		return TestingInterval
	}
	return 0
}

// AltitudeDelta returns the altitude change for one tick flown at pitchDeg degrees
func AltitudeDelta(pitchDeg float64) float64 {
	return 10.0 * math.Sin(pitchDeg*math.Pi/180.0)
}

// Airspeed computes airspeed for a tick. The integer remainder is used directly as radians.
func Airspeed(tick int, failing bool) float64 {
	if failing {
		return 150.0 + 20.0*math.Sin(float64(tick%5))
	}
	return 250.0 + 30.0*math.Cos(float64(tick%8))
}

// Pitch computes pitch for a tick. The integer remainder is used directly as radians.
func Pitch(tick int, failing bool) float64 {
	if failing {
		return 15.0 * math.Sin(float64(tick%3))
	}
	return 2.0 + 5.0*math.Cos(float64(tick%7))
}

// sampleRange draws a uniform value in [lo, hi], both ends inclusive
func sampleRange(rng RandomSource, lo, hi float64) float64 {
	v := lo + rng.Float64()*(hi-lo)
	return math.Min(math.Max(v, lo), hi)
}
