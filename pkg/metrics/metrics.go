package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sherine-k/flightsim/pkg/simulation"
)

// Collector exposes the latest telemetry as Prometheus metrics
type Collector struct {
	altitude      prometheus.Gauge
	airspeed      prometheus.Gauge
	pitch         prometheus.Gauge
	vibration     prometheus.Gauge
	engineFailure prometheus.Gauge
	trainingPhase prometheus.Gauge
	tick          prometheus.Gauge

	recordsWritten *prometheus.CounterVec
	writeErrors    prometheus.Counter
	failureOnsets  prometheus.Counter

	lastFailure bool
}

// NewCollector creates the metrics and registers them with reg
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		altitude:      prometheus.NewGauge(prometheus.GaugeOpts{Name: "flightsim_altitude_feet", Help: "Current simulated altitude (ft)"}),
		airspeed:      prometheus.NewGauge(prometheus.GaugeOpts{Name: "flightsim_airspeed_knots", Help: "Current simulated airspeed (kts)"}),
		pitch:         prometheus.NewGauge(prometheus.GaugeOpts{Name: "flightsim_pitch_degrees", Help: "Current simulated pitch (deg)"}),
		vibration:     prometheus.NewGauge(prometheus.GaugeOpts{Name: "flightsim_vibration_g", Help: "Current simulated vibration (g)"}),
		engineFailure: prometheus.NewGauge(prometheus.GaugeOpts{Name: "flightsim_engine_failure", Help: "1 while the engine is failing"}),
		trainingPhase: prometheus.NewGauge(prometheus.GaugeOpts{Name: "flightsim_training_phase", Help: "1 during the training phase"}),
		tick:          prometheus.NewGauge(prometheus.GaugeOpts{Name: "flightsim_tick", Help: "Last emitted simulation tick"}),
		recordsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightsim_records_written_total",
				Help: "Telemetry records persisted, by phase",
			},
			[]string{"phase"},
		),
		writeErrors:   prometheus.NewCounter(prometheus.CounterOpts{Name: "flightsim_sink_write_errors_total", Help: "Telemetry records the sink failed to persist"}),
		failureOnsets: prometheus.NewCounter(prometheus.CounterOpts{Name: "flightsim_engine_failure_onsets_total", Help: "Transitions from nominal to engine failure"}),
	}

	for _, m := range []prometheus.Collector{
		c.altitude, c.airspeed, c.pitch, c.vibration, c.engineFailure, c.trainingPhase, c.tick,
		c.recordsWritten, c.writeErrors, c.failureOnsets,
	} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe updates the gauges from a persisted record
func (c *Collector) Observe(record simulation.TelemetryRecord) {
	c.altitude.Set(record.Altitude)
	c.airspeed.Set(record.Airspeed)
	c.pitch.Set(record.Pitch)
	c.vibration.Set(record.Vibration)
	c.engineFailure.Set(boolToFloat(record.EngineFailure))
	c.trainingPhase.Set(boolToFloat(record.TrainingPhase))
	c.tick.Set(float64(record.Tick))
	c.recordsWritten.WithLabelValues(record.Phase().String()).Inc()

	if record.EngineFailure && !c.lastFailure {
		c.failureOnsets.Inc()
	}
	c.lastFailure = record.EngineFailure
}

// WriteFailed counts a record the sink could not persist
func (c *Collector) WriteFailed() {
	c.writeErrors.Inc()
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
