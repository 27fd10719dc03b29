package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ShipMachineMetricsCollector records ShipMachine step/morph/reset events,
// grounded on the teacher's ContainerMetricsCollector shape but pushed
// directly from the supervisor's tick loop rather than polled from a
// getContainers snapshot function — the supervisor calls Step()
// synchronously and already knows the outcome, so there is nothing to poll.
type ShipMachineMetricsCollector struct {
	stepTotal    *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	morphTotal   *prometheus.CounterVec
	resetTotal   *prometheus.CounterVec
}

// NewShipMachineMetricsCollector creates a new ship machine metrics collector.
func NewShipMachineMetricsCollector() *ShipMachineMetricsCollector {
	return &ShipMachineMetricsCollector{
		stepTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ship_step_total",
				Help:      "Total number of ShipMachine.Step calls by variant and outcome",
			},
			[]string{"variant", "outcome"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ship_step_duration_seconds",
				Help:      "ShipMachine.Step duration distribution by variant",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{"variant"},
		),
		morphTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ship_morph_total",
				Help:      "Total number of ShipMachine variant transitions",
			},
			[]string{"from_variant", "to_variant"},
		),
		resetTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ship_reset_total",
				Help:      "Total number of ShipMachine.Reset calls by variant",
			},
			[]string{"variant"},
		),
	}
}

// Register registers all ship machine metrics with the Prometheus registry.
func (c *ShipMachineMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, metric := range []prometheus.Collector{c.stepTotal, c.stepDuration, c.morphTotal, c.resetTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordStep records one ShipMachine.Step() completion.
func (c *ShipMachineMetricsCollector) RecordStep(shipID, variant string, duration float64, success bool) {
	outcome := "ok"
	if !success {
		outcome = "error"
	}
	c.stepTotal.WithLabelValues(variant, outcome).Inc()
	c.stepDuration.WithLabelValues(variant).Observe(duration)
}

// RecordMorph records one ShipMachine variant transition.
func (c *ShipMachineMetricsCollector) RecordMorph(shipID, fromVariant, toVariant string) {
	c.morphTotal.WithLabelValues(fromVariant, toVariant).Inc()
}

// RecordReset records one ShipMachine.Reset() call.
func (c *ShipMachineMetricsCollector) RecordReset(shipID, variant string) {
	c.resetTotal.WithLabelValues(variant).Inc()
}
