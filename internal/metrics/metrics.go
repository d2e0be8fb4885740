// Package metrics exposes the plug loop's activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sweeney/smart-plug/internal/plug"
)

// Metrics holds the collectors fed from the poll loop.
type Metrics struct {
	iterations prometheus.Counter
	events     *prometheus.CounterVec
	state      prometheus.Gauge
	resolved   prometheus.Gauge
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartplug_loop_iterations_total",
			Help: "Total poll loop iterations.",
		}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartplug_events_total",
			Help: "Loop events by type.",
		}, []string{"type"}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smartplug_state",
			Help: "Plug state ordinal (0 = ON, 1 = OFF).",
		}),
		resolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "smartplug_coordinator_resolved",
			Help: "1 once the coordinator address has been discovered.",
		}),
	}
	reg.MustRegister(m.iterations, m.events, m.state, m.resolved)
	return m
}

// Observe records one loop iteration.
func (m *Metrics) Observe(state plug.State, resolved bool, events []plug.Event) {
	m.iterations.Inc()
	for _, e := range events {
		m.events.WithLabelValues(string(e.Type)).Inc()
	}
	m.state.Set(float64(state.Ordinal()))
	if resolved {
		m.resolved.Set(1)
	} else {
		m.resolved.Set(0)
	}
}
