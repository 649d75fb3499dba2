package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Render outcome labels.
const (
	statusOK         = "ok"
	statusBadRequest = "bad_request"
	statusError      = "error"

	typeUnknown = "unknown"
)

// metrics holds the render collectors.
type metrics struct {
	renders  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newMetrics registers the render collectors on reg.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ogimage",
			Name:      "render_total",
			Help:      "Card render requests by output type and outcome.",
		}, []string{"type", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ogimage",
			Name:      "render_duration_seconds",
			Help:      "Time spent generating a card, by output type.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"type"}),
	}
	reg.MustRegister(m.renders, m.duration)
	return m
}

// newRegistry returns a registry carrying the Go runtime and process collectors.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func (m *metrics) observe(fileType, status string, elapsed time.Duration) {
	m.renders.WithLabelValues(fileType, status).Inc()
	if status != statusBadRequest {
		m.duration.WithLabelValues(fileType).Observe(elapsed.Seconds())
	}
}
