package server

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the Prometheus collectors for the explorer server.
type Metrics struct {
	registry *prometheus.Registry

	sessions      prometheus.Gauge
	sessionsTotal prometheus.Counter
	frames        prometheus.Counter
	bytesOut      prometheus.Counter
	renderSeconds prometheus.Histogram
}

// NewMetrics creates the collectors on their own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "perlin2",
			Name:      "sessions_active",
			Help:      "Number of connected SSH sessions.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "perlin2",
			Name:      "sessions_total",
			Help:      "SSH sessions accepted since start.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "perlin2",
			Name:      "frames_rendered_total",
			Help:      "Frames sampled and rendered.",
		}),
		bytesOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "perlin2",
			Name:      "frame_bytes_total",
			Help:      "ANSI bytes written to sessions.",
		}),
		renderSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "perlin2",
			Name:      "frame_render_seconds",
			Help:      "Time to sample and diff one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}),
	}
	m.registry.MustRegister(m.sessions, m.sessionsTotal, m.frames, m.bytesOut, m.renderSeconds)
	return m
}

func (m *Metrics) sessionOpened() {
	m.sessions.Inc()
	m.sessionsTotal.Inc()
}

func (m *Metrics) sessionClosed() {
	m.sessions.Dec()
}

func (m *Metrics) frameRendered(d time.Duration, n int) {
	m.frames.Inc()
	m.bytesOut.Add(float64(n))
	m.renderSeconds.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartHTTP serves /metrics on addr in the background.
func (m *Metrics) StartHTTP(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	go func() {
		log.Printf("Metrics listening on %s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("Metrics server error: %v", err)
		}
	}()
}
