package metrics

import (
	"net/http"
	"time"
)

const (
	metricsReadHeaderTimeout = 5 * time.Second
	metricsReadTimeout       = 10 * time.Second
	metricsWriteTimeout      = 10 * time.Second
	metricsIdleTimeout       = 120 * time.Second
)

// Endpoints served by NewMetricsServer.
const (
	MetricsPath   = "/metrics"
	HealthPath    = "/health"
	LivenessPath  = "/healthz"
	ReadinessPath = "/readyz"
)

// NewMetricsServer returns an HTTP server exposing c at MetricsPath and, if h
// is non-nil, the health endpoints. The caller starts and shuts it down.
func NewMetricsServer(addr string, c *Collector, h *HealthCheck) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, c.Handler())

	if h != nil {
		mux.Handle(HealthPath, h.Handler())
		mux.Handle(LivenessPath, h.LivenessHandler())
		mux.Handle(ReadinessPath, h.ReadinessHandler())
	}

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
		ReadTimeout:       metricsReadTimeout,
		WriteTimeout:      metricsWriteTimeout,
		IdleTimeout:       metricsIdleTimeout,
	}
}
