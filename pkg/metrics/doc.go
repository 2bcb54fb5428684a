// Package metrics provides observability primitives for the SETLA scheme.
//
// # Overview
//
// The package offers:
//   - A Prometheus collector for key generation and signcryption activity
//   - A tracing interface with a recording tracer and an OpenTelemetry bridge
//   - Structured logging with levels and secret redaction
//   - Health check endpoints
//
// None of these are required. A scheme built without options logs through
// the global logger, traces nothing and records no metrics.
//
// # Metrics Collection
//
// The Collector type implements prometheus.Collector. Metric names have the
// form <namespace>_setla_<name> and carry a constant version label:
//
//	collector := metrics.NewCollector("myapp")
//	if err := collector.Register(prometheus.DefaultRegisterer); err != nil {
//		return err
//	}
//
//	scheme, err := setla.New(params, setla.WithCollector(collector))
//
// Recorded series:
//   - keygen_total
//   - signcrypt_total, signcrypt_failures_total
//   - signcrypt_rejections_total{reason="norm"|"rounding"}
//   - signcrypt_attempts, signcrypt_duration_seconds (histograms)
//   - unsigncrypt_total, unsigncrypt_failures_total
//   - unsigncrypt_duration_seconds (histogram)
//
// All Collector methods are safe on a nil receiver.
//
// # Tracing
//
// Spans are started for key generation, signcryption, unsigncryption and the
// pairwise self test:
//
//	tracer := metrics.NewSimpleTracer()
//	scheme, err := setla.New(params, setla.WithTracer(tracer))
//
//	for _, span := range tracer.Spans() {
//		fmt.Println(span.Name, span.Duration, span.Error)
//	}
//
// Build with -tags otel to export spans through OpenTelemetry:
//
//	scheme, err := setla.New(params, setla.WithTracer(metrics.NewOTelTracer("setla")))
//
// Span attributes never include keys or message contents.
//
// # Structured Logging
//
//	logger := metrics.NewLogger(
//		metrics.WithLevel(metrics.LevelInfo),
//		metrics.WithFormat(metrics.FormatJSON),
//	)
//	logger.Info("signcryption accepted", metrics.Fields{"attempts": 3})
//
// Fields named key, message, plaintext, secret or privateKey are written as
// [REDACTED] in both text and JSON output.
//
// # Health Checks
//
//	health := metrics.NewHealthCheck(version.String())
//	health.AddChecks(scheme.HealthChecks())
//
// Check reports unhealthy when any registered check returns an error.
//
// # Observability Server
//
// NewMetricsServer serves the collector at /metrics and, when a HealthCheck is
// given, /health, /healthz and /readyz:
//
//	server := metrics.NewMetricsServer(":9090", collector, health)
//	go server.ListenAndServe()
package metrics
