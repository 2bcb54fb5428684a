package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sara-star-quant/setla/pkg/version"
)

// Subsystem is the Prometheus subsystem of every scheme metric.
const Subsystem = "setla"

// Rejection reasons recorded by SigncryptRejected.
const (
	ReasonNorm     = "norm"
	ReasonRounding = "rounding"
)

// Default bucket configurations for histograms.
var (
	// AttemptBuckets for the number of rejection sampling attempts per signcryption.
	AttemptBuckets = []float64{1, 2, 3, 4, 6, 8, 12, 16, 32, 64}

	// LatencyBuckets for signcrypt/unsigncrypt duration (seconds).
	LatencyBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}
)

// Collector aggregates scheme metrics. It implements prometheus.Collector and
// can be registered with any registry. All methods are safe on a nil
// receiver, which records nothing.
type Collector struct {
	keygenTotal prometheus.Counter

	signcryptTotal      prometheus.Counter
	signcryptFailures   prometheus.Counter
	signcryptRejections *prometheus.CounterVec
	signcryptAttempts   prometheus.Histogram
	signcryptDuration   prometheus.Histogram

	unsigncryptTotal    prometheus.Counter
	unsigncryptFailures prometheus.Counter
	unsigncryptDuration prometheus.Histogram

	registryOnce sync.Once
	registry     *prometheus.Registry
}

// NewCollector creates a collector whose metrics are named
// <namespace>_setla_<name>. Every metric carries a constant version label.
func NewCollector(namespace string) *Collector {
	labels := prometheus.Labels{"version": version.String()}

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   Subsystem,
			Name:        name,
			Help:        help,
			Buckets:     buckets,
			ConstLabels: labels,
		})
	}

	return &Collector{
		keygenTotal: counter("keygen_total", "Number of generated key pairs"),

		signcryptTotal:    counter("signcrypt_total", "Number of successful signcryptions"),
		signcryptFailures: counter("signcrypt_failures_total", "Number of signcryptions that returned an error"),
		signcryptRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   Subsystem,
			Name:        "signcrypt_rejections_total",
			Help:        "Number of rejected signcryption attempts by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		signcryptAttempts: histogram("signcrypt_attempts", "Attempts needed per successful signcryption", AttemptBuckets),
		signcryptDuration: histogram("signcrypt_duration_seconds", "Duration of successful signcryptions", LatencyBuckets),

		unsigncryptTotal:    counter("unsigncrypt_total", "Number of unsigncryption calls"),
		unsigncryptFailures: counter("unsigncrypt_failures_total", "Number of rejected unsigncryptions"),
		unsigncryptDuration: histogram("unsigncrypt_duration_seconds", "Duration of unsigncryption calls", LatencyBuckets),
	}
}

func (c *Collector) metrics() []prometheus.Collector {
	return []prometheus.Collector{
		c.keygenTotal,
		c.signcryptTotal,
		c.signcryptFailures,
		c.signcryptRejections,
		c.signcryptAttempts,
		c.signcryptDuration,
		c.unsigncryptTotal,
		c.unsigncryptFailures,
		c.unsigncryptDuration,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.metrics() {
		m.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.metrics() {
		m.Collect(ch)
	}
}

// Register registers the collector with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	if c == nil {
		return nil
	}
	return reg.Register(c)
}

// Handler returns an HTTP handler exposing this collector in the Prometheus
// text format from a private registry.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	c.registryOnce.Do(func() {
		c.registry = prometheus.NewRegistry()
		c.registry.MustRegister(c)
	})
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// --- Key Generation ---

// KeyGenerated records a generated key pair.
func (c *Collector) KeyGenerated() {
	if c == nil {
		return
	}
	c.keygenTotal.Inc()
}

// --- Signcryption ---

// SigncryptRejected records one rejected attempt with the given reason.
func (c *Collector) SigncryptRejected(reason string) {
	if c == nil {
		return
	}
	c.signcryptRejections.WithLabelValues(reason).Inc()
}

// SigncryptCompleted records a successful signcryption.
func (c *Collector) SigncryptCompleted(attempts int, d time.Duration) {
	if c == nil {
		return
	}
	c.signcryptTotal.Inc()
	c.signcryptAttempts.Observe(float64(attempts))
	c.signcryptDuration.Observe(d.Seconds())
}

// SigncryptFailed records a signcryption that returned an error.
func (c *Collector) SigncryptFailed() {
	if c == nil {
		return
	}
	c.signcryptFailures.Inc()
}

// --- Unsigncryption ---

// UnsigncryptCompleted records an unsigncryption call and whether it was accepted.
func (c *Collector) UnsigncryptCompleted(accepted bool, d time.Duration) {
	if c == nil {
		return
	}
	c.unsigncryptTotal.Inc()
	if !accepted {
		c.unsigncryptFailures.Inc()
	}
	c.unsigncryptDuration.Observe(d.Seconds())
}
