package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewCollector(t *testing.T) {
	c := NewCollector("test")
	if c == nil {
		t.Fatal("expected non-nil collector")
	}

	// The rejection vector has no children until a reason is recorded.
	if n := testutil.CollectAndCount(c); n != 8 {
		t.Errorf("expected 8 metrics, got %d", n)
	}
}

func TestCollectorKeyGen(t *testing.T) {
	c := NewCollector("test")

	c.KeyGenerated()
	c.KeyGenerated()

	if v := testutil.ToFloat64(c.keygenTotal); v != 2 {
		t.Errorf("expected 2 key pairs, got %v", v)
	}
}

func TestCollectorSigncrypt(t *testing.T) {
	c := NewCollector("test")

	c.SigncryptRejected(ReasonNorm)
	c.SigncryptRejected(ReasonNorm)
	c.SigncryptRejected(ReasonRounding)
	c.SigncryptCompleted(4, 2*time.Millisecond)
	c.SigncryptFailed()

	if v := testutil.ToFloat64(c.signcryptTotal); v != 1 {
		t.Errorf("signcrypt_total = %v, want 1", v)
	}
	if v := testutil.ToFloat64(c.signcryptFailures); v != 1 {
		t.Errorf("signcrypt_failures_total = %v, want 1", v)
	}
	if v := testutil.ToFloat64(c.signcryptRejections.WithLabelValues(ReasonNorm)); v != 2 {
		t.Errorf("norm rejections = %v, want 2", v)
	}
	if v := testutil.ToFloat64(c.signcryptRejections.WithLabelValues(ReasonRounding)); v != 1 {
		t.Errorf("rounding rejections = %v, want 1", v)
	}
	if n := testutil.CollectAndCount(c, "test_setla_signcrypt_rejections_total"); n != 2 {
		t.Errorf("expected 2 rejection series, got %d", n)
	}
}

func TestCollectorUnsigncrypt(t *testing.T) {
	c := NewCollector("test")

	c.UnsigncryptCompleted(true, time.Millisecond)
	c.UnsigncryptCompleted(false, time.Millisecond)
	c.UnsigncryptCompleted(false, time.Millisecond)

	if v := testutil.ToFloat64(c.unsigncryptTotal); v != 3 {
		t.Errorf("unsigncrypt_total = %v, want 3", v)
	}
	if v := testutil.ToFloat64(c.unsigncryptFailures); v != 2 {
		t.Errorf("unsigncrypt_failures_total = %v, want 2", v)
	}
}

func TestCollectorNilReceiver(t *testing.T) {
	var c *Collector

	// None of these should panic.
	c.KeyGenerated()
	c.SigncryptRejected(ReasonNorm)
	c.SigncryptCompleted(1, time.Millisecond)
	c.SigncryptFailed()
	c.UnsigncryptCompleted(false, time.Millisecond)

	if err := c.Register(prometheus.NewRegistry()); err != nil {
		t.Errorf("Register on nil collector: %v", err)
	}

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("nil collector handler status = %d", rec.Code)
	}
}

func TestCollectorRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("test")

	if err := c.Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := c.Register(reg); err == nil {
		t.Error("expected duplicate registration to fail")
	}

	// Two collectors with distinct namespaces can share a registry.
	if err := NewCollector("other").Register(reg); err != nil {
		t.Errorf("Register second namespace: %v", err)
	}
}

func TestCollectorHandler(t *testing.T) {
	c := NewCollector("test")
	c.KeyGenerated()
	c.SigncryptCompleted(2, time.Millisecond)

	handler := c.Handler()
	req := httptest.NewRequest(http.MethodGet, MetricsPath, nil)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		resp := w.Result()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/plain") {
			t.Errorf("expected text/plain content type, got %s", ct)
		}

		body := w.Body.String()
		for _, want := range []string{
			"# TYPE test_setla_keygen_total counter",
			"test_setla_keygen_total{version=",
			"test_setla_signcrypt_attempts_bucket{",
			"test_setla_signcrypt_duration_seconds_count{",
		} {
			if !strings.Contains(body, want) {
				t.Errorf("expected %q in exposition", want)
			}
		}
	}
}
