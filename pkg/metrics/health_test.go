package metrics

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("%s content type = %q", path, ct)
	}
	return rec
}

func TestHealthCheckHealthy(t *testing.T) {
	hc := NewHealthCheck("1.2.3")
	hc.AddCheck("post", func() error { return nil })

	rec := serve(t, hc.Handler(), HealthPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != HealthStatusHealthy {
		t.Errorf("status = %s, want healthy", resp.Status)
	}
	if resp.Version != "1.2.3" {
		t.Errorf("version = %s", resp.Version)
	}
	if resp.Uptime == "" {
		t.Error("expected uptime")
	}
	if resp.Checks["post"].Status != HealthStatusHealthy {
		t.Errorf("post check = %+v", resp.Checks["post"])
	}
}

func TestHealthCheckUnhealthy(t *testing.T) {
	hc := NewHealthCheck("dev")
	hc.AddChecks(map[string]CheckFunc{
		"post": func() error { return nil },
		"rng":  func() error { return errors.New("stuck output") },
	})

	rec := serve(t, hc.Handler(), HealthPath)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != HealthStatusUnhealthy {
		t.Errorf("status = %s, want unhealthy", resp.Status)
	}
	rng := resp.Checks["rng"]
	if rng.Status != HealthStatusUnhealthy || rng.Message != "stuck output" {
		t.Errorf("rng check = %+v", rng)
	}
	if resp.Checks["post"].Status != HealthStatusHealthy {
		t.Error("passing check reported unhealthy")
	}
}

func TestHealthCheckLiveness(t *testing.T) {
	hc := NewHealthCheck("dev")
	hc.AddCheck("broken", func() error { return errors.New("down") })

	// Liveness ignores check results.
	rec := serve(t, hc.LivenessHandler(), LivenessPath)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestHealthCheckReadiness(t *testing.T) {
	hc := NewHealthCheck("dev")
	failing := true
	hc.AddCheck("pairwise", func() error {
		if failing {
			return errors.New("mismatch")
		}
		return nil
	})

	var body struct {
		Status HealthStatus `json:"status"`
		Ready  bool         `json:"ready"`
	}

	rec := serve(t, hc.ReadinessHandler(), ReadinessPath)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Ready {
		t.Error("expected not ready")
	}

	failing = false
	rec = serve(t, hc.ReadinessHandler(), ReadinessPath)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Ready || body.Status != HealthStatusHealthy {
		t.Errorf("readiness = %+v", body)
	}
}

func TestHealthCheckNamesAndRemove(t *testing.T) {
	hc := NewHealthCheck("dev")
	hc.AddCheck("rng", func() error { return nil })
	hc.AddCheck("pairwise", func() error { return nil })
	hc.AddCheck("post", func() error { return nil })

	if got, want := hc.Names(), []string{"pairwise", "post", "rng"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	hc.RemoveCheck("pairwise")
	hc.RemoveCheck("missing")
	if got := hc.Names(); len(got) != 2 {
		t.Errorf("Names() after remove = %v", got)
	}
	if resp := hc.Check(); len(resp.Checks) != 2 {
		t.Errorf("expected 2 check results, got %d", len(resp.Checks))
	}
}

func TestNewMetricsServer(t *testing.T) {
	c := NewCollector("test")

	server := NewMetricsServer("127.0.0.1:0", c, nil)
	if server.Addr != "127.0.0.1:0" {
		t.Errorf("Addr = %s", server.Addr)
	}
	if server.ReadHeaderTimeout == 0 || server.WriteTimeout == 0 {
		t.Error("expected server timeouts")
	}

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("%s status = %d", MetricsPath, rec.Code)
	}

	// Without a health check the health endpoints are not mounted.
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, HealthPath, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("%s status = %d, want 404", HealthPath, rec.Code)
	}

	server = NewMetricsServer("127.0.0.1:0", c, NewHealthCheck("dev"))
	for _, path := range []string{HealthPath, LivenessPath, ReadinessPath} {
		rec = httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
}
