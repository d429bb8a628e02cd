package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sternrassler/sportradar-client/pkg/quota"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	// quota gauges are registered on import and always exported
	tracker := quota.NewTracker(zerolog.Nop())
	header := http.Header{}
	header.Set(quota.HeaderCurrent, "12")
	header.Set(quota.HeaderAllotted, "1000")
	if err := tracker.UpdateFromHeaders(header); err != nil {
		t.Fatalf("UpdateFromHeaders failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	NewMux().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyStr := string(body)
	if !strings.Contains(bodyStr, "# HELP") || !strings.Contains(bodyStr, "# TYPE") {
		t.Error("Expected Prometheus format metrics output")
	}
	if !strings.Contains(bodyStr, "sportradar_quota_current 12") {
		t.Error("Expected metrics output to contain sportradar_quota_current 12")
	}
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	NewMux().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got %q", w.Body.String())
	}
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, err := Serve(ctx, "127.0.0.1:0", zerolog.Nop())
	if err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	resp, err := http.Get("http://" + addr.String() + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
}

func TestServe_BadAddress(t *testing.T) {
	if _, err := Serve(context.Background(), "not-an-address", zerolog.Nop()); err == nil {
		t.Error("Expected error for invalid address")
	}
}
