package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
)

func TestInitMeterProvider(t *testing.T) {
	handler, shutdown, err := InitMeterProvider("console-test", "0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	meter := otel.Meter("metrics-test")
	counter, err := meter.Int64Counter("console.test.events")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "console_test_events_total") {
		t.Error("expected the recorded counter in the scrape output")
	}
	// The registry is private; default-registry collectors must not leak in.
	if strings.Contains(body, "go_goroutines") {
		t.Error("expected no default-registry metrics in the scrape output")
	}
}
