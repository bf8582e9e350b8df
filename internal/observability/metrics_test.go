package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetrics_Usable verifies that label dimensions match usage in the client package.
func TestMetrics_Usable(t *testing.T) {
	WeatherAPICallsTotal.WithLabelValues("current", "success").Inc()
	WeatherAPICallsTotal.WithLabelValues("forecast", "error").Inc()
	WeatherAPIDuration.WithLabelValues("current", "success").Observe(0.1)
	WeatherAPIErrorsTotal.WithLabelValues("timeout").Inc()
	LookupValidationFailuresTotal.WithLabelValues("zip_code", "countryCode").Inc()
	WeatherLookupsTotal.WithLabelValues("group", "city_ids").Inc()

	if got := testutil.ToFloat64(LookupValidationFailuresTotal.WithLabelValues("zip_code", "countryCode")); got < 1 {
		t.Errorf("lookupValidationFailuresTotal = %v, want >= 1", got)
	}
}

func TestWriteMetrics_TextFormat(t *testing.T) {
	WeatherLookupsTotal.WithLabelValues("current", "city_name").Inc()

	var buf bytes.Buffer
	if err := WriteMetrics(&buf); err != nil {
		t.Fatalf("WriteMetrics() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "# TYPE weatherLookupsTotal counter") {
		t.Errorf("WriteMetrics() output missing weatherLookupsTotal TYPE line")
	}
	if !strings.Contains(out, `weatherLookupsTotal{endpoint="current",mode="city_name"}`) {
		t.Errorf("WriteMetrics() output missing labelled sample")
	}
}

// TestMetricsHandler_ServesPrometheusFormat verifies that MetricsHandler serves
// Prometheus text exposition format with correct HTTP status and metric output.
func TestMetricsHandler_ServesPrometheusFormat(t *testing.T) {
	WeatherAPICallsTotal.WithLabelValues("current", "success").Inc()

	handler := MetricsHandler()
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("MetricsHandler status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "weatherApiCallsTotal") {
		t.Error("MetricsHandler response should contain metric output")
	}
}

func TestFlush_WritesMetrics(t *testing.T) {
	var buf bytes.Buffer
	if err := Flush(nil, &buf); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Flush() wrote no metrics")
	}
}
