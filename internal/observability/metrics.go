package observability

import (
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

var (
	registry *prometheus.Registry

	// OpenWeatherMap API call rate per endpoint. Watch for: error vs success ratio.
	WeatherAPICallsTotal *prometheus.CounterVec

	// External API latency per request. Watch for: p95 > 2s (upstream degradation).
	WeatherAPIDuration *prometheus.HistogramVec

	// Failed upstream calls by error category.
	WeatherAPIErrorsTotal *prometheus.CounterVec

	// Lookups rejected before any network call.
	LookupValidationFailuresTotal *prometheus.CounterVec

	// Lookups attempted, by endpoint and lookup mode.
	WeatherLookupsTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of OpenWeatherMap API calls",
		},
		[]string{"endpoint", "status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "OpenWeatherMap API latency in seconds (per request)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status"},
	)
	WeatherAPIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiErrorsTotal",
			Help: "Failed OpenWeatherMap API calls by error category",
		},
		[]string{"category"},
	)
	LookupValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lookupValidationFailuresTotal",
			Help: "Lookups rejected by input validation before any network call",
		},
		[]string{"mode", "field"},
	)
	WeatherLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherLookupsTotal",
			Help: "Total number of weather lookups by endpoint and lookup mode",
		},
		[]string{"endpoint", "mode"},
	)

	registry.MustRegister(
		WeatherAPICallsTotal, WeatherAPIDuration, WeatherAPIErrorsTotal,
		LookupValidationFailuresTotal, WeatherLookupsTotal,
	)
}

// WriteMetrics writes every registered metric family in Prometheus text format.
func WriteMetrics(w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics,
// for callers embedding the client in a process that already exposes HTTP.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
