package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "primex_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: provider, outcome={success,empty,timeout,service_error,error}
	GeocodeRetries     prometheus.Counter       // delayed re-attempts after a transient failure
	GeocodeResolutions *prometheus.CounterVec   // labels: result={resolved,absent}
	GeocodeCache       *prometheus.CounterVec   // labels: result={hit,miss}
	GeocodeAPIDuration *prometheus.HistogramVec // labels: provider
	GeocodeEnabled     prometheus.Gauge

	// Dashboard metrics.
	LoginAttempts          *prometheus.CounterVec // labels: outcome={success,rejected}
	DashboardRenders       *prometheus.CounterVec // labels: outcome={ok,no_data}
	DashboardBuildDuration prometheus.Histogram

	// Export metrics.
	MessagesProduced prometheus.Counter
	ExportErrors     prometheus.Counter
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeocodeRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_retries_total",
			Help:      "Geocoding attempts repeated after a timeout or service error.",
		}),
		GeocodeResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_resolutions_total",
			Help:      "Address resolutions by result.",
		}, []string{"result"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Address cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"provider"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when address geocoding is enabled, 0 otherwise.",
		}),
		LoginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		DashboardRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Dashboard builds by outcome.",
		}, []string{"outcome"}),
		DashboardBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete dashboard build including geocoding.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_messages_produced_total",
			Help:      "Opportunity messages written to the export topic.",
		}),
		ExportErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_errors_total",
			Help:      "Failed export batch writes.",
		}),
	}

	prometheus.MustRegister(
		m.GeocodeRequests,
		m.GeocodeRetries,
		m.GeocodeResolutions,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
		m.LoginAttempts,
		m.DashboardRenders,
		m.DashboardBuildDuration,
		m.MessagesProduced,
		m.ExportErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		GeocodeRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_requests_total"}, []string{"provider", "outcome"}),
		GeocodeRetries:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_retries_total"}),
		GeocodeResolutions:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_resolutions_total"}, []string{"result"}),
		GeocodeCache:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_cache_total"}, []string{"result"}),
		GeocodeAPIDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "geocode_api_duration_seconds"}, []string{"provider"}),
		GeocodeEnabled:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "geocode_enabled"}),
		LoginAttempts:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "login_attempts_total"}, []string{"outcome"}),
		DashboardRenders:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "renders_total"}, []string{"outcome"}),
		DashboardBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "build_duration_seconds"}),
		MessagesProduced:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "export_messages_produced_total"}),
		ExportErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "export_errors_total"}),
	}
}
