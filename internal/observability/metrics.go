package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bioregion"

// Metrics holds the Prometheus counters, histograms, and gauges for the locator.
type Metrics struct {
	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: kind={zip,state}, outcome={found,not_found,error}
	ZIPLookups      *prometheus.CounterVec // labels: outcome={success,not_found,error}
	ZIPCache        *prometheus.CounterVec // labels: layer={memory,redis}, result={hit,miss}
	ZIPAPIDuration  prometheus.Histogram

	// Region metrics.
	RegionLookups *prometheus.CounterVec // labels: result={match,no_match}
	RegionsLoaded prometheus.Gauge

	// Event publishing metrics.
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all locator metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := NewUnregisteredMetrics()
	prometheus.MustRegister(
		m.GeocodeRequests,
		m.ZIPLookups,
		m.ZIPCache,
		m.ZIPAPIDuration,
		m.RegionLookups,
		m.RegionsLoaded,
		m.EventsPublished,
		m.PublishErrors,
	)
	return m
}

// NewUnregisteredMetrics builds the collectors without registering them.
// One-shot commands use it since nothing scrapes them.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocode requests by query kind and outcome.",
		}, []string{"kind", "outcome"}),
		ZIPLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zip_lookups_total",
			Help:      "Upstream ZIP API calls by outcome.",
		}, []string{"outcome"}),
		ZIPCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zip_cache_total",
			Help:      "ZIP cache lookups by layer and result.",
		}, []string{"layer", "result"}),
		ZIPAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "zip_api_duration_seconds",
			Help:      "Zippopotam API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RegionLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "region_lookups_total",
			Help:      "Point-to-bioregion lookups by result.",
		}, []string{"result"}),
		RegionsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "regions_loaded",
			Help:      "Number of bioregions in the active catalog.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_events_published_total",
			Help:      "Lookup events written to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_event_publish_errors_total",
			Help:      "Lookup events that failed to publish.",
		}),
	}
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}
