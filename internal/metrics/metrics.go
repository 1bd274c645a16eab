// Package metrics exposes Prometheus metrics for the iplstats HTTP service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pable/go-ipl-stats/internal/dataset"
)

const namespace = "iplstats"

// Manager owns a private registry and the collectors registered on it.
type Manager struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	queries             *prometheus.CounterVec
	missingEntities     *prometheus.CounterVec

	datasetMatches    prometheus.Gauge
	datasetDeliveries *prometheus.GaugeVec
	datasetDropped    *prometheus.GaugeVec
}

// NewManager creates a Manager with its own registry. Process and Go
// runtime collectors are included when withRuntime is set.
func NewManager(withRuntime bool) *Manager {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	auto := promauto.With(reg)

	return &Manager{
		registry: reg,
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status_code"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		queries: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "total",
			Help:      "Queries answered, by kind.",
		}, []string{"kind"}),
		missingEntities: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "query",
			Name:      "missing_entity_total",
			Help:      "Player queries that matched no deliveries, by kind.",
		}, []string{"kind"}),
		datasetMatches: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "matches",
			Help:      "Match rows in the loaded dataset.",
		}),
		datasetDeliveries: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "deliveries",
			Help:      "Enriched deliveries in the loaded dataset, by scope.",
		}, []string{"scope"}),
		datasetDropped: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "anomalies",
			Help:      "Delivery rows that could not be fully joined, by reason.",
		}, []string{"reason"}),
	}
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveDataset publishes the load counters of ds.
func (m *Manager) ObserveDataset(st dataset.Stats) {
	m.datasetMatches.Set(float64(st.Matches))
	m.datasetDeliveries.WithLabelValues("all").Set(float64(st.Deliveries))
	m.datasetDeliveries.WithLabelValues("regulation").Set(float64(st.Regulation))
	m.datasetDropped.WithLabelValues("orphan").Set(float64(st.OrphanDeliveries))
	m.datasetDropped.WithLabelValues("unknown_batting_team").Set(float64(st.UnknownBattingTeam))
}

// RecordRequest records one served HTTP request.
func (m *Manager) RecordRequest(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordQuery counts one answered query of the given kind.
func (m *Manager) RecordQuery(kind string) {
	m.queries.WithLabelValues(kind).Inc()
}

// RecordMissingEntity counts a player query that found nothing.
func (m *Manager) RecordMissingEntity(kind string) {
	m.missingEntities.WithLabelValues(kind).Inc()
}
