package engine

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors the engine updates as it
// processes rows, one set shared across all per-symbol pipelines.
type Metrics struct {
	registry *prometheus.Registry

	RowsProcessed   *prometheus.CounterVec
	DispatchErrors  *prometheus.CounterVec
	BookDepth       *prometheus.GaugeVec
	SnapshotsStored *prometheus.CounterVec
}

// NewMetrics builds and registers the engine's metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_rows_processed_total",
			Help: "Total update rows successfully applied, by symbol.",
		}, []string{"symbol"}),
		DispatchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_dispatch_errors_total",
			Help: "Total rows rejected by the dispatcher, by symbol and error code.",
		}, []string{"symbol", "code"}),
		BookDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orderbook_depth",
			Help: "Current number of populated top-N slots, by symbol and side.",
		}, []string{"symbol", "side"}),
		SnapshotsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_snapshots_stored_total",
			Help: "Total snapshots written to the latest-value cache, by symbol.",
		}, []string{"symbol"}),
	}

	m.registry.MustRegister(m.RowsProcessed, m.DispatchErrors, m.BookDepth, m.SnapshotsStored)
	return m
}

// Handler returns the HTTP handler that serves this Metrics' registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
