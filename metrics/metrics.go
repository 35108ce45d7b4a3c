// Package metrics exposes the dashboard's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sensor_dashboard"

// Transports label selections by where they arrived.
const (
	TransportPage = "page"
	TransportHTTP = "http"
	TransportWS   = "ws"
)

// Metrics holds the collectors on a private registry, so several instances
// can coexist in one process.
type Metrics struct {
	registry    *prometheus.Registry
	selections  *prometheus.CounterVec
	updateTime  prometheus.Histogram
	rows        prometheus.Gauge
	droppedRows prometheus.Gauge
	wsClients   prometheus.Gauge
}

// New creates and registers the dashboard collectors plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Sensor selections served, by transport.",
		}, []string{"transport"}),
		updateTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "update_seconds",
			Help:      "Time spent filtering and fitting one selection.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the loaded dataset.",
		}),
		droppedRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_dropped_rows",
			Help:      "Source rows dropped for missing values.",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_clients",
			Help:      "Connected websocket clients.",
		}),
	}
	m.registry.MustRegister(
		m.selections, m.updateTime, m.rows, m.droppedRows, m.wsClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}


// ObserveSelection records one served selection and how long it took.
func (m *Metrics) ObserveSelection(transport string, took time.Duration) {
	m.selections.WithLabelValues(transport).Inc()
	m.updateTime.Observe(took.Seconds())
}

// SetDataset records the size of the loaded dataset.
func (m *Metrics) SetDataset(rows, dropped int) {
	m.rows.Set(float64(rows))
	m.droppedRows.Set(float64(dropped))
}

// ClientConnected and ClientDisconnected track websocket clients.
func (m *Metrics) ClientConnected()    { m.wsClients.Inc() }
func (m *Metrics) ClientDisconnected() { m.wsClients.Dec() }
