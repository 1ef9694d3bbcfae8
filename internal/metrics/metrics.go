package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the studio backend
type Metrics struct {
	// Record store counters
	SavesTotal   prometheus.Counter
	DeletesTotal prometheus.Counter

	// Remote synchronization
	MirrorTotal        *prometheus.CounterVec // op, result
	RemoteRefreshTotal *prometheus.CounterVec // result

	// Content generation and suggestions
	GenerationsTotal *prometheus.CounterVec // intent
	SuggestionsTotal *prometheus.CounterVec // field

	// API metrics
	APIRequestsTotal *prometheus.CounterVec // method, status

	registry *prometheus.Registry
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		SavesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "studio_campaign_saves_total",
			Help: "Total number of campaign saves committed to the local store",
		}),
		DeletesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "studio_campaign_deletes_total",
			Help: "Total number of campaign deletes committed to the local store",
		}),
		MirrorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_remote_mirror_total",
				Help: "Total number of remote mirror attempts by operation and result",
			},
			[]string{"op", "result"},
		),
		RemoteRefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_remote_refresh_total",
				Help: "Total number of remote collection refreshes by result",
			},
			[]string{"result"},
		),
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_content_generations_total",
				Help: "Total number of content generations by matched intent",
			},
			[]string{"intent"},
		),
		SuggestionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_suggestions_total",
				Help: "Total number of suggestion computations by field",
			},
			[]string{"field"},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studio_api_requests_total",
				Help: "Total number of API requests by method and status",
			},
			[]string{"method", "status"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.SavesTotal,
		m.DeletesTotal,
		m.MirrorTotal,
		m.RemoteRefreshTotal,
		m.GenerationsTotal,
		m.SuggestionsTotal,
		m.APIRequestsTotal,
		collectors.NewGoCollector(),
	)

	return m
}

// Handler returns an HTTP handler serving the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
