package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Canales de entrega del informe de inventario.
const (
	ChannelDownload = "download"
	ChannelEmail    = "email"
)

// Metrics métricas Prometheus de la API.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ReportsTotal       *prometheus.CounterVec
	ReportErrorsTotal  *prometheus.CounterVec
	LoginAttemptsTotal *prometheus.CounterVec
}

// New crea y registra las métricas. Con registry nil se usa uno nuevo (útil en tests).
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ReportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_reports_total",
				Help: "Informes PDF generados por canal",
			},
			[]string{"channel"},
		),
		ReportErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_report_errors_total",
				Help: "Informes PDF fallidos por canal",
			},
			[]string{"channel"},
		),
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_login_attempts_total",
				Help: "Intentos de login por resultado",
			},
			[]string{"result"},
		),
	}
	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReportsTotal,
		m.ReportErrorsTotal,
		m.LoginAttemptsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry devuelve el registro donde viven las métricas.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler expone las métricas en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ReportResult registra el resultado de un informe. Un informe vacío no cuenta como error.
func (m *Metrics) ReportResult(channel string, err error) {
	if err != nil {
		m.ReportErrorsTotal.WithLabelValues(channel).Inc()
		return
	}
	m.ReportsTotal.WithLabelValues(channel).Inc()
}
