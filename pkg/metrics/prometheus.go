package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	reportBuilds *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	lastForecast prometheus.Gauge
	latency      *prometheus.HistogramVec
	wsClients    prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		reportBuilds: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendcast_report_builds_total",
				Help: "Total number of forecast reports built",
			},
			[]string{"source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendcast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastForecast: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "trendcast_last_forecast_value",
				Help: "Most recent next-period forecast value",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendcast_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		wsClients: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "trendcast_ws_clients",
				Help: "Connected dashboard WebSocket clients",
			},
		),
	}
}

// RecordReportBuild records one report build per source.
func (r *Recorder) RecordReportBuild(source string) {
	r.reportBuilds.WithLabelValues(source).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastForecast records the latest next-period forecast value.
func (r *Recorder) RecordLastForecast(value float64) {
	r.lastForecast.Set(value)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// SetWSClients records the current dashboard client count.
func (r *Recorder) SetWSClients(n int) {
	r.wsClients.Set(float64(n))
}
