package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the set of pipeline measurements the services report.
type Metrics interface {
	RecordRun(status string)
	RecordAnalysis(path, model string)
	RecordModelLatency(provider string, seconds float64)
	RecordLastClose(symbol string, price float64)
}

// Recorder implements Metrics using Prometheus.
type Recorder struct {
	runsTotal     *prometheus.CounterVec
	analysesTotal *prometheus.CounterVec
	modelLatency  *prometheus.HistogramVec
	lastClose     *prometheus.GaugeVec
}

// New creates a Prometheus recorder registered on reg.
// Pass prometheus.DefaultRegisterer to expose the series on /metrics.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock_pipeline_runs_total",
				Help: "Total number of pipeline runs by final status",
			},
			[]string{"status"},
		),
		analysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock_pipeline_analyses_total",
				Help: "Total number of analyses produced, split by model or fallback path",
			},
			[]string{"path", "model"},
		),
		modelLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stock_pipeline_model_call_duration_seconds",
				Help:    "Duration of model calls in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
			[]string{"provider"},
		),
		lastClose: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stock_pipeline_last_close_price",
				Help: "Close price of the latest ingested observation",
			},
			[]string{"symbol"},
		),
	}
}

// RecordRun records a finished pipeline run.
func (r *Recorder) RecordRun(status string) {
	r.runsTotal.WithLabelValues(status).Inc()
}

// RecordAnalysis records an analysis produced through path ("model" or "fallback").
func (r *Recorder) RecordAnalysis(path, model string) {
	r.analysesTotal.WithLabelValues(path, model).Inc()
}

// RecordModelLatency records a model call duration in seconds.
func (r *Recorder) RecordModelLatency(provider string, seconds float64) {
	r.modelLatency.WithLabelValues(provider).Observe(seconds)
}

// RecordLastClose records the close price of the latest observation.
func (r *Recorder) RecordLastClose(symbol string, price float64) {
	r.lastClose.WithLabelValues(symbol).Set(price)
}

// NoopRecorder discards every measurement.
type NoopRecorder struct{}

func (NoopRecorder) RecordRun(string)                   {}
func (NoopRecorder) RecordAnalysis(string, string)      {}
func (NoopRecorder) RecordModelLatency(string, float64) {}
func (NoopRecorder) RecordLastClose(string, float64)    {}
