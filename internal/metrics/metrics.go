package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the Prometheus instruments for the media pipeline.
type Metrics struct {
	JobsProcessed      *prometheus.CounterVec // outcome: delivered | failed
	StageFailures      *prometheus.CounterVec // stage: download | conversion | transcription | summarization
	APIRetries         *prometheus.CounterVec // service: transcription | summarization
	ProcessingDuration prometheus.Histogram
}

// New creates and registers all pipeline metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		JobsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voicebrief_jobs_total",
			Help: "Media jobs by final outcome",
		}, []string{"outcome"}),
		StageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voicebrief_stage_failures_total",
			Help: "Pipeline failures by stage",
		}, []string{"stage"}),
		APIRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voicebrief_api_retries_total",
			Help: "Remote API retries by service",
		}, []string{"service"}),
		ProcessingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voicebrief_processing_duration_seconds",
			Help:    "End-to-end processing time per media job",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1 hour
		}),
	}
}

// Serve exposes the default registry on addr/metrics. Blocks until the
// listener fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
