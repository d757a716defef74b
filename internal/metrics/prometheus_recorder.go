package metrics

import (
	"fmt"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry         *prom.Registry
	stageDuration    *prom.HistogramVec
	pipelineDuration prom.Histogram
	stageResults     *prom.CounterVec
	pipelineOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "dataprep",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual pipeline stages",
		Buckets:   prom.ExponentialBuckets(1, 4, 10),
	}, []string{"stage"})
	pr.pipelineDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "dataprep",
		Name:      "pipeline_duration_seconds",
		Help:      "Total pipeline run duration",
		Buckets:   prom.ExponentialBuckets(1, 4, 10),
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "dataprep",
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.pipelineOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "dataprep",
		Name:      "pipeline_outcomes_total",
		Help:      "Pipeline outcomes by final status",
	}, []string{"outcome"})
	reg.MustRegister(pr.stageDuration, pr.pipelineDuration, pr.stageResults, pr.pipelineOutcome)
	return pr
}

func (pr *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	pr.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncStageResult(stage, result string) {
	pr.stageResults.WithLabelValues(stage, result).Inc()
}

func (pr *PrometheusRecorder) IncPipelineOutcome(outcome string) {
	pr.pipelineOutcome.WithLabelValues(outcome).Inc()
}

func (pr *PrometheusRecorder) ObservePipelineDuration(d time.Duration) {
	pr.pipelineDuration.Observe(d.Seconds())
}

// WriteTextfile gathers the registry and writes it in the Prometheus text
// exposition format, overwriting path. Suited for node-exporter textfile
// collection from a short-lived CLI run.
func (pr *PrometheusRecorder) WriteTextfile(path string) error {
	mfs, err := pr.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metrics file: %w", err)
	}
	defer f.Close()
	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
