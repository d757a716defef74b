// Package metrics provides pipeline observability counters.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a real recorder is wired in.
// The Prometheus implementation can snapshot its registry to a textfile at
// the end of a run for node-exporter style collection.
package metrics

import "time"

// Recorder defines all metrics operations emitted by the pipeline.
type Recorder interface {
	// ObserveStageDuration records how long one stage ran.
	ObserveStageDuration(stage string, d time.Duration)
	// IncStageResult counts a stage outcome (success, failed, canceled, declined).
	IncStageResult(stage, result string)
	// IncPipelineOutcome counts a whole-run outcome.
	IncPipelineOutcome(outcome string)
	// ObservePipelineDuration records total run duration.
	ObservePipelineDuration(d time.Duration)
}

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, string)              {}
func (NoopRecorder) IncPipelineOutcome(string)                  {}
func (NoopRecorder) ObservePipelineDuration(time.Duration)      {}
