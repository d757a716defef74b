package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopRecorderIsSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("feature_extraction", time.Second)
	r.IncStageResult("feature_extraction", "success")
	r.IncPipelineOutcome("success")
	r.ObservePipelineDuration(time.Second)
}

func TestPrometheusRecorderCounts(t *testing.T) {
	pr := NewPrometheusRecorder(prom.NewRegistry())

	pr.IncStageResult("feature_extraction", "success")
	pr.IncStageResult("feature_extraction", "success")
	pr.IncStageResult("mapping", "failed")
	pr.IncPipelineOutcome("failed")

	if got := testutil.ToFloat64(pr.stageResults.WithLabelValues("feature_extraction", "success")); got != 2 {
		t.Errorf("stage_results{feature_extraction,success} = %v", got)
	}
	if got := testutil.ToFloat64(pr.stageResults.WithLabelValues("mapping", "failed")); got != 1 {
		t.Errorf("stage_results{mapping,failed} = %v", got)
	}
	if got := testutil.ToFloat64(pr.pipelineOutcome.WithLabelValues("failed")); got != 1 {
		t.Errorf("pipeline_outcomes{failed} = %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(prom.NewRegistry())
	pr.IncStageResult("feature_matching", "success")
	pr.ObserveStageDuration("feature_matching", 2*time.Second)
	pr.IncPipelineOutcome("success")
	pr.ObservePipelineDuration(5 * time.Second)

	path := filepath.Join(t.TempDir(), "dataprep.prom")
	if err := pr.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"dataprep_stage_results_total",
		"dataprep_stage_duration_seconds",
		"dataprep_pipeline_outcomes_total",
		"dataprep_pipeline_duration_seconds",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("snapshot missing %s", want)
		}
	}
}
