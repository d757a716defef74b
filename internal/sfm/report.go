package sfm

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nick-hue/data-preper/internal/metrics"
)

// Outcome is the typed enumeration of final pipeline result states.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
	OutcomeDeclined Outcome = "declined"
)

// StageCount tracks per-stage classification counts.
type StageCount struct {
	Success  int
	Fatal    int
	Canceled int
	Declined int
}

// RunReport captures high-level metrics about one pipeline run.
type RunReport struct {
	RunID          string
	Start          time.Time
	End            time.Time
	SparseDir      string
	StageDurations map[StageName]time.Duration
	StageCounts    map[StageName]StageCount
	Errors         []error
	Outcome        Outcome
}

func newRunReport() *RunReport {
	return &RunReport{
		RunID:          uuid.NewString(),
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageCounts:    make(map[StageName]StageCount),
	}
}

// recordStage updates per-stage counters and emits metrics. An empty kind
// means the stage succeeded.
func (r *RunReport) recordStage(stage StageName, kind StageErrorKind, recorder metrics.Recorder) {
	sc := r.StageCounts[stage]
	switch kind {
	case "":
		sc.Success++
		recorder.IncStageResult(string(stage), string(OutcomeSuccess))
	case StageErrorFatal:
		sc.Fatal++
		recorder.IncStageResult(string(stage), string(OutcomeFailed))
	case StageErrorCanceled:
		sc.Canceled++
		recorder.IncStageResult(string(stage), string(OutcomeCanceled))
	case StageErrorDeclined:
		sc.Declined++
		recorder.IncStageResult(string(stage), string(OutcomeDeclined))
	}
	r.StageCounts[stage] = sc
}

// finalize stamps the end time and derives the overall outcome from the
// terminal stage error, if any.
func (r *RunReport) finalize(err error, recorder metrics.Recorder) {
	r.End = time.Now()
	switch {
	case err == nil:
		r.Outcome = OutcomeSuccess
	default:
		r.Outcome = outcomeForError(err)
	}
	recorder.IncPipelineOutcome(string(r.Outcome))
	recorder.ObservePipelineDuration(r.End.Sub(r.Start))
}

func outcomeForError(err error) Outcome {
	var se *StageError
	if errors.As(err, &se) {
		switch se.Kind {
		case StageErrorCanceled:
			return OutcomeCanceled
		case StageErrorDeclined:
			return OutcomeDeclined
		}
	}
	return OutcomeFailed
}
