package sfm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	preperrors "github.com/nick-hue/data-preper/internal/errors"
)

// ErrDeclined marks a deliberate operator cancellation at a confirmation
// prompt. It is not a failure; the CLI maps it to a dedicated exit code.
var ErrDeclined = errors.New("operator declined confirmation")

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Pipeline must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
	StageErrorDeclined StageErrorKind = "declined" // Operator said no.
)

// StageError is a structured error carrying the stage and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err)
}
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newCanceledStageError(stage StageName, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}
func newDeclinedStageError(stage StageName) *StageError {
	return &StageError{Kind: StageErrorDeclined, Stage: stage, Err: ErrDeclined}
}

// stageFunc is a discrete unit of work in the pipeline run.
type stageFunc func(ctx context.Context, rs *runState) error

// runStages executes stages in order, recording timing and stopping on the
// first error. Every error is terminal; there is no retry and no warning
// continuation in this pipeline.
func runStages(ctx context.Context, rs *runState, stages []struct {
	name StageName
	fn   stageFunc
}) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := newCanceledStageError(st.name, ctx.Err())
			rs.report.recordStage(st.name, se.Kind, rs.recorder)
			rs.report.Errors = append(rs.report.Errors, se)
			return se
		default:
		}
		t0 := time.Now()
		err := st.fn(ctx, rs)
		dur := time.Since(t0)
		rs.report.StageDurations[st.name] = dur
		rs.recorder.ObserveStageDuration(string(st.name), dur)
		if err == nil {
			rs.report.recordStage(st.name, "", rs.recorder)
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			se = newFatalStageError(st.name, err)
		}
		rs.report.recordStage(st.name, se.Kind, rs.recorder)
		rs.report.Errors = append(rs.report.Errors, se)
		return se
	}
	return nil
}

// execute runs one external command for a stage: optional confirmation,
// transient status while captured, fail-fast on a non-zero exit.
func (rs *runState) execute(ctx context.Context, stage StageName, cmd Command) error {
	label := stage.Label()

	if rs.opts.Verbose {
		rs.sink.Logf("%s command: %s", label, cmd.String())
	}
	if rs.opts.Confirm {
		ok, err := rs.sink.Confirm(label)
		if err != nil {
			return newFatalStageError(stage, fmt.Errorf("confirmation prompt: %w", err))
		}
		if !ok {
			rs.sink.Logf("Exiting...")
			return newDeclinedStageError(stage)
		}
	}

	slog.Info("Stage starting", "stage", stage, "command", cmd.String())
	rs.sink.Logf("Running %s.", label)
	var stop func()
	if !rs.opts.Verbose {
		stop = rs.sink.Status("Running")
	}
	res, err := rs.exec.Run(ctx, cmd, RunOptions{Verbose: rs.opts.Verbose})
	if stop != nil {
		stop()
	}
	if err != nil {
		if ctx.Err() != nil {
			return newCanceledStageError(stage, ctx.Err())
		}
		return newFatalStageError(stage, err)
	}
	if res.ExitCode != 0 {
		slog.Error("Stage failed", "stage", stage, "exit_code", res.ExitCode)
		rs.sink.Errorf("Error running command: %s", cmd.String())
		if res.Stderr != "" {
			rs.sink.Errorf("%s", res.Stderr)
		}
		return newFatalStageError(stage, preperrors.StageFailed(string(stage),
			fmt.Errorf("%w: exit code %d", preperrors.ErrStageFailed, res.ExitCode)))
	}
	slog.Info("Stage completed", "stage", stage, "duration", res.Duration)
	rs.sink.Logf("Done with %s.", label)
	return nil
}
