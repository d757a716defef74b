package sfm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"time"
)

// RunOptions controls how one external invocation behaves.
type RunOptions struct {
	// Verbose streams tool output live instead of capturing it.
	Verbose bool
}

// StageResult is the outcome of one external invocation. Ephemeral: created
// per invocation and consumed immediately by the orchestrator.
type StageResult struct {
	Command  Command
	ExitCode int
	Stdout   string // captured output; empty when streamed live
	Stderr   string // captured error output; empty when streamed live
	Duration time.Duration
}

// Executor runs a single external command. The OS implementation blocks
// until the child exits; context cancellation kills the child. Tests inject
// a fake recording the commands it was asked to run.
type Executor interface {
	Run(ctx context.Context, cmd Command, opts RunOptions) (*StageResult, error)
}

// OSExecutor runs commands through os/exec without shell interpretation.
type OSExecutor struct {
	// Stdout and Stderr receive the child's output in verbose mode.
	Stdout io.Writer
	Stderr io.Writer
}

// NewOSExecutor returns an executor streaming verbose output to out and errOut.
func NewOSExecutor(out, errOut io.Writer) *OSExecutor {
	return &OSExecutor{Stdout: out, Stderr: errOut}
}

// Run executes cmd and waits for it. A non-zero exit is not an error here;
// it is reported through StageResult.ExitCode so the caller decides how to
// surface it. An error is returned only when the process could not be
// started or the context was cancelled.
func (e *OSExecutor) Run(ctx context.Context, cmd Command, opts RunOptions) (*StageResult, error) {
	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)

	var stdout, stderr bytes.Buffer
	if opts.Verbose {
		c.Stdout = e.Stdout
		c.Stderr = e.Stderr
	} else {
		c.Stdout = &stdout
		c.Stderr = &stderr
	}

	start := time.Now()
	err := c.Run()
	res := &StageResult{
		Command:  cmd,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// Start failure (binary not found, permission denied, ...).
		return res, err
	}
	return res, nil
}
