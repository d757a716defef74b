package sfm

import (
	"context"
	"os"

	"github.com/nick-hue/data-preper/internal/config"
	"github.com/nick-hue/data-preper/internal/console"
	"github.com/nick-hue/data-preper/internal/errors"
	"github.com/nick-hue/data-preper/internal/metrics"
)

// Options controls one pipeline run.
type Options struct {
	// Verbose streams external tool output live and prints the built
	// commands; otherwise output is captured behind a status indicator.
	Verbose bool
	// Confirm prompts the operator before each stage.
	Confirm bool
	// VocabTreePath is the vocabulary-tree asset, required when the
	// configured matching method is vocab_tree.
	VocabTreePath string
}

// Pipeline sequences the three SfM stages against one validated
// configuration. Strictly sequential; a failed stage aborts the run and
// leaves earlier artifacts on disk, matching the external tools' own
// re-run-to-recover model.
type Pipeline struct {
	cfg      *config.Pipeline
	exec     Executor
	sink     console.Sink
	recorder metrics.Recorder
}

// New constructs a Pipeline with the OS executor and a no-op metrics
// recorder. Use the With* options to substitute either.
func New(cfg *config.Pipeline, sink console.Sink) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		exec:     NewOSExecutor(os.Stdout, os.Stderr),
		sink:     sink,
		recorder: metrics.NoopRecorder{},
	}
}

// WithExecutor substitutes the subprocess executor (tests inject a fake).
func (p *Pipeline) WithExecutor(e Executor) *Pipeline {
	p.exec = e
	return p
}

// WithRecorder substitutes the metrics recorder.
func (p *Pipeline) WithRecorder(r metrics.Recorder) *Pipeline {
	p.recorder = r
	return p
}

// runState carries mutable state across stages of a single run.
type runState struct {
	cfg       *config.Pipeline
	opts      Options
	sparseDir string
	report    *RunReport
	exec      Executor
	sink      console.Sink
	recorder  metrics.Recorder
}

// Run executes extract, match, and map in order, stopping on the first
// failure. The vocab-tree precondition is checked before any stage runs so
// a malformed path never costs an extraction pass. The sparse output
// directory outputDir/<tool>/sparse is created right before mapping.
func (p *Pipeline) Run(ctx context.Context, outputDir string, opts Options) (*RunReport, error) {
	report := newRunReport()
	report.SparseDir = SparseDir(p.cfg, outputDir)

	if err := ValidateVocabTreePath(p.cfg.MatchingMethod, opts.VocabTreePath); err != nil {
		report.Errors = append(report.Errors, err)
		report.finalize(err, p.recorder)
		return report, err
	}

	rs := &runState{
		cfg:       p.cfg,
		opts:      opts,
		sparseDir: report.SparseDir,
		report:    report,
		exec:      p.exec,
		sink:      p.sink,
		recorder:  p.recorder,
	}

	err := runStages(ctx, rs, []struct {
		name StageName
		fn   stageFunc
	}{
		{StageExtract, stageExtract},
		{StageMatch, stageMatch},
		{StageMap, stageMap},
	})

	report.finalize(err, p.recorder)
	return report, err
}

// stageExtract runs COLMAP feature extraction, populating the feature
// database.
func stageExtract(ctx context.Context, rs *runState) error {
	return rs.execute(ctx, StageExtract, ExtractCommand(rs.cfg))
}

// stageMatch runs the configured feature matcher against the database.
func stageMatch(ctx context.Context, rs *runState) error {
	cmd, err := MatchCommand(rs.cfg, rs.opts.VocabTreePath)
	if err != nil {
		return newFatalStageError(StageMatch, err)
	}
	return rs.execute(ctx, StageMatch, cmd)
}

// stageMap creates the sparse output directory idempotently, then runs the
// configured mapper.
func stageMap(ctx context.Context, rs *runState) error {
	if err := os.MkdirAll(rs.sparseDir, 0o755); err != nil {
		return newFatalStageError(StageMap, errors.OutputDirError(rs.sparseDir, err))
	}
	return rs.execute(ctx, StageMap, MapCommand(rs.cfg, rs.sparseDir))
}
