package commands

import (
	"log/slog"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/nick-hue/data-preper/internal/config"
	"github.com/nick-hue/data-preper/internal/console"
	"github.com/nick-hue/data-preper/internal/logging"
	"github.com/nick-hue/data-preper/internal/metrics"
	"github.com/nick-hue/data-preper/internal/sfm"
)

// RunCmd implements the 'run' command: the three-stage SfM pipeline.
type RunCmd struct {
	Output    string `short:"o" required:"" help:"Path to the output directory"`
	VocabTree string `name:"vocab-tree" help:"Path to the vocab tree, only needed when matching_method is vocab_tree"`
	Prompt    bool   `short:"p" help:"Prompt before running each stage"`
	Log       bool   `short:"l" help:"Log commands and status messages to a file"`
	LogFile   string `name:"log-file" default:"dataprep.log" help:"Log file path (with --log)"`
	Metrics   string `help:"Write a Prometheus textfile snapshot of run metrics to this path"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	logFile := ""
	if r.Log {
		logFile = r.LogFile
	}
	closeLog, err := logging.Setup(root.Verbose, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	sink := console.NewTerminal(os.Stdout, os.Stdin)
	pipeline := sfm.New(cfg, sink)

	var recorder *metrics.PrometheusRecorder
	if r.Metrics != "" {
		recorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
		pipeline.WithRecorder(recorder)
	}

	slog.Info("Starting SfM preparation",
		"tool", cfg.SfMTool,
		"matching", cfg.MatchingMethod,
		"images", cfg.ImageDir,
		"output", r.Output)

	report, err := pipeline.Run(g.Ctx, r.Output, sfm.Options{
		Verbose:       root.Verbose,
		Confirm:       r.Prompt,
		VocabTreePath: r.VocabTree,
	})

	if recorder != nil {
		if werr := recorder.WriteTextfile(r.Metrics); werr != nil {
			slog.Warn("Failed to write metrics snapshot", "path", r.Metrics, "error", werr)
		}
	}

	if err != nil {
		slog.Error("Pipeline did not complete",
			"run_id", report.RunID,
			"outcome", report.Outcome,
			"error", err)
		return err
	}

	slog.Info("Pipeline completed",
		"run_id", report.RunID,
		"sparse_dir", report.SparseDir,
		"duration", report.End.Sub(report.Start))
	return nil
}
