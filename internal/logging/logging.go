// Package logging configures the process-wide slog default handler.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default slog handler. Verbose forces debug level;
// otherwise DATAPREP_LOG_LEVEL (debug|info|warn|error) applies, defaulting
// to info. When logFile is non-empty, log lines are additionally written to
// that file, which is overwritten per run. The returned close function
// flushes and closes the file sink.
func Setup(verbose bool, logFile string) (func(), error) {
	level := parseLevel(verbose)

	out := io.Writer(os.Stderr)
	closeFn := func() {}
	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			return nil, fmt.Errorf("create log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
		closeFn = func() { _ = f.Close() }
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closeFn, nil
}

func parseLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(os.Getenv("DATAPREP_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
