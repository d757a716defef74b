// Package commands defines the dataprep CLI surface.
package commands

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"

	"github.com/nick-hue/data-preper/internal/logging"
	"github.com/nick-hue/data-preper/internal/sfm"
)

// Version is stamped via -ldflags at release time.
var Version = "dev"

// Exit codes. Declined is a deliberate operator cancellation, not an error.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitDeclined = 2
)

// Global holds state shared across subcommands.
type Global struct {
	// Ctx is the process context, cancelled on SIGINT/SIGTERM.
	Ctx context.Context
}

// CLI is the root command grammar with global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Stream tool output live and enable debug logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run       RunCmd       `cmd:"" help:"Run the SfM preparation pipeline (extract, match, map)"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
	VocabTree VocabTreeCmd `cmd:"" name:"vocab-tree" help:"Download and cache the vocabulary-tree asset"`
	Stats     StatsCmd     `cmd:"" help:"Report feature database statistics"`
}

// AfterApply runs after flag parsing; set up logging once. RunCmd
// reconfigures later when a log file is requested.
func (c *CLI) AfterApply() error {
	_, err := logging.Setup(c.Verbose, "")
	return err
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, sfm.ErrDeclined) {
		return ExitDeclined
	}
	return ExitError
}
