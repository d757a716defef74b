package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/nick-hue/data-preper/cmd/dataprep/commands"
)

func main() {
	cli := &commands.CLI{}
	kctx := kong.Parse(cli,
		kong.Name("dataprep"),
		kong.Description("Prepare image data for nerfstudio training: COLMAP feature extraction, matching, and sparse mapping via a validated config file."),
		kong.UsageOnError(),
		kong.Vars{"version": commands.Version},
	)

	// SIGINT/SIGTERM cancel the context; a running external tool is killed
	// through the cancelled process context.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := kctx.Run(&commands.Global{Ctx: ctx}, cli)
	if err != nil {
		slog.Error("Command failed", "error", err)
	}
	os.Exit(commands.ExitCode(err))
}
