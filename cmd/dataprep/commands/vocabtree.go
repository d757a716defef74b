package commands

import (
	"fmt"
	"log/slog"

	"github.com/nick-hue/data-preper/internal/vocabtree"
)

// VocabTreeCmd implements the 'vocab-tree' command: ensure the vocabulary
// tree asset exists in the per-user cache and print its path.
type VocabTreeCmd struct {
	URL string `help:"Asset URL override" default:""`
	Dir string `help:"Cache directory override" default:""`
}

func (v *VocabTreeCmd) Run(g *Global, _ *CLI) error {
	path, err := vocabtree.Fetch(g.Ctx, v.URL, v.Dir)
	if err != nil {
		return err
	}
	slog.Debug("Vocab tree available", "path", path)
	fmt.Println(path)
	return nil
}
