package commands

import (
	"fmt"

	"github.com/nick-hue/data-preper/internal/config"
	"github.com/nick-hue/data-preper/internal/database"
)

// StatsCmd implements the 'stats' command: summarize the feature database
// after extraction or matching.
type StatsCmd struct {
	Database string `short:"d" help:"Feature database path (defaults to database_path from config)"`
}

func (s *StatsCmd) Run(_ *Global, root *CLI) error {
	dbPath := s.Database
	if dbPath == "" {
		cfg, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		dbPath = cfg.DatabasePath
	}

	st, err := database.ReadStats(dbPath)
	if err != nil {
		return err
	}

	fmt.Printf("Feature database: %s\n", dbPath)
	fmt.Printf("  cameras:             %d\n", st.Cameras)
	fmt.Printf("  images:              %d\n", st.Images)
	fmt.Printf("  keypoints:           %d\n", st.Keypoints)
	fmt.Printf("  raw matches:         %d\n", st.Matches)
	fmt.Printf("  verified matches:    %d\n", st.TwoViewGeometries)
	return nil
}
