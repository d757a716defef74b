// Package database reads summary statistics from a COLMAP feature database.
// The database is a plain SQLite file owned and written by the external
// tools; this package only ever opens it read-only.
package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/nick-hue/data-preper/internal/errors"
)

// Stats summarizes the state of a feature database after extraction and/or
// matching.
type Stats struct {
	Cameras           int64
	Images            int64
	Keypoints         int64 // total keypoints across all images
	Matches           int64 // raw match rows across all image pairs
	TwoViewGeometries int64 // geometrically verified matches
}

// ReadStats opens the COLMAP database at path read-only and reports row
// counts for the main tables. It fails if the file does not exist or is not
// a feature database produced by the extraction stage.
func ReadStats(path string) (*Stats, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, errors.DatabaseError(path, err)
	}
	defer db.Close()

	s := &Stats{}
	queries := []struct {
		dest  *int64
		query string
	}{
		{&s.Cameras, `SELECT COUNT(*) FROM cameras`},
		{&s.Images, `SELECT COUNT(*) FROM images`},
		{&s.Keypoints, `SELECT COALESCE(SUM(rows), 0) FROM keypoints`},
		{&s.Matches, `SELECT COALESCE(SUM(rows), 0) FROM matches`},
		{&s.TwoViewGeometries, `SELECT COALESCE(SUM(rows), 0) FROM two_view_geometries`},
	}
	for _, q := range queries {
		if err := db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, errors.DatabaseError(path, err)
		}
	}
	return s, nil
}
