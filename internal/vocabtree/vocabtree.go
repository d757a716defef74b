// Package vocabtree caches the COLMAP vocabulary-tree asset in the per-user
// cache directory, downloading it once and reusing it across runs.
package vocabtree

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nick-hue/data-preper/internal/errors"
)

// DefaultURL is the fixed remote asset used for vocab_tree matching.
const DefaultURL = "https://demuc.de/colmap/vocab_tree_flickr100K_words32K.bin"

// fileName is the cached asset name; the .fbow extension is what the match
// command validation expects.
const fileName = "vocab_tree.fbow"

// DefaultCacheDir returns the per-user cache directory for the asset.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "dataprep"), nil
}

// Fetch returns the path to the cached vocabulary tree, downloading it from
// url into cacheDir if not already present. An existing file is trusted and
// never re-downloaded. Downloads land in a temp file and are renamed only
// on success, so an interrupted fetch never masquerades as a complete asset.
func Fetch(ctx context.Context, url, cacheDir string) (string, error) {
	if url == "" {
		url = DefaultURL
	}
	if cacheDir == "" {
		var err error
		cacheDir, err = DefaultCacheDir()
		if err != nil {
			return "", err
		}
	}

	dest := filepath.Join(cacheDir, fileName)
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	if err := download(ctx, url, dest); err != nil {
		return "", errors.DownloadError(url, err)
	}
	return dest, nil
}

func download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), fileName+".partial-*")
	if err != nil {
		return err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
