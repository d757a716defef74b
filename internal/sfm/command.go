// Package sfm orchestrates the Structure-from-Motion preparation pipeline:
// COLMAP feature extraction, feature matching, and COLMAP/GLOMAP mapping,
// executed as external processes in fixed order with fail-fast semantics.
package sfm

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nick-hue/data-preper/internal/config"
	"github.com/nick-hue/data-preper/internal/errors"
)

// colmapBinary always provides feature extraction and matching; only the
// mapping stage switches between colmap and glomap.
const colmapBinary = "colmap"

// baGlobalFunctionTolerance speeds up colmap's global bundle adjustment.
// Fixed, not user-configurable; requires colmap >= 3.7.
const baGlobalFunctionTolerance = "--Mapper.ba_global_function_tolerance=1e-6"

// VocabTreeExt is the required file extension for vocabulary-tree assets.
const VocabTreeExt = ".fbow"

// Command is one external invocation: a program and its discrete argument
// vector. Arguments are passed to the process directly, never through a
// shell, so paths with spaces or metacharacters stay intact.
type Command struct {
	Program string
	Args    []string
}

// String renders the command for logs and error messages.
func (c Command) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// ExtractCommand builds the feature-extraction invocation. Pure: no I/O.
func ExtractCommand(cfg *config.Pipeline) Command {
	return Command{
		Program: colmapBinary,
		Args: []string{
			"feature_extractor",
			"--database_path", cfg.DatabasePath,
			"--image_path", cfg.ImageDir,
			"--ImageReader.single_camera", "1",
			"--ImageReader.camera_model", string(cfg.CameraModel),
			"--SiftExtraction.use_gpu", strconv.Itoa(cfg.UseGPU),
		},
	}
}

// MatchCommand builds the feature-matching invocation. The matcher variant
// is named after the configured matching method. For vocab_tree matching
// the vocabulary-tree path must be set and end in .fbow; otherwise an
// InvalidVocabTreePath error is returned before any command exists.
func MatchCommand(cfg *config.Pipeline, vocabTreePath string) (Command, error) {
	cmd := Command{
		Program: colmapBinary,
		Args: []string{
			fmt.Sprintf("%s_matcher", cfg.MatchingMethod),
			"--database_path", cfg.DatabasePath,
			"--SiftMatching.use_gpu", strconv.Itoa(cfg.UseGPU),
		},
	}
	if cfg.MatchingMethod == config.MatchVocabTree {
		if err := ValidateVocabTreePath(cfg.MatchingMethod, vocabTreePath); err != nil {
			return Command{}, err
		}
		cmd.Args = append(cmd.Args, "--VocabTreeMatching.vocab_tree_path", vocabTreePath)
	}
	return cmd, nil
}

// MapCommand builds the mapping invocation for the configured tool. Pure:
// sparseDir is assumed to exist by the time the command runs.
func MapCommand(cfg *config.Pipeline, sparseDir string) Command {
	cmd := Command{
		Program: string(cfg.SfMTool),
		Args: []string{
			"mapper",
			"--database_path", cfg.DatabasePath,
			"--image_path", cfg.ImageDir,
			"--output_path", sparseDir,
		},
	}
	if cfg.SfMTool == config.ToolColmap {
		cmd.Args = append(cmd.Args, baGlobalFunctionTolerance)
	}
	return cmd
}

// SparseDir returns the mapping output directory for outputDir and the
// configured reconstruction tool.
func SparseDir(cfg *config.Pipeline, outputDir string) string {
	return filepath.Join(outputDir, string(cfg.SfMTool), "sparse")
}

// ValidateVocabTreePath checks the vocabulary-tree precondition for method.
// It is a no-op unless method is vocab_tree.
func ValidateVocabTreePath(method config.MatchingMethod, path string) error {
	if method != config.MatchVocabTree {
		return nil
	}
	if path == "" {
		return errors.InvalidVocabTreePath(path,
			"matching_method is vocab_tree but no vocab tree path was supplied")
	}
	if !strings.HasSuffix(path, VocabTreeExt) {
		return errors.InvalidVocabTreePath(path,
			fmt.Sprintf("supplied file [%s] does not end with '%s', a valid vocab tree path is needed", path, VocabTreeExt))
	}
	return nil
}
