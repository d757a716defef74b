package sfm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nick-hue/data-preper/internal/config"
	preperrors "github.com/nick-hue/data-preper/internal/errors"
)

func testPipelineConfig() *config.Pipeline {
	return &config.Pipeline{
		TrainMethod:    config.TrainNerfacto,
		SfMTool:        config.ToolColmap,
		MatchingMethod: config.MatchExhaustive,
		DatabasePath:   "db.db",
		ImageDir:       "imgs/",
		CameraModel:    config.CameraOpenCV,
		UseGPU:         1,
	}
}

func TestExtractCommand(t *testing.T) {
	cmd := ExtractCommand(testPipelineConfig())
	assert.Equal(t, "colmap", cmd.Program)
	assert.Equal(t, []string{
		"feature_extractor",
		"--database_path", "db.db",
		"--image_path", "imgs/",
		"--ImageReader.single_camera", "1",
		"--ImageReader.camera_model", "OPENCV",
		"--SiftExtraction.use_gpu", "1",
	}, cmd.Args)
}

func TestExtractCommandDeterministic(t *testing.T) {
	cfg := testPipelineConfig()
	assert.Equal(t, ExtractCommand(cfg), ExtractCommand(cfg))
}

func TestMatchCommandVariants(t *testing.T) {
	cfg := testPipelineConfig()

	cfg.MatchingMethod = config.MatchExhaustive
	cmd, err := MatchCommand(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"exhaustive_matcher",
		"--database_path", "db.db",
		"--SiftMatching.use_gpu", "1",
	}, cmd.Args)

	cfg.MatchingMethod = config.MatchSequential
	cmd, err = MatchCommand(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "sequential_matcher", cmd.Args[0])

	cfg.MatchingMethod = config.MatchVocabTree
	cmd, err = MatchCommand(cfg, "/data/my tree.fbow")
	require.NoError(t, err)
	// Path with a space survives as a single argv element; no quoting.
	assert.Equal(t, []string{
		"vocab_tree_matcher",
		"--database_path", "db.db",
		"--SiftMatching.use_gpu", "1",
		"--VocabTreeMatching.vocab_tree_path", "/data/my tree.fbow",
	}, cmd.Args)
}

func TestMatchCommandVocabTreeValidation(t *testing.T) {
	cfg := testPipelineConfig()
	cfg.MatchingMethod = config.MatchVocabTree

	_, err := MatchCommand(cfg, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, preperrors.ErrInvalidVocabTreePath))

	_, err = MatchCommand(cfg, "/data/tree.bin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, preperrors.ErrInvalidVocabTreePath))
	assert.Contains(t, err.Error(), ".fbow")
}

func TestValidateVocabTreePathOtherMethods(t *testing.T) {
	// Non-vocab-tree methods never require a path.
	assert.NoError(t, ValidateVocabTreePath(config.MatchExhaustive, ""))
	assert.NoError(t, ValidateVocabTreePath(config.MatchSequential, "garbage"))
}

func TestMapCommandToleranceFlag(t *testing.T) {
	cfg := testPipelineConfig()

	cfg.SfMTool = config.ToolColmap
	cmd := MapCommand(cfg, "out/colmap/sparse")
	assert.Equal(t, "colmap", cmd.Program)
	assert.Contains(t, cmd.Args, "--Mapper.ba_global_function_tolerance=1e-6")
	assert.Equal(t, []string{
		"mapper",
		"--database_path", "db.db",
		"--image_path", "imgs/",
		"--output_path", "out/colmap/sparse",
		"--Mapper.ba_global_function_tolerance=1e-6",
	}, cmd.Args)

	cfg.SfMTool = config.ToolGlomap
	cmd = MapCommand(cfg, "out/glomap/sparse")
	assert.Equal(t, "glomap", cmd.Program)
	assert.NotContains(t, cmd.Args, "--Mapper.ba_global_function_tolerance=1e-6")
}

func TestSparseDir(t *testing.T) {
	cfg := testPipelineConfig()
	assert.Equal(t, "out/colmap/sparse", SparseDir(cfg, "out"))
	cfg.SfMTool = config.ToolGlomap
	assert.Equal(t, "out/glomap/sparse", SparseDir(cfg, "out"))
}

func TestCommandString(t *testing.T) {
	cmd := Command{Program: "colmap", Args: []string{"mapper", "--output_path", "out"}}
	assert.Equal(t, "colmap mapper --output_path out", cmd.String())
}
