// Package config loads and validates the pipeline configuration file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nick-hue/data-preper/internal/errors"
)

// Pipeline is the validated configuration for one preparation run. It is
// constructed once by Load and immutable afterwards.
type Pipeline struct {
	TrainMethod    TrainMethod
	SfMTool        ReconstructionTool
	MatchingMethod MatchingMethod
	DatabasePath   string
	ImageDir       string
	CameraModel    CameraModel
	UseGPU         int
}

// rawPipeline mirrors the YAML document. Pointer fields distinguish an
// absent key from an explicit zero value so defaults apply only on absence.
type rawPipeline struct {
	TrainMethod    *string `yaml:"train_method"`
	SfMTool        *string `yaml:"sfm_tool"`
	MatchingMethod *string `yaml:"matching_method"`
	DatabasePath   *string `yaml:"database_path"`
	ImageDir       *string `yaml:"image_dir"`
	CameraModel    *string `yaml:"camera_model"`
	UseGPU         *int    `yaml:"use_gpu"`
}

// Load loads and validates the pipeline configuration from configPath.
// database_path and image_dir are required; the enumerated fields fall back
// to defaults when omitted. Paths are not existence-checked here; the
// external tools discover missing files themselves.
func Load(configPath string) (*Pipeline, error) {
	// Load .env file if it exists; absence is fine.
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	var raw rawPipeline
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return fromRaw(&raw)
}

// fromRaw applies defaults, checks required fields, and validates every
// enumerated field against its closed set.
func fromRaw(raw *rawPipeline) (*Pipeline, error) {
	p := &Pipeline{
		TrainMethod:    TrainNerfacto,
		SfMTool:        ToolColmap,
		MatchingMethod: MatchExhaustive,
		CameraModel:    CameraOpenCV,
		UseGPU:         1,
	}

	if raw.DatabasePath == nil {
		return nil, errors.MissingField("database_path")
	}
	p.DatabasePath = *raw.DatabasePath
	if raw.ImageDir == nil {
		return nil, errors.MissingField("image_dir")
	}
	p.ImageDir = *raw.ImageDir

	if raw.TrainMethod != nil {
		p.TrainMethod = TrainMethod(*raw.TrainMethod)
	}
	if raw.SfMTool != nil {
		p.SfMTool = ReconstructionTool(*raw.SfMTool)
	}
	if raw.MatchingMethod != nil {
		p.MatchingMethod = MatchingMethod(*raw.MatchingMethod)
	}
	if raw.CameraModel != nil {
		p.CameraModel = CameraModel(*raw.CameraModel)
	}
	if raw.UseGPU != nil {
		p.UseGPU = *raw.UseGPU
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks every enumerated field against its closed set.
func (p *Pipeline) Validate() error {
	if err := checkEnum("train_method", string(p.TrainMethod), trainMethods); err != nil {
		return err
	}
	if err := checkEnum("sfm_tool", string(p.SfMTool), reconstructionTools); err != nil {
		return err
	}
	if err := checkEnum("matching_method", string(p.MatchingMethod), matchingMethods); err != nil {
		return err
	}
	if err := checkEnum("camera_model", string(p.CameraModel), cameraModels); err != nil {
		return err
	}
	if err := checkEnum("use_gpu", strconv.Itoa(p.UseGPU), gpuFlags); err != nil {
		return err
	}
	return nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := map[string]any{
		"train_method":    string(TrainNerfacto),
		"sfm_tool":        string(ToolColmap),
		"matching_method": string(MatchExhaustive),
		"database_path":   "data/database.db",
		"image_dir":       "data/images",
		"camera_model":    string(CameraOpenCV),
		"use_gpu":         1,
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	header := "# data-preper pipeline configuration\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
