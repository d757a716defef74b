package config

import (
	"github.com/nick-hue/data-preper/internal/errors"
)

// TrainMethod selects the downstream nerfstudio training target. The
// pipeline itself only validates it; training consumes it later.
type TrainMethod string

const (
	TrainNerfacto   TrainMethod = "nerfacto"
	TrainSplatfacto TrainMethod = "splatfacto"
)

// ReconstructionTool selects which mapper binary produces the sparse
// reconstruction.
type ReconstructionTool string

const (
	ToolColmap ReconstructionTool = "colmap"
	ToolGlomap ReconstructionTool = "glomap"
)

// MatchingMethod selects the COLMAP feature-matching strategy. VocabTree
// additionally requires a vocabulary-tree asset on disk.
type MatchingMethod string

const (
	MatchExhaustive MatchingMethod = "exhaustive"
	MatchSequential MatchingMethod = "sequential"
	MatchVocabTree  MatchingMethod = "vocab_tree"
)

// CameraModel is the COLMAP camera model passed to feature extraction.
type CameraModel string

const (
	CameraOpenCV        CameraModel = "OPENCV"
	CameraOpenCVFisheye CameraModel = "OPENCV_FISHEYE"
	CameraEquirect      CameraModel = "EQUIRECTANGULAR"
	CameraPinhole       CameraModel = "PINHOLE"
	CameraSimplePinhole CameraModel = "SIMPLE_PINHOLE"
)

// Closed sets for each enumerated field. Validation is plain membership;
// no reflection.
var (
	trainMethods = []string{
		string(TrainNerfacto), string(TrainSplatfacto),
	}
	reconstructionTools = []string{
		string(ToolColmap), string(ToolGlomap),
	}
	matchingMethods = []string{
		string(MatchExhaustive), string(MatchSequential), string(MatchVocabTree),
	}
	cameraModels = []string{
		string(CameraOpenCV), string(CameraOpenCVFisheye), string(CameraEquirect),
		string(CameraPinhole), string(CameraSimplePinhole),
	}
	gpuFlags = []string{"0", "1"}
)

// checkEnum validates value against its closed set and returns a structured
// error naming the field, the value, and the allowed set.
func checkEnum(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return errors.InvalidEnumValue(field, value, allowed)
}
