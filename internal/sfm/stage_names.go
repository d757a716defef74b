package sfm

// StageName is a strongly-typed identifier for a pipeline stage. All
// canonical stages are declared as constants here.
type StageName string

// Canonical stage names, in execution order.
const (
	StageExtract StageName = "feature_extraction"
	StageMatch   StageName = "feature_matching"
	StageMap     StageName = "mapping"
)

// stageLabels maps stage names to the human-readable labels used in
// confirmation prompts and log lines.
var stageLabels = map[StageName]string{
	StageExtract: "feature extraction",
	StageMatch:   "feature matching",
	StageMap:     "mapping",
}

// Label returns the human-readable form of the stage name.
func (s StageName) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}
