// Package workflow defines the 9-phase AUTUS workflow registry and the
// Mission record that threads through it. The registry is pure lookup;
// all mutation of a Mission happens in the integrated engine.
package workflow

// Phase identifies one of the nine fixed workflow phases.
type Phase string

const (
	PhaseSense      Phase = "SENSE"
	PhaseAnalyze    Phase = "ANALYZE"
	PhaseStrategize Phase = "STRATEGIZE"
	PhaseDesign     Phase = "DESIGN"
	PhaseBuild      Phase = "BUILD"
	PhaseLaunch     Phase = "LAUNCH"
	PhaseMeasure    Phase = "MEASURE"
	PhaseLearn      Phase = "LEARN"
	PhaseScale      Phase = "SCALE"
)

// PhaseOrder is the canonical phase ordering. All sequencing decisions
// (nextPhase pointers, currentPhase advancement) derive from this slice.
var PhaseOrder = []Phase{
	PhaseSense,
	PhaseAnalyze,
	PhaseStrategize,
	PhaseDesign,
	PhaseBuild,
	PhaseLaunch,
	PhaseMeasure,
	PhaseLearn,
	PhaseScale,
}

// MetaStage groups the nine phases into three coarse stages.
type MetaStage string

const (
	MetaDiscover MetaStage = "DISCOVER"
	MetaExecute  MetaStage = "EXECUTE"
	MetaLearn    MetaStage = "LEARN"
)

// PhaseInfo is static registry metadata for a phase.
type PhaseInfo struct {
	ID          Phase     `json:"id"`
	Name        string    `json:"name"`
	KoreanName  string    `json:"korean_name"`
	Meta        MetaStage `json:"meta_stage"`
	Description string    `json:"description"`
}

var registry = map[Phase]PhaseInfo{
	PhaseSense:      {PhaseSense, "Sense", "감지", MetaDiscover, "Detect environment signals and forecast direction"},
	PhaseAnalyze:    {PhaseAnalyze, "Analyze", "분석", MetaDiscover, "Five-whys root cause decomposition and assumptions"},
	PhaseStrategize: {PhaseStrategize, "Strategize", "전략", MetaDiscover, "Score candidate strategies on Thiel dimensions"},
	PhaseDesign:     {PhaseDesign, "Design", "설계", MetaExecute, "Press-release narrative, FAQ and requirements"},
	PhaseBuild:      {PhaseBuild, "Build", "구축", MetaExecute, "Automation scoring and task breakdown"},
	PhaseLaunch:     {PhaseLaunch, "Launch", "출시", MetaExecute, "MVP subset, launch phases and rollback plan"},
	PhaseMeasure:    {PhaseMeasure, "Measure", "측정", MetaLearn, "OKR progress, TSEL delta and proof pack"},
	PhaseLearn:      {PhaseLearn, "Learn", "학습", MetaLearn, "Gap analysis, patterns and shadow rules"},
	PhaseScale:      {PhaseScale, "Scale", "확장", MetaLearn, "Scale-up / maintain / eliminate decision"},
}

// Valid reports whether p is one of the nine registered phases.
func Valid(p Phase) bool {
	_, ok := registry[p]
	return ok
}

// Info returns the registry metadata for a phase.
func Info(p Phase) (PhaseInfo, bool) {
	info, ok := registry[p]
	return info, ok
}

// Infos returns metadata for all phases in canonical order.
func Infos() []PhaseInfo {
	out := make([]PhaseInfo, 0, len(PhaseOrder))
	for _, p := range PhaseOrder {
		out = append(out, registry[p])
	}
	return out
}

// Index returns the position of p in PhaseOrder, or -1 if p is unknown.
func Index(p Phase) int {
	for i, q := range PhaseOrder {
		if q == p {
			return i
		}
	}
	return -1
}

// Next returns the phase following p in PhaseOrder. The second return is
// false for the terminal phase (SCALE) and for unknown phases.
func Next(p Phase) (Phase, bool) {
	i := Index(p)
	if i < 0 || i == len(PhaseOrder)-1 {
		return "", false
	}
	return PhaseOrder[i+1], true
}

// Meta returns the meta-stage a phase belongs to ("" for unknown phases).
func Meta(p Phase) MetaStage {
	return registry[p].Meta
}
