package workflow

import "time"

// ResultStatus is the completion state carried by every phase result.
type ResultStatus string

const (
	StatusComplete   ResultStatus = "COMPLETE"
	StatusInProgress ResultStatus = "IN_PROGRESS"
	StatusFailed     ResultStatus = "FAILED"
)

// Header is the common envelope embedded in every phase result variant.
// NextPhase always points at the next entry in PhaseOrder and is nil only
// for the terminal phase (SCALE).
type Header struct {
	Phase       Phase        `json:"phase"`
	Status      ResultStatus `json:"status"`
	StartedAt   string       `json:"started_at"`
	CompletedAt string       `json:"completed_at"`
	NextPhase   *Phase       `json:"next_phase,omitempty"`
}

// NewHeader builds a COMPLETE header for phase p with the nextPhase pointer
// resolved from the registry.
func NewHeader(p Phase) Header {
	now := time.Now().UTC().Format(time.RFC3339)
	h := Header{
		Phase:       p,
		Status:      StatusComplete,
		StartedAt:   now,
		CompletedAt: now,
	}
	if next, ok := Next(p); ok {
		h.NextPhase = &next
	}
	return h
}

// Head returns the embedded header. Promoted from Header so every variant
// satisfies Result.
func (h *Header) Head() *Header { return h }

// ResultPhase returns the phase that produced this result.
func (h *Header) ResultPhase() Phase { return h.Phase }

func (h *Header) sealed() {}

// Result is the sealed union over the nine phase result variants.
type Result interface {
	ResultPhase() Phase
	Head() *Header
	sealed()
}

// SignalType classifies a detected signal.
type SignalType string

const (
	SignalOpportunity SignalType = "OPPORTUNITY"
	SignalThreat      SignalType = "THREAT"
)

// Urgency is the three-level urgency scale for signals.
type Urgency string

const (
	UrgencyHigh   Urgency = "HIGH"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyLow    Urgency = "LOW"
)

// urgencyRank orders urgencies for max-aggregation.
func urgencyRank(u Urgency) int {
	switch u {
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 1
	default:
		return 0
	}
}

// MaxUrgency returns the higher of two urgency levels.
func MaxUrgency(a, b Urgency) Urgency {
	if urgencyRank(a) >= urgencyRank(b) {
		return a
	}
	return b
}

// Signal is an opportunity or threat detected during SENSE.
type Signal struct {
	Factor    string     `json:"factor"`
	Type      SignalType `json:"type"`
	Magnitude float64    `json:"magnitude"`
	Threshold float64    `json:"threshold"`
	Urgency   Urgency    `json:"urgency"`
	Weight    float64    `json:"weight"`
}

// Forecast is the point forecast produced by SENSE.
type Forecast struct {
	Current   float64 `json:"current"`
	Predicted float64 `json:"predicted"`
	ChangePct float64 `json:"change_pct"`
	Months    int     `json:"months"`
	Sigma     float64 `json:"sigma"`
}

// SenseResult is the SENSE phase output.
type SenseResult struct {
	Header
	Signals          []Signal `json:"signals"`
	EnvironmentIndex float64  `json:"environment_index"`
	Forecast         Forecast `json:"forecast"`
	OverallUrgency   Urgency  `json:"overall_urgency"`
}

// AnalyzeResult is the ANALYZE phase output: a five-level cause chain plus
// assumption lists. ValidatedAssumptions stays empty unless external
// evidence was supplied.
type AnalyzeResult struct {
	Header
	ProblemCategory      string   `json:"problem_category"`
	CauseChain           []string `json:"cause_chain"`
	RootCause            string   `json:"root_cause"`
	Assumptions          []string `json:"assumptions"`
	ValidatedAssumptions []string `json:"validated_assumptions"`
}

// ThielScores are the four strategy scoring dimensions, each 0-10.
type ThielScores struct {
	Technology float64 `json:"technology" yaml:"technology"`
	Timing     float64 `json:"timing" yaml:"timing"`
	Monopoly   float64 `json:"monopoly" yaml:"monopoly"`
	Team       float64 `json:"team" yaml:"team"`
}

// RecommendationTier buckets a candidate strategy by its Thiel score.
type RecommendationTier string

const (
	TierStrongPursue RecommendationTier = "STRONG_PURSUE"
	TierPursue       RecommendationTier = "PURSUE"
	TierConsider     RecommendationTier = "CONSIDER"
	TierAvoid        RecommendationTier = "AVOID"
)

// StrategyCandidate is one scored strategy option.
type StrategyCandidate struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Scores      ThielScores        `json:"scores"`
	ThielScore  float64            `json:"thiel_score"`
	Tier        RecommendationTier `json:"tier"`
}

// StrategizeResult is the STRATEGIZE phase output.
type StrategizeResult struct {
	Header
	Candidates []StrategyCandidate `json:"candidates"`
	Selected   StrategyCandidate   `json:"selected"`
}

// PressRelease is the working-backwards narrative produced by DESIGN.
type PressRelease struct {
	Headline     string `json:"headline"`
	Subheadline  string `json:"subheadline"`
	Body         string `json:"body"`
	CallToAction string `json:"call_to_action"`
}

// FAQItem is a single DESIGN FAQ entry.
type FAQItem struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Requirements categorizes DESIGN requirements.
type Requirements struct {
	Technical []string `json:"technical"`
	Content   []string `json:"content"`
	Process   []string `json:"process"`
	Team      []string `json:"team"`
}

// DesignResult is the DESIGN phase output.
type DesignResult struct {
	Header
	PressRelease PressRelease `json:"press_release"`
	FAQ          []FAQItem    `json:"faq"`
	Requirements Requirements `json:"requirements"`
}

// AutomationFactors are the five weighted inputs to the automation score,
// each scaled to [0,1].
type AutomationFactors struct {
	DataAvailability   float64 `json:"data_availability" yaml:"data_availability"`
	PatternRecognition float64 `json:"pattern_recognition" yaml:"pattern_recognition"`
	Complexity         float64 `json:"complexity" yaml:"complexity"`
	Repetition         float64 `json:"repetition" yaml:"repetition"`
	ToolAvailability   float64 `json:"tool_availability" yaml:"tool_availability"`
}

// BuildAction is the disposition derived from the automation score.
type BuildAction string

const (
	ActionAutomate BuildAction = "AUTOMATE"
	ActionCompress BuildAction = "COMPRESS"
	ActionDelegate BuildAction = "DELEGATE"
	ActionKeep     BuildAction = "KEEP"
)

// Task is one BUILD work item.
type Task struct {
	Name     string `json:"name" yaml:"name"`
	Assignee string `json:"assignee,omitempty" yaml:"assignee"`
	Deadline string `json:"deadline,omitempty" yaml:"deadline"`
	Status   string `json:"status" yaml:"status"`
}

// BuildResult is the BUILD phase output.
type BuildResult struct {
	Header
	AutomationScore float64           `json:"automation_score"`
	Factors         AutomationFactors `json:"factors"`
	Action          BuildAction       `json:"action"`
	Tasks           []Task            `json:"tasks"`
}

// LaunchPhase is one audience/duration/goal rollout step.
type LaunchPhase struct {
	Audience string `json:"audience" yaml:"audience"`
	Duration string `json:"duration" yaml:"duration"`
	Goal     string `json:"goal" yaml:"goal"`
}

// RollbackPlan is the LAUNCH contingency.
type RollbackPlan struct {
	Trigger string `json:"trigger" yaml:"trigger"`
	Action  string `json:"action" yaml:"action"`
}

// LaunchResult is the LAUNCH phase output.
type LaunchResult struct {
	Header
	MVPFeatures []string      `json:"mvp_features"`
	Phases      []LaunchPhase `json:"phases"`
	Rollback    RollbackPlan  `json:"rollback"`
}

// KeyResult is one OKR key result with baseline/target/actual values.
type KeyResult struct {
	Name     string  `json:"name" yaml:"name"`
	Baseline float64 `json:"baseline" yaml:"baseline"`
	Target   float64 `json:"target" yaml:"target"`
	Actual   float64 `json:"actual" yaml:"actual"`
	Unit     string  `json:"unit,omitempty" yaml:"unit"`
	Period   string  `json:"period,omitempty" yaml:"period"`
}

// OKR is an objective with its ordered key results.
type OKR struct {
	Objective  string      `json:"objective" yaml:"objective"`
	KeyResults []KeyResult `json:"key_results" yaml:"key_results"`
}

// KR status glyphs assigned by MEASURE.
const (
	KRStatusOnTarget = "✅"
	KRStatusPartial  = "⚠️"
	KRStatusMissed   = "❌"
)

// KRProgress is per-key-result progress with its status glyph.
type KRProgress struct {
	Name        string  `json:"name"`
	ProgressPct float64 `json:"progress_pct"`
	Status      string  `json:"status"`
}

// TSEL is the four-component trust/satisfaction/engagement/loyalty score
// with weighted total R.
type TSEL struct {
	Trust        float64 `json:"trust" yaml:"trust"`
	Satisfaction float64 `json:"satisfaction" yaml:"satisfaction"`
	Engagement   float64 `json:"engagement" yaml:"engagement"`
	Loyalty      float64 `json:"loyalty" yaml:"loyalty"`
	R            float64 `json:"r" yaml:"r"`
}

// ProofPack summarizes MEASURE outcomes.
type ProofPack struct {
	OKRProgressPct float64  `json:"okr_progress_pct"`
	TSELDelta      float64  `json:"tsel_delta"`
	LearningPoints []string `json:"learning_points"`
}

// MeasureResult is the MEASURE phase output.
type MeasureResult struct {
	Header
	OKR        OKR          `json:"okr"`
	KRProgress []KRProgress `json:"kr_progress"`
	TSELBefore TSEL         `json:"tsel_before"`
	TSELAfter  TSEL         `json:"tsel_after"`
	ProofPack  ProofPack    `json:"proof_pack"`
}

// GapAnalysis is LEARN's per-key-result gap record.
type GapAnalysis struct {
	KeyResult string   `json:"key_result"`
	Target    float64  `json:"target"`
	Actual    float64  `json:"actual"`
	Causes    []string `json:"causes"`
	RootCause string   `json:"root_cause"`
}

// PatternAnalysis buckets observed patterns with a confidence score.
type PatternAnalysis struct {
	Success    []string `json:"success"`
	Failure    []string `json:"failure"`
	Confidence float64  `json:"confidence"`
}

// LearnResult is the LEARN phase output.
type LearnResult struct {
	Header
	Gaps         []GapAnalysis   `json:"gaps"`
	Improvements []string        `json:"improvements"`
	Patterns     PatternAnalysis `json:"patterns"`
	ShadowRules  []string        `json:"shadow_rules"`
}

// ScaleAction is the SCALE phase decision.
type ScaleAction string

const (
	ScaleUp        ScaleAction = "SCALE_UP"
	ScaleMaintain  ScaleAction = "MAINTAIN"
	ScaleEliminate ScaleAction = "ELIMINATE"
)

// FlywheelStep is one step of the scale-up flywheel model.
type FlywheelStep struct {
	Name         string   `json:"name"`
	Accelerators []string `json:"accelerators,omitempty"`
	Decelerators []string `json:"decelerators,omitempty"`
}

// Flywheel is the ordered flywheel model emitted on scale-up.
type Flywheel struct {
	Steps []FlywheelStep `json:"steps"`
}

// ScaleResult is the SCALE phase output. Flywheel is set only for SCALE_UP.
type ScaleResult struct {
	Header
	Action       ScaleAction `json:"action"`
	Flywheel     *Flywheel   `json:"flywheel,omitempty"`
	NextMissions []string    `json:"next_missions,omitempty"`
}
