package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MissionStatus mirrors phase progress plus the two absorbing terminal
// states.
type MissionStatus string

const (
	StatusDraft        MissionStatus = "DRAFT"
	StatusSensing      MissionStatus = "SENSING"
	StatusAnalyzing    MissionStatus = "ANALYZING"
	StatusStrategizing MissionStatus = "STRATEGIZING"
	StatusDesigning    MissionStatus = "DESIGNING"
	StatusBuilding     MissionStatus = "BUILDING"
	StatusLaunching    MissionStatus = "LAUNCHING"
	StatusMeasuring    MissionStatus = "MEASURING"
	StatusLearning     MissionStatus = "LEARNING"
	StatusScaling      MissionStatus = "SCALING"
	StatusCompleted    MissionStatus = "COMPLETED"
	StatusEliminated   MissionStatus = "ELIMINATED"
)

var phaseStatus = map[Phase]MissionStatus{
	PhaseSense:      StatusSensing,
	PhaseAnalyze:    StatusAnalyzing,
	PhaseStrategize: StatusStrategizing,
	PhaseDesign:     StatusDesigning,
	PhaseBuild:      StatusBuilding,
	PhaseLaunch:     StatusLaunching,
	PhaseMeasure:    StatusMeasuring,
	PhaseLearn:      StatusLearning,
	PhaseScale:      StatusScaling,
}

// Terminal reports whether s is one of the two absorbing states.
func (s MissionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusEliminated
}

// SixW captures the six labeled framing fields supplied at creation.
type SixW struct {
	Who     string `json:"who" yaml:"who"`
	What    string `json:"what" yaml:"what"`
	When    string `json:"when" yaml:"when"`
	Where   string `json:"where" yaml:"where"`
	Why     string `json:"why" yaml:"why"`
	HowMuch string `json:"how_much" yaml:"how_much"`
}

// Indices are the three running mission indices.
type Indices struct {
	K     float64 `json:"k"`
	I     float64 `json:"i"`
	Omega float64 `json:"omega"`
}

// Errors returned by mission mutation.
var (
	ErrResultExists   = errors.New("phase result already recorded")
	ErrOutOfOrder     = errors.New("phase result out of order")
	ErrMissionClosed  = errors.New("mission is in a terminal state")
	ErrUnknownPhase   = errors.New("unknown phase")
	ErrNextPhaseWrong = errors.New("result nextPhase does not match registry")
)

// ResultSet is the append-only mapping from phase to its immutable result.
// It is an explicit optional-field struct (not a sparse array) so the
// no-rewrite invariant stays checkable and JSON round-trips with concrete
// types.
type ResultSet struct {
	Sense      *SenseResult      `json:"SENSE,omitempty"`
	Analyze    *AnalyzeResult    `json:"ANALYZE,omitempty"`
	Strategize *StrategizeResult `json:"STRATEGIZE,omitempty"`
	Design     *DesignResult     `json:"DESIGN,omitempty"`
	Build      *BuildResult      `json:"BUILD,omitempty"`
	Launch     *LaunchResult     `json:"LAUNCH,omitempty"`
	Measure    *MeasureResult    `json:"MEASURE,omitempty"`
	Learn      *LearnResult      `json:"LEARN,omitempty"`
	Scale      *ScaleResult      `json:"SCALE,omitempty"`
}

// Get returns the result for phase p, or nil if none is recorded.
func (rs *ResultSet) Get(p Phase) Result {
	switch p {
	case PhaseSense:
		if rs.Sense != nil {
			return rs.Sense
		}
	case PhaseAnalyze:
		if rs.Analyze != nil {
			return rs.Analyze
		}
	case PhaseStrategize:
		if rs.Strategize != nil {
			return rs.Strategize
		}
	case PhaseDesign:
		if rs.Design != nil {
			return rs.Design
		}
	case PhaseBuild:
		if rs.Build != nil {
			return rs.Build
		}
	case PhaseLaunch:
		if rs.Launch != nil {
			return rs.Launch
		}
	case PhaseMeasure:
		if rs.Measure != nil {
			return rs.Measure
		}
	case PhaseLearn:
		if rs.Learn != nil {
			return rs.Learn
		}
	case PhaseScale:
		if rs.Scale != nil {
			return rs.Scale
		}
	}
	return nil
}

// put records a result for its phase. Each phase key is write-once.
func (rs *ResultSet) put(r Result) error {
	p := r.ResultPhase()
	if rs.Get(p) != nil {
		return fmt.Errorf("%w: %s", ErrResultExists, p)
	}
	switch v := r.(type) {
	case *SenseResult:
		rs.Sense = v
	case *AnalyzeResult:
		rs.Analyze = v
	case *StrategizeResult:
		rs.Strategize = v
	case *DesignResult:
		rs.Design = v
	case *BuildResult:
		rs.Build = v
	case *LaunchResult:
		rs.Launch = v
	case *MeasureResult:
		rs.Measure = v
	case *LearnResult:
		rs.Learn = v
	case *ScaleResult:
		rs.Scale = v
	default:
		return fmt.Errorf("%w: %T", ErrUnknownPhase, r)
	}
	return nil
}

// Completed lists the phases with recorded results, in canonical order.
func (rs *ResultSet) Completed() []Phase {
	var out []Phase
	for _, p := range PhaseOrder {
		if rs.Get(p) != nil {
			out = append(out, p)
		}
	}
	return out
}

// Highest returns the highest phase holding a result, or SENSE when empty.
func (rs *ResultSet) Highest() Phase {
	highest := PhaseSense
	for _, p := range PhaseOrder {
		if rs.Get(p) != nil {
			highest = p
		}
	}
	return highest
}

// Mission is the unit of work flowing through the integrated engine.
type Mission struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	SixW         SixW          `json:"six_w"`
	CurrentPhase Phase         `json:"current_phase"`
	Status       MissionStatus `json:"status"`
	Indices      Indices       `json:"indices"`
	PhaseResults ResultSet     `json:"phase_results"`
	StagnantDays int           `json:"stagnant_days"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

// NewMission constructs a DRAFT mission positioned at SENSE. seedK is the
// category-derived initial K value.
func NewMission(name, description, category string, sixW SixW, seedK float64) *Mission {
	now := time.Now().UTC().Format(time.RFC3339)
	return &Mission{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		Category:     category,
		SixW:         sixW,
		CurrentPhase: PhaseSense,
		Status:       StatusDraft,
		Indices:      Indices{K: seedK},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// AttachResult appends a phase result and advances CurrentPhase. Results
// must arrive in PhaseOrder; completed phases are never rewritten.
func (m *Mission) AttachResult(r Result) error {
	if m.Status.Terminal() {
		return fmt.Errorf("%w: %s", ErrMissionClosed, m.Status)
	}
	p := r.ResultPhase()
	idx := Index(p)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPhase, p)
	}

	// The incoming phase must be the first phase without a result.
	expected := PhaseSense
	if done := m.PhaseResults.Completed(); len(done) > 0 {
		next, ok := Next(done[len(done)-1])
		if !ok {
			return fmt.Errorf("%w: workflow already complete", ErrOutOfOrder)
		}
		expected = next
	}
	if p != expected {
		return fmt.Errorf("%w: got %s, expected %s", ErrOutOfOrder, p, expected)
	}

	// The result's nextPhase pointer must agree with the registry.
	want, hasNext := Next(p)
	h := r.Head()
	if hasNext {
		if h.NextPhase == nil || *h.NextPhase != want {
			return fmt.Errorf("%w: phase %s", ErrNextPhaseWrong, p)
		}
	} else if h.NextPhase != nil {
		return fmt.Errorf("%w: terminal phase %s carries nextPhase", ErrNextPhaseWrong, p)
	}

	if err := m.PhaseResults.put(r); err != nil {
		return err
	}
	m.CurrentPhase = p
	m.Status = phaseStatus[p]
	m.touch()
	return nil
}

// MarkEliminated moves the mission into its ELIMINATED absorbing state.
func (m *Mission) MarkEliminated() {
	if m.Status.Terminal() {
		return
	}
	m.Status = StatusEliminated
	m.touch()
}

// MarkCompleted moves the mission into its COMPLETED absorbing state.
func (m *Mission) MarkCompleted() {
	if m.Status.Terminal() {
		return
	}
	m.Status = StatusCompleted
	m.touch()
}

// SetIndices replaces the running indices.
func (m *Mission) SetIndices(idx Indices) {
	m.Indices = idx
	m.touch()
}

func (m *Mission) touch() {
	m.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// Validate checks the structural invariants: currentPhase matches the
// highest recorded result, recorded phases form a prefix of PhaseOrder,
// and every nextPhase pointer agrees with the registry.
func (m *Mission) Validate() error {
	done := m.PhaseResults.Completed()
	for i, p := range done {
		if p != PhaseOrder[i] {
			return fmt.Errorf("phase results are not a prefix of the canonical order: %v", done)
		}
		h := m.PhaseResults.Get(p).Head()
		want, hasNext := Next(p)
		if hasNext {
			if h.NextPhase == nil || *h.NextPhase != want {
				return fmt.Errorf("%w: phase %s", ErrNextPhaseWrong, p)
			}
		} else if h.NextPhase != nil {
			return fmt.Errorf("%w: terminal phase %s carries nextPhase", ErrNextPhaseWrong, p)
		}
	}
	if m.CurrentPhase != m.PhaseResults.Highest() {
		return fmt.Errorf("currentPhase %s does not match highest recorded phase %s",
			m.CurrentPhase, m.PhaseResults.Highest())
	}
	return nil
}
