package workflow

import (
	"encoding/json"
	"errors"
	"testing"
)

// resultFor builds a minimal complete result for any phase.
func resultFor(t *testing.T, p Phase) Result {
	t.Helper()
	h := NewHeader(p)
	switch p {
	case PhaseSense:
		return &SenseResult{Header: h}
	case PhaseAnalyze:
		return &AnalyzeResult{Header: h}
	case PhaseStrategize:
		return &StrategizeResult{Header: h}
	case PhaseDesign:
		return &DesignResult{Header: h}
	case PhaseBuild:
		return &BuildResult{Header: h}
	case PhaseLaunch:
		return &LaunchResult{Header: h}
	case PhaseMeasure:
		return &MeasureResult{Header: h}
	case PhaseLearn:
		return &LearnResult{Header: h}
	case PhaseScale:
		return &ScaleResult{Header: h}
	}
	t.Fatalf("unknown phase %s", p)
	return nil
}

func newTestMission() *Mission {
	return NewMission("재등록 개선", "재등록률 하락", "교육서비스업", SixW{Who: "학부모"}, 0.6)
}

func TestNewMissionDefaults(t *testing.T) {
	m := newTestMission()
	if m.ID == "" {
		t.Error("mission has no ID")
	}
	if m.Status != StatusDraft {
		t.Errorf("Status = %s, want DRAFT", m.Status)
	}
	if m.CurrentPhase != PhaseSense {
		t.Errorf("CurrentPhase = %s, want SENSE", m.CurrentPhase)
	}
	if m.Indices.K != 0.6 {
		t.Errorf("seed K = %.2f, want 0.6", m.Indices.K)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() on fresh mission: %v", err)
	}
}

func TestAttachResultInOrder(t *testing.T) {
	m := newTestMission()
	for _, p := range PhaseOrder {
		if err := m.AttachResult(resultFor(t, p)); err != nil {
			t.Fatalf("AttachResult(%s): %v", p, err)
		}
		if m.CurrentPhase != p {
			t.Errorf("after %s, CurrentPhase = %s", p, m.CurrentPhase)
		}
		if err := m.Validate(); err != nil {
			t.Errorf("Validate() after %s: %v", p, err)
		}
	}
	if m.Status != StatusScaling {
		t.Errorf("final status = %s, want SCALING", m.Status)
	}
	if got := len(m.PhaseResults.Completed()); got != 9 {
		t.Errorf("completed phases = %d, want 9", got)
	}
}

func TestAttachResultOutOfOrder(t *testing.T) {
	m := newTestMission()
	err := m.AttachResult(resultFor(t, PhaseAnalyze))
	if !errors.Is(err, ErrOutOfOrder) {
		t.Errorf("attaching ANALYZE first: err = %v, want ErrOutOfOrder", err)
	}

	if err := m.AttachResult(resultFor(t, PhaseSense)); err != nil {
		t.Fatalf("AttachResult(SENSE): %v", err)
	}
	err = m.AttachResult(resultFor(t, PhaseDesign))
	if !errors.Is(err, ErrOutOfOrder) {
		t.Errorf("skipping ahead to DESIGN: err = %v, want ErrOutOfOrder", err)
	}
}

func TestAttachResultNeverRewrites(t *testing.T) {
	m := newTestMission()
	if err := m.AttachResult(resultFor(t, PhaseSense)); err != nil {
		t.Fatal(err)
	}
	err := m.AttachResult(resultFor(t, PhaseSense))
	if !errors.Is(err, ErrOutOfOrder) && !errors.Is(err, ErrResultExists) {
		t.Errorf("re-attaching SENSE: err = %v, want ordering or exists error", err)
	}
	if m.PhaseResults.Sense == nil {
		t.Error("original SENSE result lost")
	}
}

func TestAttachResultRejectsTamperedNextPhase(t *testing.T) {
	m := newTestMission()
	r := resultFor(t, PhaseSense).(*SenseResult)
	wrong := PhaseScale
	r.NextPhase = &wrong
	err := m.AttachResult(r)
	if !errors.Is(err, ErrNextPhaseWrong) {
		t.Errorf("tampered nextPhase: err = %v, want ErrNextPhaseWrong", err)
	}
}

func TestAttachResultRejectsUnknownPhase(t *testing.T) {
	m := newTestMission()
	r := &SenseResult{Header: Header{Phase: "BOGUS", Status: StatusComplete}}
	err := m.AttachResult(r)
	if !errors.Is(err, ErrUnknownPhase) {
		t.Errorf("unknown phase: err = %v, want ErrUnknownPhase", err)
	}
}

func TestTerminalMissionRejectsResults(t *testing.T) {
	m := newTestMission()
	m.MarkEliminated()
	err := m.AttachResult(resultFor(t, PhaseSense))
	if !errors.Is(err, ErrMissionClosed) {
		t.Errorf("attach to eliminated mission: err = %v, want ErrMissionClosed", err)
	}

	// Terminal states are absorbing.
	m.MarkCompleted()
	if m.Status != StatusEliminated {
		t.Errorf("MarkCompleted overrode terminal state: %s", m.Status)
	}
}

func TestResultSetHighest(t *testing.T) {
	m := newTestMission()
	if got := m.PhaseResults.Highest(); got != PhaseSense {
		t.Errorf("Highest() on empty set = %s, want SENSE", got)
	}
	for _, p := range []Phase{PhaseSense, PhaseAnalyze, PhaseStrategize} {
		if err := m.AttachResult(resultFor(t, p)); err != nil {
			t.Fatal(err)
		}
	}
	if got := m.PhaseResults.Highest(); got != PhaseStrategize {
		t.Errorf("Highest() = %s, want STRATEGIZE", got)
	}
}

func TestMissionJSONRoundTrip(t *testing.T) {
	m := newTestMission()
	for _, p := range []Phase{PhaseSense, PhaseAnalyze} {
		if err := m.AttachResult(resultFor(t, p)); err != nil {
			t.Fatal(err)
		}
	}
	m.PhaseResults.Sense.Signals = []Signal{
		{Factor: "경쟁", Type: SignalThreat, Magnitude: 5, Urgency: UrgencyMedium},
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Mission
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() after round trip: %v", err)
	}
	if got.PhaseResults.Sense == nil || got.PhaseResults.Analyze == nil {
		t.Fatal("phase results lost in round trip")
	}
	if got.PhaseResults.Sense.Signals[0].Factor != "경쟁" {
		t.Errorf("signal factor = %q after round trip", got.PhaseResults.Sense.Signals[0].Factor)
	}
	if got.CurrentPhase != PhaseAnalyze {
		t.Errorf("CurrentPhase = %s after round trip", got.CurrentPhase)
	}
}

func TestValidateCatchesDrift(t *testing.T) {
	m := newTestMission()
	if err := m.AttachResult(resultFor(t, PhaseSense)); err != nil {
		t.Fatal(err)
	}
	m.CurrentPhase = PhaseDesign
	if err := m.Validate(); err == nil {
		t.Error("Validate() accepted currentPhase drift")
	}
}

func TestMaxUrgency(t *testing.T) {
	if got := MaxUrgency(UrgencyLow, UrgencyHigh); got != UrgencyHigh {
		t.Errorf("MaxUrgency(LOW, HIGH) = %s", got)
	}
	if got := MaxUrgency(UrgencyMedium, UrgencyLow); got != UrgencyMedium {
		t.Errorf("MaxUrgency(MEDIUM, LOW) = %s", got)
	}
}
