package phases

import (
	"strings"
	"testing"

	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

func learnWith(t *testing.T, krs []workflow.KeyResult) *workflow.LearnResult {
	t.Helper()
	res, err := Learn(LearnInput{
		Measure:         measureWith(t, krs),
		CauseCandidates: []string{"실행 기간 부족"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestScaleRequiresLearn(t *testing.T) {
	if _, err := Scale(ScaleInput{Policy: indices.DefaultPolicy()}); err == nil {
		t.Fatal("Scale accepted a nil learn result")
	}
}

func TestScaleUp(t *testing.T) {
	learn := learnWith(t, []workflow.KeyResult{
		{Name: "재등록률", Baseline: 62, Target: 72, Actual: 75},
		{Name: "응답률", Baseline: 30, Target: 60, Actual: 30},
	})

	res, err := Scale(ScaleInput{
		Learn:  learn,
		K:      0.8,
		I:      0.2,
		Omega:  0.7,
		Policy: indices.DefaultPolicy(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Action != workflow.ScaleUp {
		t.Fatalf("Action = %s, want SCALE_UP", res.Action)
	}
	if res.Flywheel == nil || len(res.Flywheel.Steps) != 4 {
		t.Fatalf("Flywheel = %+v, want 4 steps", res.Flywheel)
	}
	// Success patterns accelerate the first step, failures decelerate the
	// second.
	if len(res.Flywheel.Steps[0].Accelerators) != 1 || res.Flywheel.Steps[0].Accelerators[0] != "재등록률" {
		t.Errorf("Accelerators = %v", res.Flywheel.Steps[0].Accelerators)
	}
	if len(res.Flywheel.Steps[1].Decelerators) != 1 || res.Flywheel.Steps[1].Decelerators[0] != "응답률" {
		t.Errorf("Decelerators = %v", res.Flywheel.Steps[1].Decelerators)
	}
	if res.NextMissions != nil {
		t.Errorf("scale-up carries next missions: %v", res.NextMissions)
	}
}

func TestScaleEliminateWinsOverScaleUp(t *testing.T) {
	learn := learnWith(t, []workflow.KeyResult{
		{Name: "재등록률", Baseline: 62, Target: 72, Actual: 75},
	})

	// K and Ω would qualify for scale-up, but I sits below the kill floor.
	res, err := Scale(ScaleInput{
		Learn:  learn,
		K:      0.9,
		I:      -0.5,
		Omega:  0.9,
		Policy: indices.DefaultPolicy(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != workflow.ScaleEliminate {
		t.Fatalf("Action = %s, want ELIMINATE", res.Action)
	}
	if res.Flywheel != nil {
		t.Error("eliminated mission got a flywheel")
	}
	for _, nm := range res.NextMissions {
		if !strings.HasPrefix(nm, "피벗 후보") {
			t.Errorf("next mission %q not labeled as pivot", nm)
		}
	}
}

func TestScaleMaintain(t *testing.T) {
	learn := learnWith(t, []workflow.KeyResult{
		{Name: "응답률", Baseline: 30, Target: 60, Actual: 45},
	})

	res, err := Scale(ScaleInput{
		Learn:  learn,
		K:      0.5,
		I:      0,
		Omega:  0.5,
		Policy: indices.DefaultPolicy(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != workflow.ScaleMaintain {
		t.Fatalf("Action = %s, want MAINTAIN", res.Action)
	}
	if len(res.NextMissions) != 1 || !strings.HasPrefix(res.NextMissions[0], "개선 미션") {
		t.Errorf("NextMissions = %v", res.NextMissions)
	}
}

func TestScaleStagnationEliminates(t *testing.T) {
	learn := learnWith(t, []workflow.KeyResult{
		{Name: "응답률", Baseline: 30, Target: 60, Actual: 45},
	})

	res, err := Scale(ScaleInput{
		Learn:        learn,
		K:            0.5,
		I:            0,
		Omega:        0.3,
		StagnantDays: 45,
		Policy:       indices.DefaultPolicy(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != workflow.ScaleEliminate {
		t.Fatalf("Action = %s, want ELIMINATE for stagnant low-Ω mission", res.Action)
	}
}
