package phases

import (
	"math"
	"testing"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

func TestMeasureKRProgress(t *testing.T) {
	tests := []struct {
		name       string
		kr         workflow.KeyResult
		wantPct    float64
		wantStatus string
	}{
		{"on target", workflow.KeyResult{Name: "재등록률", Baseline: 62, Target: 72, Actual: 72}, 100, workflow.KRStatusOnTarget},
		{"overshoot clamps", workflow.KeyResult{Name: "재등록률", Baseline: 62, Target: 72, Actual: 80}, 100, workflow.KRStatusOnTarget},
		{"halfway", workflow.KeyResult{Name: "재등록률", Baseline: 62, Target: 72, Actual: 67}, 50, workflow.KRStatusPartial},
		{"missed", workflow.KeyResult{Name: "재등록률", Baseline: 62, Target: 72, Actual: 62}, 0, workflow.KRStatusMissed},
		{"regression clamps", workflow.KeyResult{Name: "재등록률", Baseline: 62, Target: 72, Actual: 50}, 0, workflow.KRStatusMissed},
		{"inverted kr", workflow.KeyResult{Name: "이탈률", Baseline: 20, Target: 10, Actual: 15}, 50, workflow.KRStatusPartial},
		{"flat kr met", workflow.KeyResult{Name: "유지", Baseline: 10, Target: 10, Actual: 10}, 100, workflow.KRStatusOnTarget},
		{"flat kr missed", workflow.KeyResult{Name: "유지", Baseline: 10, Target: 10, Actual: 9}, 0, workflow.KRStatusMissed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Measure(MeasureInput{OKR: workflow.OKR{KeyResults: []workflow.KeyResult{tt.kr}}})
			if err != nil {
				t.Fatal(err)
			}
			p := res.KRProgress[0]
			if math.Abs(p.ProgressPct-tt.wantPct) > 1e-9 {
				t.Errorf("ProgressPct = %.2f, want %.2f", p.ProgressPct, tt.wantPct)
			}
			if p.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", p.Status, tt.wantStatus)
			}
		})
	}
}

func TestMeasureTSELWeighting(t *testing.T) {
	res, err := Measure(MeasureInput{
		TSELBefore: workflow.TSEL{Trust: 1, Satisfaction: 1, Engagement: 1, Loyalty: 1, R: 99},
		TSELAfter:  workflow.TSEL{Trust: 2, Satisfaction: 2, Engagement: 2, Loyalty: 2},
	})
	if err != nil {
		t.Fatal(err)
	}

	// R is recomputed from the components; the caller's R=99 is ignored.
	if math.Abs(res.TSELBefore.R-1) > 1e-9 {
		t.Errorf("before R = %.2f, want 1", res.TSELBefore.R)
	}
	if math.Abs(res.TSELAfter.R-2) > 1e-9 {
		t.Errorf("after R = %.2f, want 2", res.TSELAfter.R)
	}
	if math.Abs(res.ProofPack.TSELDelta-1) > 1e-9 {
		t.Errorf("TSELDelta = %.2f, want 1", res.ProofPack.TSELDelta)
	}
}

func TestMeasureProofPack(t *testing.T) {
	res, err := Measure(MeasureInput{
		OKR: workflow.OKR{
			Objective: "재등록률을 끌어올린다",
			KeyResults: []workflow.KeyResult{
				{Name: "재등록률", Baseline: 62, Target: 72, Actual: 72},
				{Name: "응답률", Baseline: 30, Target: 60, Actual: 30},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(res.ProofPack.OKRProgressPct-50) > 1e-9 {
		t.Errorf("OKRProgressPct = %.2f, want 50", res.ProofPack.OKRProgressPct)
	}
	// One achievement note and one miss note.
	if len(res.ProofPack.LearningPoints) != 2 {
		t.Errorf("LearningPoints = %v", res.ProofPack.LearningPoints)
	}
}

func TestMeasureEmptyOKR(t *testing.T) {
	res, err := Measure(MeasureInput{})
	if err != nil {
		t.Fatalf("empty OKR should degrade, not error: %v", err)
	}
	if len(res.KRProgress) != 0 {
		t.Errorf("KRProgress = %v", res.KRProgress)
	}
	if res.ProofPack.OKRProgressPct != 0 {
		t.Errorf("OKRProgressPct = %.2f, want 0", res.ProofPack.OKRProgressPct)
	}
}

func TestMeasureRejectsUnnamedKR(t *testing.T) {
	_, err := Measure(MeasureInput{
		OKR: workflow.OKR{KeyResults: []workflow.KeyResult{{Target: 10}}},
	})
	if err == nil {
		t.Fatal("Measure accepted an unnamed key result")
	}
}
