package phases

import (
	"math"
	"strings"
	"testing"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

func measureWith(t *testing.T, krs []workflow.KeyResult) *workflow.MeasureResult {
	t.Helper()
	res, err := Measure(MeasureInput{OKR: workflow.OKR{KeyResults: krs}})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestLearnRequiresMeasure(t *testing.T) {
	if _, err := Learn(LearnInput{}); err == nil {
		t.Fatal("Learn accepted a nil measure result")
	}
}

func TestLearnPatternBuckets(t *testing.T) {
	m := measureWith(t, []workflow.KeyResult{
		{Name: "재등록률", Baseline: 62, Target: 72, Actual: 72},  // ✅
		{Name: "응답률", Baseline: 30, Target: 60, Actual: 30},   // ❌
		{Name: "추천 등록", Baseline: 0, Target: 20, Actual: 10},  // ⚠️
	})

	res, err := Learn(LearnInput{
		Measure:         m,
		CauseCandidates: []string{"목표 과다 설정", "실행 기간 부족"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Patterns.Success) != 1 || res.Patterns.Success[0] != "재등록률" {
		t.Errorf("Success = %v", res.Patterns.Success)
	}
	if len(res.Patterns.Failure) != 1 || res.Patterns.Failure[0] != "응답률" {
		t.Errorf("Failure = %v", res.Patterns.Failure)
	}
	// Two of three KRs classified decisively.
	if math.Abs(res.Patterns.Confidence-2.0/3) > 1e-9 {
		t.Errorf("Confidence = %.4f, want 2/3", res.Patterns.Confidence)
	}

	// Gaps exist for the missed and partial KRs, not the achieved one.
	if len(res.Gaps) != 2 {
		t.Fatalf("len(Gaps) = %d, want 2", len(res.Gaps))
	}
	for _, g := range res.Gaps {
		if g.KeyResult == "재등록률" {
			t.Error("achieved KR got a gap analysis")
		}
		if g.RootCause != "목표 과다 설정" {
			t.Errorf("RootCause = %q", g.RootCause)
		}
	}
	if len(res.Improvements) != 2 {
		t.Errorf("Improvements = %v", res.Improvements)
	}
}

func TestLearnShadowRules(t *testing.T) {
	// Two gapped KRs share the candidate causes, so each cause recurs
	// twice and crosses the shadow-rule bar.
	m := measureWith(t, []workflow.KeyResult{
		{Name: "응답률", Baseline: 30, Target: 60, Actual: 30},
		{Name: "추천 등록", Baseline: 0, Target: 20, Actual: 5},
	})

	res, err := Learn(LearnInput{
		Measure:         m,
		CauseCandidates: []string{"데이터 수집 누락"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.ShadowRules) != 1 {
		t.Fatalf("ShadowRules = %v", res.ShadowRules)
	}
	if !strings.Contains(res.ShadowRules[0], "데이터 수집 누락") {
		t.Errorf("ShadowRules[0] = %q", res.ShadowRules[0])
	}

	// A single gap is not enough to codify a rule.
	m2 := measureWith(t, []workflow.KeyResult{
		{Name: "응답률", Baseline: 30, Target: 60, Actual: 30},
	})
	res2, err := Learn(LearnInput{Measure: m2, CauseCandidates: []string{"데이터 수집 누락"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res2.ShadowRules) != 0 {
		t.Errorf("single occurrence produced shadow rules: %v", res2.ShadowRules)
	}
}

func TestLearnDefaultsCausesToPlaceholder(t *testing.T) {
	m := measureWith(t, []workflow.KeyResult{
		{Name: "응답률", Baseline: 30, Target: 60, Actual: 30},
	})
	res, err := Learn(LearnInput{Measure: m})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Gaps) != 1 || res.Gaps[0].RootCause != PlaceholderCause {
		t.Errorf("Gaps = %+v, want placeholder root cause", res.Gaps)
	}
}

func TestLearnAllAchieved(t *testing.T) {
	m := measureWith(t, []workflow.KeyResult{
		{Name: "재등록률", Baseline: 62, Target: 72, Actual: 75},
	})
	res, err := Learn(LearnInput{Measure: m, CauseCandidates: []string{"담당자 부재"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Gaps) != 0 {
		t.Errorf("Gaps = %v on a fully achieved OKR", res.Gaps)
	}
	if res.Patterns.Confidence != 1 {
		t.Errorf("Confidence = %.2f, want 1", res.Patterns.Confidence)
	}
}
