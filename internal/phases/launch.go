package phases

import (
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// mvpFeatureLimit caps the derived MVP subset.
const mvpFeatureLimit = 3

// LaunchInput carries the design requirements plus optional explicit
// launch planning overrides.
type LaunchInput struct {
	Requirements workflow.Requirements
	MVPFeatures  []string               // explicit subset; derived from requirements when empty
	Phases       []workflow.LaunchPhase // defaults to internal → beta → public
	Rollback     workflow.RollbackPlan  // defaults filled when empty
}

// Launch emits the MVP feature subset, the launch phase sequence, and the
// rollback plan. All inputs are optional; missing pieces degrade to
// explicit defaults.
func Launch(in LaunchInput) (*workflow.LaunchResult, error) {
	features := in.MVPFeatures
	if len(features) == 0 {
		features = deriveMVP(in.Requirements)
	}

	phases := in.Phases
	if len(phases) == 0 {
		phases = []workflow.LaunchPhase{
			{Audience: "내부 팀", Duration: "1주", Goal: "핵심 흐름 검증"},
			{Audience: "베타 사용자", Duration: "2주", Goal: "피드백 수집 및 지표 기준선 확보"},
			{Audience: "전체 공개", Duration: "4주", Goal: "목표 지표 달성"},
		}
	}

	rollback := in.Rollback
	if rollback.Trigger == "" {
		rollback.Trigger = "핵심 지표가 기준선 대비 20% 이상 하락"
	}
	if rollback.Action == "" {
		rollback.Action = "직전 단계로 복귀 후 원인 분석"
	}

	return &workflow.LaunchResult{
		Header:      workflow.NewHeader(workflow.PhaseLaunch),
		MVPFeatures: features,
		Phases:      phases,
		Rollback:    rollback,
	}, nil
}

// deriveMVP takes the first technical requirements as the MVP subset,
// falling back through the other categories when technical is thin.
func deriveMVP(reqs workflow.Requirements) []string {
	var features []string
	for _, group := range [][]string{reqs.Technical, reqs.Content, reqs.Process} {
		for _, r := range group {
			if len(features) == mvpFeatureLimit {
				return features
			}
			features = append(features, r)
		}
	}
	if len(features) == 0 {
		features = []string{"MVP 범위 미정의 — 요구사항 정의 필요"}
	}
	return features
}
