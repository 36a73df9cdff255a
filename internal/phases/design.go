package phases

import (
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// DesignInput carries the selected strategy and mission framing DESIGN
// works backwards from.
type DesignInput struct {
	MissionName string
	Strategy    workflow.StrategyCandidate
	Audience    string // from SixW.Who; defaults to "고객"
	ExtraFAQ    []workflow.FAQItem
}

// Design produces the press-release narrative, FAQ list, and categorized
// requirements for the selected strategy.
func Design(in DesignInput) (*workflow.DesignResult, error) {
	if in.Strategy.Name == "" {
		return nil, fmt.Errorf("design: selected strategy is missing")
	}

	name := in.MissionName
	if name == "" {
		name = in.Strategy.Name
	}
	audience := in.Audience
	if audience == "" {
		audience = "고객"
	}

	pr := workflow.PressRelease{
		Headline:    fmt.Sprintf("%s 출시", name),
		Subheadline: fmt.Sprintf("%s을 위한 %s", audience, in.Strategy.Name),
		Body: fmt.Sprintf(
			"%s는 %s 전략으로 %s의 핵심 문제를 해결한다. 추천 등급: %s.",
			name, in.Strategy.Name, audience, in.Strategy.Tier),
		CallToAction: fmt.Sprintf("지금 %s 시작하기", name),
	}

	faq := []workflow.FAQItem{
		{Question: "누구를 위한 것인가?", Answer: audience},
		{Question: "핵심 가치는 무엇인가?", Answer: in.Strategy.Name},
		{Question: "언제 이용할 수 있는가?", Answer: "MVP 출시 단계부터 단계적으로 제공"},
	}
	faq = append(faq, in.ExtraFAQ...)

	reqs := workflow.Requirements{
		Technical: []string{
			fmt.Sprintf("%s 실행 시스템 구축", in.Strategy.Name),
			"지표 수집 파이프라인",
		},
		Content: []string{
			"출시 안내 콘텐츠 제작",
			fmt.Sprintf("%s 대상 온보딩 자료", audience),
		},
		Process: []string{
			"주간 진행 점검 리듬 수립",
			"피드백 수집 루프 정의",
		},
		Team: []string{
			"실행 담당자 지정",
			"측정 담당자 지정",
		},
	}

	return &workflow.DesignResult{
		Header:       workflow.NewHeader(workflow.PhaseDesign),
		PressRelease: pr,
		FAQ:          faq,
		Requirements: reqs,
	}, nil
}
