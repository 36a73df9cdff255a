package phases

import (
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// shadowRuleMinOccurrences is how often a cause must recur across gaps
// before it is worth codifying as a shadow rule.
const shadowRuleMinOccurrences = 2

// LearnInput carries the measure result plus the configured candidate
// cause list for gap analysis.
type LearnInput struct {
	Measure         *workflow.MeasureResult
	CauseCandidates []string
}

// Learn extracts per-KR gap analysis from the measure result, proposes
// improvement actions, classifies patterns into success/failure buckets,
// and surfaces recurring causes as shadow rule candidates.
func Learn(in LearnInput) (*workflow.LearnResult, error) {
	if in.Measure == nil {
		return nil, fmt.Errorf("learn: measure result is required")
	}

	causes := in.CauseCandidates
	if len(causes) == 0 {
		causes = []string{PlaceholderCause}
	}

	krByName := make(map[string]workflow.KeyResult, len(in.Measure.OKR.KeyResults))
	for _, kr := range in.Measure.OKR.KeyResults {
		krByName[kr.Name] = kr
	}

	res := &workflow.LearnResult{
		Header: workflow.NewHeader(workflow.PhaseLearn),
	}

	causeCount := make(map[string]int)
	var classified int
	for _, p := range in.Measure.KRProgress {
		switch p.Status {
		case workflow.KRStatusOnTarget:
			res.Patterns.Success = append(res.Patterns.Success, p.Name)
			classified++
			continue
		case workflow.KRStatusMissed:
			res.Patterns.Failure = append(res.Patterns.Failure, p.Name)
			classified++
		}

		kr := krByName[p.Name]
		gap := workflow.GapAnalysis{
			KeyResult: p.Name,
			Target:    kr.Target,
			Actual:    kr.Actual,
			Causes:    append([]string{}, causes...),
			RootCause: causes[0],
		}
		res.Gaps = append(res.Gaps, gap)
		res.Improvements = append(res.Improvements,
			fmt.Sprintf("개선: %s — %s 해소", p.Name, gap.RootCause))
		for _, c := range gap.Causes {
			causeCount[c]++
		}
	}

	if total := len(in.Measure.KRProgress); total > 0 {
		res.Patterns.Confidence = float64(classified) / float64(total)
	}

	for _, c := range causes {
		if causeCount[c] >= shadowRuleMinOccurrences {
			res.ShadowRules = append(res.ShadowRules,
				fmt.Sprintf("IF %s THEN 조기 점검 트리거", c))
		}
	}
	return res, nil
}
