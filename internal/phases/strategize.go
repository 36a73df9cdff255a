package phases

import (
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// maxDimensionScore bounds each Thiel dimension.
const maxDimensionScore = 10

// Tier cut lines on the 0-10 thielScore scale.
const (
	tierStrongPursue = 8
	tierPursue       = 6
	tierConsider     = 4
)

// CandidateStrategy is one unscored strategy option supplied to
// STRATEGIZE.
type CandidateStrategy struct {
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description" yaml:"description"`
	Scores      workflow.ThielScores `json:"scores" yaml:"scores"`
}

// StrategizeInput carries the mission framing and the candidates to score.
type StrategizeInput struct {
	SixW       workflow.SixW
	Candidates []CandidateStrategy
}

// Strategize scores every candidate on the four Thiel dimensions and
// selects the highest scorer. An empty candidate list degrades to an
// explicit AVOID placeholder rather than an error.
func Strategize(in StrategizeInput) (*workflow.StrategizeResult, error) {
	res := &workflow.StrategizeResult{
		Header: workflow.NewHeader(workflow.PhaseStrategize),
	}

	if len(in.Candidates) == 0 {
		placeholder := workflow.StrategyCandidate{
			Name:        "전략 후보 없음",
			Description: "후보 전략이 입력되지 않음 — 전략 수립 필요",
			Tier:        workflow.TierAvoid,
		}
		res.Candidates = []workflow.StrategyCandidate{placeholder}
		res.Selected = placeholder
		return res, nil
	}

	for i, c := range in.Candidates {
		if c.Name == "" {
			return nil, fmt.Errorf("strategize: candidate %d has no name", i)
		}
		if err := checkScores(c.Name, c.Scores); err != nil {
			return nil, err
		}
		scored := workflow.StrategyCandidate{
			Name:        c.Name,
			Description: describeCandidate(c, in.SixW),
			Scores:      c.Scores,
			ThielScore:  thielScore(c.Scores),
		}
		scored.Tier = tierFor(scored.ThielScore)
		res.Candidates = append(res.Candidates, scored)
		if scored.ThielScore > res.Selected.ThielScore || res.Selected.Name == "" {
			res.Selected = scored
		}
	}
	return res, nil
}

func checkScores(name string, s workflow.ThielScores) error {
	for dim, v := range map[string]float64{
		"technology": s.Technology,
		"timing":     s.Timing,
		"monopoly":   s.Monopoly,
		"team":       s.Team,
	} {
		if v < 0 || v > maxDimensionScore {
			return fmt.Errorf("strategize: candidate %q %s score %.1f out of range [0, %d]",
				name, dim, v, maxDimensionScore)
		}
	}
	return nil
}

func thielScore(s workflow.ThielScores) float64 {
	return (s.Technology + s.Timing + s.Monopoly + s.Team) / 4
}

func tierFor(score float64) workflow.RecommendationTier {
	switch {
	case score >= tierStrongPursue:
		return workflow.TierStrongPursue
	case score >= tierPursue:
		return workflow.TierPursue
	case score >= tierConsider:
		return workflow.TierConsider
	default:
		return workflow.TierAvoid
	}
}

func describeCandidate(c CandidateStrategy, w workflow.SixW) string {
	if c.Description != "" {
		return c.Description
	}
	if w.Who != "" && w.What != "" {
		return fmt.Sprintf("%s 대상 — %s", w.Who, w.What)
	}
	return c.Name
}
