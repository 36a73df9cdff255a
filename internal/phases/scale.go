package phases

import (
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// ScaleInput carries the learn result, the current indices, and the
// stagnation counter feeding the shared predicates.
type ScaleInput struct {
	Learn        *workflow.LearnResult
	K            float64
	I            float64
	Omega        float64
	StagnantDays int
	Policy       indices.Policy
}

// Scale decides SCALE_UP / MAINTAIN / ELIMINATE via the shared
// predicates. Elimination is checked first: a mission below the kill
// thresholds is eliminated even when it would also qualify to scale.
func Scale(in ScaleInput) (*workflow.ScaleResult, error) {
	if in.Learn == nil {
		return nil, fmt.Errorf("scale: learn result is required")
	}

	res := &workflow.ScaleResult{
		Header: workflow.NewHeader(workflow.PhaseScale),
	}

	switch {
	case in.Policy.ShouldEliminate(in.K, in.I, in.Omega, in.StagnantDays):
		res.Action = workflow.ScaleEliminate
		res.NextMissions = nextMissions(in.Learn, "피벗 후보")
	case in.Policy.ShouldScaleUp(in.K, in.Omega):
		res.Action = workflow.ScaleUp
		res.Flywheel = buildFlywheel(in.Learn)
	default:
		res.Action = workflow.ScaleMaintain
		res.NextMissions = nextMissions(in.Learn, "개선 미션")
	}
	return res, nil
}

// buildFlywheel assembles the scale-up flywheel: a fixed loop whose steps
// carry the observed success patterns as accelerators and failure
// patterns as decelerators.
func buildFlywheel(learn *workflow.LearnResult) *workflow.Flywheel {
	steps := []workflow.FlywheelStep{
		{Name: "고객 유입 확대"},
		{Name: "핵심 경험 강화"},
		{Name: "추천 및 재등록"},
		{Name: "재투자"},
	}
	steps[0].Accelerators = learn.Patterns.Success
	steps[1].Decelerators = learn.Patterns.Failure
	return &workflow.Flywheel{Steps: steps}
}

// nextMissions turns improvement actions into suggested follow-up
// missions under the given label.
func nextMissions(learn *workflow.LearnResult, label string) []string {
	if len(learn.Improvements) == 0 {
		return []string{fmt.Sprintf("%s: %s", label, PlaceholderCause)}
	}
	out := make([]string, 0, len(learn.Improvements))
	for _, imp := range learn.Improvements {
		out = append(out, fmt.Sprintf("%s: %s", label, imp))
	}
	return out
}
