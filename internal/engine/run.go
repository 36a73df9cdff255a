package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// Outcome is the terminal state of a full workflow run.
type Outcome string

const (
	// OutcomeEliminatedEarly means the discover gate killed the mission.
	OutcomeEliminatedEarly Outcome = "ELIMINATED_EARLY"
	// OutcomeEliminated means the analyze gate killed the mission.
	OutcomeEliminated Outcome = "ELIMINATED"
	// OutcomeInProgress means the mission survived through redesign and
	// now awaits real measured outcomes for optimize/eliminate.
	OutcomeInProgress Outcome = "IN_PROGRESS"
)

// FullWorkflowInput bundles the stage inputs for a full run.
type FullWorkflowInput struct {
	Discover DiscoverInput `json:"discover" yaml:"discover"`
	Analyze  AnalyzeInput  `json:"analyze" yaml:"analyze"`
	Redesign RedesignInput `json:"redesign" yaml:"redesign"`
}

// WorkflowResult captures a full workflow run.
type WorkflowResult struct {
	MissionID string          `json:"mission_id"`
	Outcome   Outcome         `json:"outcome"`
	Discover  *DiscoverResult `json:"discover,omitempty"`
	Analyze   *AnalyzeResult  `json:"analyze,omitempty"`
	Redesign  *RedesignResult `json:"redesign,omitempty"`
}

// RunFullWorkflow drives discover → analyze → redesign sequentially,
// short-circuiting the moment either gate says ELIMINATE. Optimize and
// eliminate are separate calls: they need actual measured outcomes that
// only exist after a real launch period.
func (e *Engine) RunFullWorkflow(m *workflow.Mission, in FullWorkflowInput) (*WorkflowResult, error) {
	res := &WorkflowResult{MissionID: m.ID}

	discover, err := e.Discover(m, in.Discover)
	if err != nil {
		return nil, err
	}
	res.Discover = discover
	if discover.Recommendation == RecommendEliminate {
		res.Outcome = OutcomeEliminatedEarly
		e.logf("mission %s eliminated at discover", m.ID)
		return res, nil
	}

	analyze, err := e.Analyze(m, in.Analyze)
	if err != nil {
		return nil, err
	}
	res.Analyze = analyze
	if analyze.Verdict == VerdictEliminate {
		res.Outcome = OutcomeEliminated
		e.logf("mission %s eliminated at analyze", m.ID)
		return res, nil
	}

	redesign, err := e.Redesign(m, in.Redesign)
	if err != nil {
		return nil, err
	}
	res.Redesign = redesign
	res.Outcome = OutcomeInProgress
	return res, nil
}

// BatchRun pairs a mission with its workflow input.
type BatchRun struct {
	Mission *workflow.Mission
	Input   FullWorkflowInput
}

// RunBatch runs full workflows for independent missions concurrently,
// capped at limit in-flight. Missions share no state, so no
// synchronization is needed between them; results land at the same index
// as their run.
func (e *Engine) RunBatch(ctx context.Context, runs []BatchRun, limit int) ([]*WorkflowResult, error) {
	if limit <= 0 {
		limit = 4
	}
	results := make([]*WorkflowResult, len(runs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, run := range runs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.RunFullWorkflow(run.Mission, run.Input)
			if err != nil {
				return fmt.Errorf("mission %s: %w", run.Mission.ID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
