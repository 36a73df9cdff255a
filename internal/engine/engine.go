// Package engine orchestrates the nine phase modules through the coarser
// 5-stage loop: DISCOVER → ANALYZE → REDESIGN → OPTIMIZE → ELIMINATE.
// The engine is the sole writer of Mission state; phase modules stay pure.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/Ohseho81/autus-engine/internal/config"
	"github.com/Ohseho81/autus-engine/internal/db"
	"github.com/Ohseho81/autus-engine/internal/domain"
	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/phases"
	"github.com/Ohseho81/autus-engine/internal/store"
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// Engine stage identifiers used for persistence and analytics.
const (
	StageDiscover  = "discover"
	StageAnalyze   = "analyze"
	StageRedesign  = "redesign"
	StageOptimize  = "optimize"
	StageEliminate = "eliminate"
)

// Recommendation is the discover-stage gate.
type Recommendation string

const (
	RecommendProceed     Recommendation = "PROCEED"
	RecommendAnalyzeMore Recommendation = "ANALYZE_MORE"
	RecommendEliminate   Recommendation = "ELIMINATE"
)

// Verdict is the analyze-stage gate.
type Verdict string

const (
	VerdictProceed   Verdict = "PROCEED"
	VerdictRedesign  Verdict = "REDESIGN"
	VerdictEliminate Verdict = "ELIMINATE"
)

// Engine executes mission stages over the phase modules. Store and db are
// optional; a nil store skips persistence and a nil db skips event
// logging, which keeps the engine embeddable in tests and other hosts.
type Engine struct {
	cfg      *config.Config
	adapter  *domain.Adapter
	store    *store.Store
	database *db.DB
	progress io.Writer // live progress output; nil = silent
}

// New creates an engine over the given config, store, and event log.
func New(cfg *config.Config, st *store.Store, database *db.DB) *Engine {
	return &Engine{
		cfg:      cfg,
		adapter:  domain.New(cfg),
		store:    st,
		database: database,
	}
}

// SetProgress sets a writer for live progress output (e.g. os.Stderr).
func (e *Engine) SetProgress(w io.Writer) {
	e.progress = w
}

// logf prints a progress line if a progress writer is configured.
func (e *Engine) logf(format string, args ...interface{}) {
	if e.progress != nil {
		fmt.Fprintf(e.progress, "  → "+format+"\n", args...)
	}
}

func (e *Engine) policy() indices.Policy {
	return e.cfg.Engine.Policy
}

// DiscoverInput configures the discover stage (SENSE + ANALYZE).
type DiscoverInput struct {
	// Influence maps environment factor name to its integer score.
	Influence     map[string]int `json:"influence" yaml:"influence"`
	CurrentMetric float64        `json:"current_metric" yaml:"current_metric"`
	HorizonMonths int            `json:"horizon_months" yaml:"horizon_months"`
	// At is the reference time for the season lookup; zero means now.
	At time.Time `json:"-" yaml:"-"`
	// Problem defaults to the mission description when empty.
	Problem  string            `json:"problem" yaml:"problem"`
	Evidence map[string]string `json:"evidence" yaml:"evidence"`
}

// DiscoverResult is the discover stage outcome.
type DiscoverResult struct {
	Recommendation Recommendation          `json:"recommendation"`
	Sense          *workflow.SenseResult   `json:"sense"`
	Analyze        *workflow.AnalyzeResult `json:"analyze"`
	Indices        workflow.Indices        `json:"indices"`
	Duration       time.Duration           `json:"duration"`
}

// Discover runs SENSE and ANALYZE, seeds K and I, and gates on K.
func (e *Engine) Discover(m *workflow.Mission, in DiscoverInput) (*DiscoverResult, error) {
	start := time.Now()
	if m.Status.Terminal() {
		return nil, fmt.Errorf("discover: mission %s is %s", m.ID, m.Status)
	}
	if len(m.PhaseResults.Completed()) != 0 {
		return nil, fmt.Errorf("discover: mission %s already past SENSE", m.ID)
	}
	e.logf("mission %s: discover (SENSE, ANALYZE)", m.ID)

	if m.Indices.K == 0 {
		m.Indices.K = e.adapter.SeedK(m.Category)
	}

	at := in.At
	if at.IsZero() {
		at = time.Now()
	}
	sense, err := phases.Sense(phases.SenseInput{
		MissionName:   m.Name,
		Factors:       e.adapter.EnvironmentFactors(in.Influence),
		CurrentMetric: in.CurrentMetric,
		HorizonMonths: in.HorizonMonths,
		SeasonFactor:  e.adapter.SeasonFactor(at),
		Policy:        e.policy(),
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(sense); err != nil {
		return nil, err
	}
	e.logf("sense: %d signals, urgency %s", len(sense.Signals), sense.OverallUrgency)

	problem := in.Problem
	if problem == "" {
		problem = m.Description
	}
	analyze, err := phases.Analyze(phases.AnalyzeInput{
		Problem:             problem,
		Signals:             sense.Signals,
		Categories:          e.cfg.Engine.ProblemCategories,
		BaselineAssumptions: e.cfg.Engine.BaselineAssumptions,
		Evidence:            in.Evidence,
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(analyze); err != nil {
		return nil, err
	}
	e.logf("analyze: category %q", analyze.ProblemCategory)

	idx := m.Indices
	idx.I = indices.CalculateI(sense.Signals)
	m.SetIndices(idx)

	p := e.policy()
	rec := RecommendAnalyzeMore
	switch {
	case idx.K >= p.DiscoverProceedK:
		rec = RecommendProceed
	case idx.K <= p.DiscoverEliminateK:
		rec = RecommendEliminate
		m.MarkEliminated()
	}
	e.logf("discover gate: K=%.2f → %s", idx.K, rec)

	res := &DiscoverResult{
		Recommendation: rec,
		Sense:          sense,
		Analyze:        analyze,
		Indices:        m.Indices,
		Duration:       time.Since(start),
	}
	if err := e.finishStage(m, StageDiscover, string(rec), res, start); err != nil {
		return nil, err
	}
	return res, nil
}

// AnalyzeInput configures the analyze stage (STRATEGIZE + DESIGN).
type AnalyzeInput struct {
	Candidates     []phases.CandidateStrategy `json:"candidates" yaml:"candidates"`
	EstimatedTime  float64                    `json:"estimated_time" yaml:"estimated_time"`
	ExpectedOutput float64                    `json:"expected_output" yaml:"expected_output"`
	ExtraFAQ       []workflow.FAQItem         `json:"extra_faq,omitempty" yaml:"extra_faq"`
}

// AnalyzeResult is the analyze stage outcome.
type AnalyzeResult struct {
	Verdict    Verdict                    `json:"verdict"`
	TotalScore float64                    `json:"total_score"`
	Strategize *workflow.StrategizeResult `json:"strategize"`
	Design     *workflow.DesignResult     `json:"design"`
	Indices    workflow.Indices           `json:"indices"`
	Duration   time.Duration              `json:"duration"`
}

// Analyze runs STRATEGIZE and DESIGN, computes Ω, and gates on the total
// score.
func (e *Engine) Analyze(m *workflow.Mission, in AnalyzeInput) (*AnalyzeResult, error) {
	start := time.Now()
	if m.Status.Terminal() {
		return nil, fmt.Errorf("analyze: mission %s is %s", m.ID, m.Status)
	}
	if m.PhaseResults.Analyze == nil {
		return nil, fmt.Errorf("analyze: mission %s has no discover result", m.ID)
	}
	e.logf("mission %s: analyze (STRATEGIZE, DESIGN)", m.ID)

	strat, err := phases.Strategize(phases.StrategizeInput{
		SixW:       m.SixW,
		Candidates: in.Candidates,
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(strat); err != nil {
		return nil, err
	}
	e.logf("strategize: selected %q (%.1f, %s)",
		strat.Selected.Name, strat.Selected.ThielScore, strat.Selected.Tier)

	design, err := phases.Design(phases.DesignInput{
		MissionName: m.Name,
		Strategy:    strat.Selected,
		Audience:    m.SixW.Who,
		ExtraFAQ:    in.ExtraFAQ,
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(design); err != nil {
		return nil, err
	}

	idx := m.Indices
	idx.Omega = indices.CalculateOmega(in.EstimatedTime, in.ExpectedOutput)
	m.SetIndices(idx)

	total := indices.TotalScore(idx.K, idx.I, idx.Omega)
	p := e.policy()
	verdict := VerdictRedesign
	switch {
	case total >= p.AnalyzeProceedScore:
		verdict = VerdictProceed
	case total <= p.AnalyzeEliminateScore:
		verdict = VerdictEliminate
		m.MarkEliminated()
	}
	e.logf("analyze gate: total=%.2f → %s", total, verdict)

	res := &AnalyzeResult{
		Verdict:    verdict,
		TotalScore: total,
		Strategize: strat,
		Design:     design,
		Indices:    m.Indices,
		Duration:   time.Since(start),
	}
	if err := e.finishStage(m, StageAnalyze, string(verdict), res, start); err != nil {
		return nil, err
	}
	return res, nil
}

// RedesignInput configures the redesign stage (BUILD + LAUNCH).
type RedesignInput struct {
	Factors      workflow.AutomationFactors `json:"factors" yaml:"factors"`
	Tasks        []workflow.Task            `json:"tasks,omitempty" yaml:"tasks"`
	MVPFeatures  []string                   `json:"mvp_features,omitempty" yaml:"mvp_features"`
	LaunchPhases []workflow.LaunchPhase     `json:"launch_phases,omitempty" yaml:"launch_phases"`
	Rollback     workflow.RollbackPlan      `json:"rollback,omitempty" yaml:"rollback"`
}

// RedesignResult is the redesign stage outcome. The automation score and
// build action are informational; they never gate further progress.
type RedesignResult struct {
	AutomationScore float64                `json:"automation_score"`
	Action          workflow.BuildAction   `json:"action"`
	Build           *workflow.BuildResult  `json:"build"`
	Launch          *workflow.LaunchResult `json:"launch"`
	Duration        time.Duration          `json:"duration"`
}

// Redesign runs BUILD and LAUNCH.
func (e *Engine) Redesign(m *workflow.Mission, in RedesignInput) (*RedesignResult, error) {
	start := time.Now()
	if m.Status.Terminal() {
		return nil, fmt.Errorf("redesign: mission %s is %s", m.ID, m.Status)
	}
	design := m.PhaseResults.Design
	if design == nil {
		return nil, fmt.Errorf("redesign: mission %s has no design result", m.ID)
	}
	e.logf("mission %s: redesign (BUILD, LAUNCH)", m.ID)

	build, err := phases.Build(phases.BuildInput{
		Factors: in.Factors,
		Tasks:   in.Tasks,
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(build); err != nil {
		return nil, err
	}
	e.logf("build: automation %.0f → %s", build.AutomationScore, build.Action)

	launch, err := phases.Launch(phases.LaunchInput{
		Requirements: design.Requirements,
		MVPFeatures:  in.MVPFeatures,
		Phases:       in.LaunchPhases,
		Rollback:     in.Rollback,
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(launch); err != nil {
		return nil, err
	}

	res := &RedesignResult{
		AutomationScore: build.AutomationScore,
		Action:          build.Action,
		Build:           build,
		Launch:          launch,
		Duration:        time.Since(start),
	}
	if err := e.finishStage(m, StageRedesign, string(build.Action), res, start); err != nil {
		return nil, err
	}
	return res, nil
}

// OptimizeInput configures the optimize stage (MEASURE + LEARN) with the
// actual measured outcomes.
type OptimizeInput struct {
	OKR             workflow.OKR  `json:"okr" yaml:"okr"`
	TSELBefore      workflow.TSEL `json:"tsel_before" yaml:"tsel_before"`
	TSELAfter       workflow.TSEL `json:"tsel_after" yaml:"tsel_after"`
	CompletionRatio float64       `json:"completion_ratio" yaml:"completion_ratio"`
	QualityScore    float64       `json:"quality_score" yaml:"quality_score"`
	FeedbackScore   float64       `json:"feedback_score" yaml:"feedback_score"`
}

// OptimizeResult is the optimize stage outcome with the re-adjusted
// indices.
type OptimizeResult struct {
	Indices  workflow.Indices        `json:"indices"`
	Measure  *workflow.MeasureResult `json:"measure"`
	Learn    *workflow.LearnResult   `json:"learn"`
	Duration time.Duration           `json:"duration"`
}

// Optimize runs MEASURE and LEARN, then recomputes K and Ω from the
// feedback scores.
func (e *Engine) Optimize(m *workflow.Mission, in OptimizeInput) (*OptimizeResult, error) {
	start := time.Now()
	if m.Status.Terminal() {
		return nil, fmt.Errorf("optimize: mission %s is %s", m.ID, m.Status)
	}
	if m.PhaseResults.Launch == nil {
		return nil, fmt.Errorf("optimize: mission %s has no launch result", m.ID)
	}
	e.logf("mission %s: optimize (MEASURE, LEARN)", m.ID)

	measure, err := phases.Measure(phases.MeasureInput{
		OKR:        in.OKR,
		TSELBefore: in.TSELBefore,
		TSELAfter:  in.TSELAfter,
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(measure); err != nil {
		return nil, err
	}
	e.logf("measure: OKR %.0f%%, TSEL Δ%.2f",
		measure.ProofPack.OKRProgressPct, measure.ProofPack.TSELDelta)

	learn, err := phases.Learn(phases.LearnInput{
		Measure:         measure,
		CauseCandidates: e.cfg.Engine.CauseCandidates,
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(learn); err != nil {
		return nil, err
	}

	idx := m.Indices
	idx.K, idx.Omega = e.policy().ProcessFeedback(
		idx.K, idx.Omega, in.CompletionRatio, in.QualityScore, in.FeedbackScore)
	m.SetIndices(idx)
	e.logf("feedback: K=%.2f Ω=%.2f", idx.K, idx.Omega)

	res := &OptimizeResult{
		Indices:  m.Indices,
		Measure:  measure,
		Learn:    learn,
		Duration: time.Since(start),
	}
	if err := e.finishStage(m, StageOptimize, "ADJUSTED", res, start); err != nil {
		return nil, err
	}
	return res, nil
}

// EliminateResult is the eliminate stage outcome. ShouldRestartLoop is
// true exactly when the scale action is MAINTAIN.
type EliminateResult struct {
	Action            workflow.ScaleAction  `json:"action"`
	ShouldRestartLoop bool                  `json:"should_restart_loop"`
	Scale             *workflow.ScaleResult `json:"scale"`
	Duration          time.Duration         `json:"duration"`
}

// Eliminate runs SCALE and resolves the mission's fate: SCALE_UP
// completes it, ELIMINATE closes it, MAINTAIN restarts the loop.
func (e *Engine) Eliminate(m *workflow.Mission) (*EliminateResult, error) {
	start := time.Now()
	if m.Status.Terminal() {
		return nil, fmt.Errorf("eliminate: mission %s is %s", m.ID, m.Status)
	}
	if m.PhaseResults.Learn == nil {
		return nil, fmt.Errorf("eliminate: mission %s has no learn result", m.ID)
	}
	e.logf("mission %s: eliminate (SCALE)", m.ID)

	scale, err := phases.Scale(phases.ScaleInput{
		Learn:        m.PhaseResults.Learn,
		K:            m.Indices.K,
		I:            m.Indices.I,
		Omega:        m.Indices.Omega,
		StagnantDays: m.StagnantDays,
		Policy:       e.policy(),
	})
	if err != nil {
		return nil, err
	}
	if err := m.AttachResult(scale); err != nil {
		return nil, err
	}

	switch scale.Action {
	case workflow.ScaleUp:
		m.MarkCompleted()
	case workflow.ScaleEliminate:
		m.MarkEliminated()
	}
	e.logf("scale: %s", scale.Action)

	res := &EliminateResult{
		Action:            scale.Action,
		ShouldRestartLoop: scale.Action == workflow.ScaleMaintain,
		Scale:             scale,
		Duration:          time.Since(start),
	}
	if err := e.finishStage(m, StageEliminate, string(scale.Action), res, start); err != nil {
		return nil, err
	}
	return res, nil
}

// finishStage persists the mission and stage result and records the
// stage run. Event logging is best-effort; persistence failures surface.
func (e *Engine) finishStage(m *workflow.Mission, stage, verdict string, result interface{}, start time.Time) error {
	if e.store != nil {
		if err := e.store.Save(m); err != nil {
			return fmt.Errorf("save mission: %w", err)
		}
		if err := e.store.SaveStageResult(m.ID, stage, result); err != nil {
			return fmt.Errorf("save stage result: %w", err)
		}
	}
	if e.database != nil {
		if err := e.database.LogStageRun(m.ID, m.Category, stage, verdict,
			m.Indices.K, m.Indices.I, m.Indices.Omega,
			time.Since(start).Milliseconds()); err != nil {
			e.logf("warning: log stage run: %v", err)
		}
		if err := e.database.LogMissionEvent(m.ID, "stage_completed", stage, verdict); err != nil {
			e.logf("warning: log mission event: %v", err)
		}
	}
	return nil
}
