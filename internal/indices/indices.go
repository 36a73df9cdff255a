// Package indices holds the pure K / I / Ω calculators and the policy
// predicates gating mission continuation. Every function here is total
// and side-effect-free; thresholds come from a Policy value so they can
// be tuned in config, but the comparison operators and boolean
// combinations are fixed.
package indices

import "github.com/Ohseho81/autus-engine/internal/workflow"

// FeedbackPolicy holds the additive adjustment constants applied by
// ProcessFeedback. The bump magnitudes are tunable policy, the thresholds
// and the cap at 1.0 are structural.
type FeedbackPolicy struct {
	CompletionThreshold float64 `yaml:"completion_threshold" json:"completion_threshold"`
	CompletionBump      float64 `yaml:"completion_bump" json:"completion_bump"`
	QualityThreshold    float64 `yaml:"quality_threshold" json:"quality_threshold"`
	QualityBump         float64 `yaml:"quality_bump" json:"quality_bump"`
	FeedbackThreshold   float64 `yaml:"feedback_threshold" json:"feedback_threshold"`
	FeedbackBump        float64 `yaml:"feedback_bump" json:"feedback_bump"`
}

// Policy is the full threshold set for verdicts and signal emission.
type Policy struct {
	EliminateK     float64 `yaml:"eliminate_k" json:"eliminate_k"`
	EliminateI     float64 `yaml:"eliminate_i" json:"eliminate_i"`
	EliminateOmega float64 `yaml:"eliminate_omega" json:"eliminate_omega"`
	StagnantDays   int     `yaml:"stagnant_days" json:"stagnant_days"`

	ScaleUpK     float64 `yaml:"scale_up_k" json:"scale_up_k"`
	ScaleUpOmega float64 `yaml:"scale_up_omega" json:"scale_up_omega"`

	DiscoverProceedK   float64 `yaml:"discover_proceed_k" json:"discover_proceed_k"`
	DiscoverEliminateK float64 `yaml:"discover_eliminate_k" json:"discover_eliminate_k"`

	AnalyzeProceedScore   float64 `yaml:"analyze_proceed_score" json:"analyze_proceed_score"`
	AnalyzeEliminateScore float64 `yaml:"analyze_eliminate_score" json:"analyze_eliminate_score"`

	SignalThreshold float64 `yaml:"signal_threshold" json:"signal_threshold"`
	ForecastSigma   float64 `yaml:"forecast_sigma" json:"forecast_sigma"`

	Feedback FeedbackPolicy `yaml:"feedback" json:"feedback"`
}

// DefaultPolicy returns the canonical threshold set.
func DefaultPolicy() Policy {
	return Policy{
		EliminateK:            0.3,
		EliminateI:            -0.3,
		EliminateOmega:        0.4,
		StagnantDays:          30,
		ScaleUpK:              0.7,
		ScaleUpOmega:          0.6,
		DiscoverProceedK:      0.7,
		DiscoverEliminateK:    0.3,
		AnalyzeProceedScore:   0.6,
		AnalyzeEliminateScore: 0.3,
		SignalThreshold:       3,
		ForecastSigma:         0.15,
		Feedback: FeedbackPolicy{
			CompletionThreshold: 0.8,
			CompletionBump:      0.03,
			QualityThreshold:    0.7,
			QualityBump:         0.04,
			FeedbackThreshold:   0.7,
			FeedbackBump:        0.02,
		},
	}
}

// DefaultSeedK is the K seed for categories missing from the seed table.
const DefaultSeedK = 0.5

// InitializeK seeds the value index from the category table, falling back
// to DefaultSeedK for unknown categories.
func InitializeK(category string, seeds map[string]float64) float64 {
	if k, ok := seeds[category]; ok {
		return k
	}
	return DefaultSeedK
}

// CalculateI computes the interaction index in [-1, 1]:
// (opportunities − threats) / total, 0 for an empty signal set.
func CalculateI(signals []workflow.Signal) float64 {
	if len(signals) == 0 {
		return 0
	}
	var opp, threat int
	for _, s := range signals {
		switch s.Type {
		case workflow.SignalOpportunity:
			opp++
		case workflow.SignalThreat:
			threat++
		}
	}
	return float64(opp-threat) / float64(len(signals))
}

// CalculateOmega computes the efficiency index min(output/time, 1),
// defined as 0 when estimatedTime is 0 or either input is negative.
func CalculateOmega(estimatedTime, expectedOutput float64) float64 {
	if estimatedTime <= 0 || expectedOutput < 0 {
		return 0
	}
	omega := expectedOutput / estimatedTime
	if omega > 1 {
		return 1
	}
	return omega
}

// TotalScore combines the indices: (K+Ω)/2 − max(0, −I). Positive I never
// boosts beyond the K/Ω average; only net-negative signal penalizes.
func TotalScore(k, i, omega float64) float64 {
	penalty := 0.0
	if i < 0 {
		penalty = -i
	}
	return (k+omega)/2 - penalty
}

// ShouldEliminate is true when any one of three independent kill
// conditions holds: K below floor, I below floor, or Ω below floor while
// the mission has stagnated past the day limit.
func (p Policy) ShouldEliminate(k, i, omega float64, stagnantDays int) bool {
	return k < p.EliminateK ||
		i < p.EliminateI ||
		(omega < p.EliminateOmega && stagnantDays > p.StagnantDays)
}

// ShouldScaleUp is true only when both K and Ω clear their bars.
func (p Policy) ShouldScaleUp(k, omega float64) bool {
	return k >= p.ScaleUpK && omega >= p.ScaleUpOmega
}

// ProcessFeedback applies the bounded additive adjustments from the
// optimize stage: each score clearing its threshold contributes its bump,
// and both indices are capped at 1.
func (p Policy) ProcessFeedback(k, omega, completionRatio, quality, feedback float64) (float64, float64) {
	fb := p.Feedback
	if completionRatio >= fb.CompletionThreshold {
		k += fb.CompletionBump
	}
	if quality >= fb.QualityThreshold {
		omega += fb.QualityBump
	}
	if feedback >= fb.FeedbackThreshold {
		k += fb.FeedbackBump
	}
	if k > 1 {
		k = 1
	}
	if omega > 1 {
		omega = 1
	}
	return k, omega
}
