// Package config defines the engine configuration parsed from YAML. All
// domain lookup tables (category seeds, problem categories, season
// factors, risk rules, mission templates) live here as data so the phase
// modules stay pure functions of typed input.
package config

import (
	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/phases"
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// Config is the top-level structure parsed from engine YAML.
type Config struct {
	Engine Engine `yaml:"engine"`
}

// Engine holds the full engine configuration: policy thresholds plus the
// domain adapter tables.
type Engine struct {
	Name string `yaml:"name"`

	Policy indices.Policy `yaml:"policy"`

	// CategorySeeds maps mission category to its initial K value.
	CategorySeeds map[string]float64 `yaml:"category_seeds"`

	// EnvironmentFactors names the eight factors SENSE consumes, in
	// presentation order.
	EnvironmentFactors []string `yaml:"environment_factors"`

	// BaselineAssumptions is the common assumption list ANALYZE starts
	// from before appending category-specific ones.
	BaselineAssumptions []string `yaml:"baseline_assumptions"`

	// ProblemCategories are the known five-whys decompositions matched by
	// keyword containment.
	ProblemCategories []phases.ProblemCategory `yaml:"problem_categories"`

	// SeasonFactors holds twelve monthly demand multipliers (January
	// first).
	SeasonFactors []float64 `yaml:"season_factors"`

	// CauseCandidates feed LEARN's gap analysis.
	CauseCandidates []string `yaml:"cause_candidates"`

	// RiskRules map member signals to risk entries.
	RiskRules []RiskRule `yaml:"risk_rules"`

	// Templates are named mission templates with pre-filled framing and
	// OKRs.
	Templates map[string]MissionTemplate `yaml:"templates"`
}

// RiskRule maps one member signal against a threshold to a risk entry.
type RiskRule struct {
	Signal    string  `yaml:"signal"`    // absences | attendance_drop | overdue_days | days_to_expiry
	Op        string  `yaml:"op"`        // ">=" or "<="
	Threshold float64 `yaml:"threshold"`
	Level     string  `yaml:"level"` // HIGH | MEDIUM | LOW
	Message   string  `yaml:"message"`
}

// MissionTemplate pre-fills a mission's framing and OKR.
type MissionTemplate struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description"`
	Category    string               `yaml:"category"`
	SixW        workflow.SixW        `yaml:"six_w"`
	Objective   string               `yaml:"objective"`
	KeyResults  []workflow.KeyResult `yaml:"key_results"`
}
