// Package domain is the education-domain adapter boundary: category
// seeding, seasonal factors, member risk rules, and mission templates.
// Everything here resolves configuration data; the engine consumes the
// results as plain input and never mutates them.
package domain

import (
	"time"

	"github.com/Ohseho81/autus-engine/internal/config"
	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/phases"
)

// Adapter resolves domain lookups against a loaded config.
type Adapter struct {
	cfg *config.Config
}

// New creates an Adapter over cfg.
func New(cfg *config.Config) *Adapter {
	return &Adapter{cfg: cfg}
}

// SeedK returns the initial K for a mission category.
func (a *Adapter) SeedK(category string) float64 {
	return indices.InitializeK(category, a.cfg.Engine.CategorySeeds)
}

// SeasonFactor returns the monthly demand multiplier for t, defaulting to
// 1 when the table is malformed.
func (a *Adapter) SeasonFactor(t time.Time) float64 {
	factors := a.cfg.Engine.SeasonFactors
	month := int(t.Month()) - 1
	if month < 0 || month >= len(factors) {
		return 1
	}
	return factors[month]
}

// EnvironmentFactors builds the eight-factor SENSE input from influence
// scores keyed by factor name. Factors without a score default to 0.
func (a *Adapter) EnvironmentFactors(influence map[string]int) []phases.EnvironmentFactor {
	names := a.cfg.Engine.EnvironmentFactors
	out := make([]phases.EnvironmentFactor, 0, len(names))
	for _, name := range names {
		out = append(out, phases.EnvironmentFactor{Name: name, Influence: influence[name]})
	}
	return out
}

// Template looks up a mission template by name.
func (a *Adapter) Template(name string) (config.MissionTemplate, bool) {
	t, ok := a.cfg.Engine.Templates[name]
	return t, ok
}

// MemberSignals are the per-member metrics the risk rules evaluate.
type MemberSignals struct {
	Absences          int     `json:"absences"`
	AttendanceDropPct float64 `json:"attendance_drop_pct"`
	OverdueDays       int     `json:"overdue_days"`
	DaysToExpiry      int     `json:"days_to_expiry"`
}

// RiskEntry is one triggered risk rule.
type RiskEntry struct {
	Signal  string  `json:"signal"`
	Level   string  `json:"level"`
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

// EvaluateRisk applies the configured rule table to the member signals
// and returns every triggered entry. No signals triggering is an empty
// slice, not an error.
func (a *Adapter) EvaluateRisk(s MemberSignals) []RiskEntry {
	var entries []RiskEntry
	for _, rule := range a.cfg.Engine.RiskRules {
		value, ok := signalValue(s, rule.Signal)
		if !ok {
			continue
		}
		triggered := false
		switch rule.Op {
		case ">=":
			triggered = value >= rule.Threshold
		case "<=":
			triggered = value <= rule.Threshold
		}
		if triggered {
			entries = append(entries, RiskEntry{
				Signal:  rule.Signal,
				Level:   rule.Level,
				Value:   value,
				Message: rule.Message,
			})
		}
	}
	return entries
}

func signalValue(s MemberSignals, name string) (float64, bool) {
	switch name {
	case "absences":
		return float64(s.Absences), true
	case "attendance_drop":
		return s.AttendanceDropPct, true
	case "overdue_days":
		return float64(s.OverdueDays), true
	case "days_to_expiry":
		return float64(s.DaysToExpiry), true
	}
	return 0, false
}
