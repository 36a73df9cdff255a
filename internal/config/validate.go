package config

import "fmt"

// ValidationError represents a single validation issue with a config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// recognizedRiskSignals is the set of member signals risk rules may
// reference.
var recognizedRiskSignals = map[string]bool{
	"absences":        true,
	"attendance_drop": true,
	"overdue_days":    true,
	"days_to_expiry":  true,
}

var recognizedRiskLevels = map[string]bool{
	"HIGH":   true,
	"MEDIUM": true,
	"LOW":    true,
}

// Validate checks a Config for structural and semantic errors. It returns
// a slice of all validation errors found (empty if valid).
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	e := cfg.Engine

	if e.Name == "" {
		errs = append(errs, ValidationError{Field: "engine.name", Message: "is required"})
	}

	for cat, k := range e.CategorySeeds {
		if k < 0 || k > 1 {
			errs = append(errs, ValidationError{
				Field:   "engine.category_seeds",
				Message: fmt.Sprintf("seed for %q must be in [0, 1], got %.2f", cat, k),
			})
		}
	}

	if n := len(e.EnvironmentFactors); n != 8 {
		errs = append(errs, ValidationError{
			Field:   "engine.environment_factors",
			Message: fmt.Sprintf("exactly 8 factors required, got %d", n),
		})
	}

	if n := len(e.SeasonFactors); n != 12 {
		errs = append(errs, ValidationError{
			Field:   "engine.season_factors",
			Message: fmt.Sprintf("exactly 12 monthly factors required, got %d", n),
		})
	}
	for i, f := range e.SeasonFactors {
		if f <= 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("engine.season_factors[%d]", i),
				Message: "must be positive",
			})
		}
	}

	seen := make(map[string]bool)
	for i, c := range e.ProblemCategories {
		prefix := fmt.Sprintf("engine.problem_categories[%d]", i)
		if c.Name == "" {
			errs = append(errs, ValidationError{Field: prefix + ".name", Message: "is required"})
			continue
		}
		if seen[c.Name] {
			errs = append(errs, ValidationError{
				Field:   prefix + ".name",
				Message: fmt.Sprintf("duplicate category %q", c.Name),
			})
		}
		seen[c.Name] = true
		if len(c.Keywords) == 0 {
			errs = append(errs, ValidationError{Field: prefix + ".keywords", Message: "at least one keyword is required"})
		}
		if len(c.CauseChain) != 5 {
			errs = append(errs, ValidationError{
				Field:   prefix + ".cause_chain",
				Message: fmt.Sprintf("exactly 5 levels required, got %d", len(c.CauseChain)),
			})
		}
	}

	for i, r := range e.RiskRules {
		prefix := fmt.Sprintf("engine.risk_rules[%d]", i)
		if !recognizedRiskSignals[r.Signal] {
			errs = append(errs, ValidationError{
				Field:   prefix + ".signal",
				Message: fmt.Sprintf("unrecognized signal %q", r.Signal),
			})
		}
		if r.Op != ">=" && r.Op != "<=" {
			errs = append(errs, ValidationError{
				Field:   prefix + ".op",
				Message: fmt.Sprintf("op must be \">=\" or \"<=\", got %q", r.Op),
			})
		}
		if !recognizedRiskLevels[r.Level] {
			errs = append(errs, ValidationError{
				Field:   prefix + ".level",
				Message: fmt.Sprintf("unrecognized level %q", r.Level),
			})
		}
	}

	errs = append(errs, validatePolicy(e)...)
	return errs
}

func validatePolicy(e Engine) []ValidationError {
	var errs []ValidationError
	p := e.Policy

	unit := map[string]float64{
		"engine.policy.eliminate_k":          p.EliminateK,
		"engine.policy.eliminate_omega":      p.EliminateOmega,
		"engine.policy.scale_up_k":           p.ScaleUpK,
		"engine.policy.scale_up_omega":       p.ScaleUpOmega,
		"engine.policy.discover_proceed_k":   p.DiscoverProceedK,
		"engine.policy.discover_eliminate_k": p.DiscoverEliminateK,
	}
	for field, v := range unit {
		if v < 0 || v > 1 {
			errs = append(errs, ValidationError{Field: field, Message: "must be in [0, 1]"})
		}
	}
	if p.EliminateI < -1 || p.EliminateI > 1 {
		errs = append(errs, ValidationError{Field: "engine.policy.eliminate_i", Message: "must be in [-1, 1]"})
	}
	if p.StagnantDays < 0 {
		errs = append(errs, ValidationError{Field: "engine.policy.stagnant_days", Message: "must be non-negative"})
	}
	if p.SignalThreshold < 0 || p.SignalThreshold > 10 {
		errs = append(errs, ValidationError{Field: "engine.policy.signal_threshold", Message: "must be in [0, 10]"})
	}
	return errs
}
