package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Ohseho81/autus-engine/internal/indices"
)

// zeroPolicy is the unset-policy sentinel used by applyDefaults.
func zeroPolicy() indices.Policy { return indices.Policy{} }

// Load reads and parses an engine configuration from the given YAML file
// path. After parsing, built-in defaults fill any section the file leaves
// empty.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches for an engine config in standard locations and
// loads the first one found. Search order: ./autus.yaml,
// ~/.autus/config.yaml. When none exists the built-in defaults are used.
func LoadDefault() (*Config, error) {
	candidates := []string{"autus.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".autus", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

// applyDefaults fills empty sections from the built-in defaults so a
// partial config file still yields a runnable engine.
func applyDefaults(cfg *Config) {
	def := Default().Engine
	e := &cfg.Engine

	if e.Name == "" {
		e.Name = def.Name
	}
	if e.Policy == (zeroPolicy()) {
		e.Policy = def.Policy
	}
	if len(e.CategorySeeds) == 0 {
		e.CategorySeeds = def.CategorySeeds
	}
	if len(e.EnvironmentFactors) == 0 {
		e.EnvironmentFactors = def.EnvironmentFactors
	}
	if len(e.BaselineAssumptions) == 0 {
		e.BaselineAssumptions = def.BaselineAssumptions
	}
	if len(e.ProblemCategories) == 0 {
		e.ProblemCategories = def.ProblemCategories
	}
	if len(e.SeasonFactors) == 0 {
		e.SeasonFactors = def.SeasonFactors
	}
	if len(e.CauseCandidates) == 0 {
		e.CauseCandidates = def.CauseCandidates
	}
	if len(e.RiskRules) == 0 {
		e.RiskRules = def.RiskRules
	}
	if len(e.Templates) == 0 {
		e.Templates = def.Templates
	}
}
