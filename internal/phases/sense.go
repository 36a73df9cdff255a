// Package phases implements the nine stateless workflow phase modules.
// Each module is a total function over well-formed input: thin business
// data degrades to explicit placeholders, and errors are raised only for
// structurally invalid input. Modules never touch Mission state; the
// integrated engine is the sole writer.
package phases

import (
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// EnvironmentFactorCount is the fixed number of named environment factors
// SENSE consumes.
const EnvironmentFactorCount = 8

// maxInfluence bounds a factor's influence score.
const maxInfluence = 10

// EnvironmentFactor is one named factor with an integer influence score
// in [-10, 10].
type EnvironmentFactor struct {
	Name      string `json:"name" yaml:"name"`
	Influence int    `json:"influence" yaml:"influence"`
}

// SenseInput carries everything SENSE needs.
type SenseInput struct {
	MissionName   string
	Factors       []EnvironmentFactor
	CurrentMetric float64 // forecast baseline (e.g. monthly revenue or headcount)
	HorizonMonths int     // defaults to 6
	SeasonFactor  float64 // seasonal multiplier from the domain adapter; defaults to 1
	Policy        indices.Policy
}

// Sense detects signals from the environment factors, aggregates them
// into an environment index, and produces a point forecast.
func Sense(in SenseInput) (*workflow.SenseResult, error) {
	if len(in.Factors) != EnvironmentFactorCount {
		return nil, fmt.Errorf("sense: expected %d environment factors, got %d",
			EnvironmentFactorCount, len(in.Factors))
	}
	for _, f := range in.Factors {
		if f.Name == "" {
			return nil, fmt.Errorf("sense: environment factor with empty name")
		}
		if f.Influence < -maxInfluence || f.Influence > maxInfluence {
			return nil, fmt.Errorf("sense: factor %q influence %d out of range [-%d, %d]",
				f.Name, f.Influence, maxInfluence, maxInfluence)
		}
	}

	threshold := in.Policy.SignalThreshold
	if threshold <= 0 {
		threshold = indices.DefaultPolicy().SignalThreshold
	}

	var (
		signals []workflow.Signal
		sum     int
		overall = workflow.UrgencyLow
	)
	for _, f := range in.Factors {
		sum += f.Influence
		mag := f.Influence
		if mag < 0 {
			mag = -mag
		}
		if float64(mag) < threshold {
			continue
		}
		sig := workflow.Signal{
			Factor:    f.Name,
			Type:      workflow.SignalOpportunity,
			Magnitude: float64(mag),
			Threshold: threshold,
			Urgency:   urgencyFor(mag),
			Weight:    float64(mag) / maxInfluence,
		}
		if f.Influence < 0 {
			sig.Type = workflow.SignalThreat
		}
		signals = append(signals, sig)
		overall = workflow.MaxUrgency(overall, sig.Urgency)
	}

	envIndex := float64(sum) / float64(EnvironmentFactorCount*maxInfluence)

	res := &workflow.SenseResult{
		Header:           workflow.NewHeader(workflow.PhaseSense),
		Signals:          signals,
		EnvironmentIndex: envIndex,
		Forecast:         forecast(in, envIndex),
		OverallUrgency:   overall,
	}
	return res, nil
}

func urgencyFor(magnitude int) workflow.Urgency {
	switch {
	case magnitude >= 8:
		return workflow.UrgencyHigh
	case magnitude >= 5:
		return workflow.UrgencyMedium
	default:
		return workflow.UrgencyLow
	}
}

func forecast(in SenseInput, envIndex float64) workflow.Forecast {
	months := in.HorizonMonths
	if months <= 0 {
		months = 6
	}
	season := in.SeasonFactor
	if season == 0 {
		season = 1
	}
	sigmaScale := in.Policy.ForecastSigma
	if sigmaScale == 0 {
		sigmaScale = indices.DefaultPolicy().ForecastSigma
	}

	predicted := in.CurrentMetric * (1 + envIndex*season)
	changePct := 0.0
	if in.CurrentMetric != 0 {
		changePct = (predicted - in.CurrentMetric) / in.CurrentMetric * 100
	}
	mag := envIndex
	if mag < 0 {
		mag = -mag
	}
	return workflow.Forecast{
		Current:   in.CurrentMetric,
		Predicted: predicted,
		ChangePct: changePct,
		Months:    months,
		Sigma:     mag * sigmaScale,
	}
}
