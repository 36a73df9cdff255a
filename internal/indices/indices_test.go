package indices

import (
	"math"
	"testing"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInitializeK(t *testing.T) {
	seeds := map[string]float64{"교육서비스업": 0.6, "학원": 0.65}

	if k := InitializeK("교육서비스업", seeds); k != 0.6 {
		t.Errorf("InitializeK(교육서비스업) = %.2f, want 0.6", k)
	}
	if k := InitializeK("미지의 업종", seeds); k != DefaultSeedK {
		t.Errorf("InitializeK(unknown) = %.2f, want %.2f", k, DefaultSeedK)
	}
	if k := InitializeK("교육서비스업", nil); k != DefaultSeedK {
		t.Errorf("InitializeK with nil seeds = %.2f, want %.2f", k, DefaultSeedK)
	}
}

func TestCalculateI(t *testing.T) {
	opp := workflow.Signal{Type: workflow.SignalOpportunity}
	threat := workflow.Signal{Type: workflow.SignalThreat}

	tests := []struct {
		name    string
		signals []workflow.Signal
		want    float64
	}{
		{"empty", nil, 0},
		{"all opportunities", []workflow.Signal{opp, opp}, 1},
		{"all threats", []workflow.Signal{threat, threat}, -1},
		{"mixed", []workflow.Signal{opp, opp, threat}, 1.0 / 3},
		{"balanced", []workflow.Signal{opp, threat}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateI(tt.signals)
			if !almostEqual(got, tt.want) {
				t.Errorf("CalculateI = %.4f, want %.4f", got, tt.want)
			}
			if got < -1 || got > 1 {
				t.Errorf("CalculateI = %.4f outside [-1, 1]", got)
			}
		})
	}
}

func TestCalculateOmega(t *testing.T) {
	tests := []struct {
		name         string
		time, output float64
		want         float64
	}{
		{"normal", 10, 5, 0.5},
		{"capped at one", 10, 25, 1},
		{"exactly one", 10, 10, 1},
		{"zero time", 0, 5, 0},
		{"negative time", -1, 5, 0},
		{"negative output", 10, -5, 0},
		{"zero output", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateOmega(tt.time, tt.output); !almostEqual(got, tt.want) {
				t.Errorf("CalculateOmega(%.1f, %.1f) = %.4f, want %.4f",
					tt.time, tt.output, got, tt.want)
			}
		})
	}
}

func TestTotalScore(t *testing.T) {
	tests := []struct {
		name        string
		k, i, omega float64
		want        float64
	}{
		{"positive i does not boost", 0.8, 0.5, 0.6, 0.7},
		{"zero i", 0.8, 0, 0.6, 0.7},
		{"negative i penalizes", 0.8, -0.2, 0.6, 0.5},
		{"scenario proceed", 0.8, 0.2, 0.7, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalScore(tt.k, tt.i, tt.omega); !almostEqual(got, tt.want) {
				t.Errorf("TotalScore(%.1f, %.1f, %.1f) = %.4f, want %.4f",
					tt.k, tt.i, tt.omega, got, tt.want)
			}
		})
	}
}

func TestShouldEliminate(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name         string
		k, i, omega  float64
		stagnantDays int
		want         bool
	}{
		{"healthy", 0.7, 0.2, 0.7, 0, false},
		{"k below floor", 0.29, 0.2, 0.7, 0, true},
		{"k at floor survives", 0.3, 0.2, 0.7, 0, false},
		{"i below floor", 0.7, -0.31, 0.7, 0, true},
		{"i at floor survives", 0.7, -0.3, 0.7, 0, false},
		{"low omega but fresh", 0.7, 0.2, 0.39, 30, false},
		{"low omega and stagnant", 0.7, 0.2, 0.39, 31, true},
		{"stagnant but omega fine", 0.7, 0.2, 0.4, 31, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ShouldEliminate(tt.k, tt.i, tt.omega, tt.stagnantDays)
			if got != tt.want {
				t.Errorf("ShouldEliminate(%.2f, %.2f, %.2f, %d) = %v, want %v",
					tt.k, tt.i, tt.omega, tt.stagnantDays, got, tt.want)
			}
		})
	}
}

func TestShouldScaleUp(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		k, omega float64
		want     bool
	}{
		{"both clear", 0.7, 0.6, true},
		{"k short", 0.69, 0.6, false},
		{"omega short", 0.7, 0.59, false},
		{"both high", 0.9, 0.9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ShouldScaleUp(tt.k, tt.omega); got != tt.want {
				t.Errorf("ShouldScaleUp(%.2f, %.2f) = %v, want %v", tt.k, tt.omega, got, tt.want)
			}
		})
	}
}

func TestProcessFeedback(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name                          string
		k, omega                      float64
		completion, quality, feedback float64
		wantK, wantOmega              float64
	}{
		{"all clear", 0.5, 0.5, 0.8, 0.7, 0.7, 0.55, 0.54},
		{"none clear", 0.5, 0.5, 0.79, 0.69, 0.69, 0.5, 0.5},
		{"completion only", 0.5, 0.5, 0.9, 0, 0, 0.53, 0.5},
		{"quality only", 0.5, 0.5, 0, 0.9, 0, 0.5, 0.54},
		{"feedback only", 0.5, 0.5, 0, 0, 0.9, 0.52, 0.5},
		{"k capped", 0.99, 0.5, 1, 0, 1, 1, 0.5},
		{"omega capped", 0.5, 0.98, 0, 1, 0, 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, omega := p.ProcessFeedback(tt.k, tt.omega, tt.completion, tt.quality, tt.feedback)
			if !almostEqual(k, tt.wantK) || !almostEqual(omega, tt.wantOmega) {
				t.Errorf("ProcessFeedback = (%.4f, %.4f), want (%.4f, %.4f)",
					k, omega, tt.wantK, tt.wantOmega)
			}
		})
	}
}

func TestDefaultPolicyRanges(t *testing.T) {
	p := DefaultPolicy()
	if p.DiscoverEliminateK >= p.DiscoverProceedK {
		t.Errorf("discover eliminate bar %.2f must sit below proceed bar %.2f",
			p.DiscoverEliminateK, p.DiscoverProceedK)
	}
	if p.AnalyzeEliminateScore >= p.AnalyzeProceedScore {
		t.Errorf("analyze eliminate bar %.2f must sit below proceed bar %.2f",
			p.AnalyzeEliminateScore, p.AnalyzeProceedScore)
	}
}
