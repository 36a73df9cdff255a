package phases

import (
	"math"
	"testing"

	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

var factorNames = []string{"정책", "경제", "사회", "기술", "인구", "경쟁", "계절", "지역"}

// testFactors builds the eight named factors with the given influence
// scores (unnamed positions default to 0).
func testFactors(influence map[string]int) []EnvironmentFactor {
	out := make([]EnvironmentFactor, 0, len(factorNames))
	for _, name := range factorNames {
		out = append(out, EnvironmentFactor{Name: name, Influence: influence[name]})
	}
	return out
}

func TestSenseRejectsWrongFactorCount(t *testing.T) {
	_, err := Sense(SenseInput{Factors: testFactors(nil)[:5], Policy: indices.DefaultPolicy()})
	if err == nil {
		t.Fatal("Sense accepted 5 factors")
	}
}

func TestSenseRejectsOutOfRangeInfluence(t *testing.T) {
	factors := testFactors(map[string]int{"경쟁": 11})
	if _, err := Sense(SenseInput{Factors: factors, Policy: indices.DefaultPolicy()}); err == nil {
		t.Fatal("Sense accepted influence 11")
	}
	factors = testFactors(map[string]int{"경쟁": -11})
	if _, err := Sense(SenseInput{Factors: factors, Policy: indices.DefaultPolicy()}); err == nil {
		t.Fatal("Sense accepted influence -11")
	}
}

func TestSenseRejectsUnnamedFactor(t *testing.T) {
	factors := testFactors(nil)
	factors[3].Name = ""
	if _, err := Sense(SenseInput{Factors: factors, Policy: indices.DefaultPolicy()}); err == nil {
		t.Fatal("Sense accepted an unnamed factor")
	}
}

func TestSenseSignalsAndUrgency(t *testing.T) {
	// 경쟁 -8 is a HIGH threat, 기술 +5 a MEDIUM opportunity, 경제 +2 stays
	// below the signal threshold.
	factors := testFactors(map[string]int{"경쟁": -8, "기술": 5, "경제": 2})
	res, err := Sense(SenseInput{
		MissionName: "재등록 개선",
		Factors:     factors,
		Policy:      indices.DefaultPolicy(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Signals) != 2 {
		t.Fatalf("len(Signals) = %d, want 2", len(res.Signals))
	}
	byFactor := make(map[string]workflow.Signal)
	for _, s := range res.Signals {
		byFactor[s.Factor] = s
	}

	threat := byFactor["경쟁"]
	if threat.Type != workflow.SignalThreat {
		t.Errorf("경쟁 type = %s, want THREAT", threat.Type)
	}
	if threat.Magnitude != 8 || threat.Urgency != workflow.UrgencyHigh {
		t.Errorf("경쟁 magnitude/urgency = %.0f/%s, want 8/HIGH", threat.Magnitude, threat.Urgency)
	}
	if threat.Weight != 0.8 {
		t.Errorf("경쟁 weight = %.2f, want 0.8", threat.Weight)
	}

	opp := byFactor["기술"]
	if opp.Type != workflow.SignalOpportunity || opp.Urgency != workflow.UrgencyMedium {
		t.Errorf("기술 = %s/%s, want OPPORTUNITY/MEDIUM", opp.Type, opp.Urgency)
	}

	if res.OverallUrgency != workflow.UrgencyHigh {
		t.Errorf("OverallUrgency = %s, want HIGH", res.OverallUrgency)
	}

	// envIndex = (-8+5+2)/80
	want := -1.0 / 80
	if math.Abs(res.EnvironmentIndex-want) > 1e-9 {
		t.Errorf("EnvironmentIndex = %.4f, want %.4f", res.EnvironmentIndex, want)
	}
}

func TestSenseQuietEnvironment(t *testing.T) {
	res, err := Sense(SenseInput{Factors: testFactors(nil), Policy: indices.DefaultPolicy()})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Signals) != 0 {
		t.Errorf("quiet environment produced %d signals", len(res.Signals))
	}
	if res.OverallUrgency != workflow.UrgencyLow {
		t.Errorf("OverallUrgency = %s, want LOW", res.OverallUrgency)
	}
	if res.EnvironmentIndex != 0 {
		t.Errorf("EnvironmentIndex = %.4f, want 0", res.EnvironmentIndex)
	}
}

func TestSenseForecast(t *testing.T) {
	// All eight factors at +4: envIndex = 32/80 = 0.4.
	influence := make(map[string]int)
	for _, n := range factorNames {
		influence[n] = 4
	}
	res, err := Sense(SenseInput{
		Factors:       testFactors(influence),
		CurrentMetric: 1000,
		HorizonMonths: 3,
		SeasonFactor:  1.2,
		Policy:        indices.DefaultPolicy(),
	})
	if err != nil {
		t.Fatal(err)
	}

	f := res.Forecast
	if f.Months != 3 {
		t.Errorf("Months = %d, want 3", f.Months)
	}
	// predicted = 1000 * (1 + 0.4*1.2) = 1480
	if math.Abs(f.Predicted-1480) > 1e-6 {
		t.Errorf("Predicted = %.2f, want 1480", f.Predicted)
	}
	if math.Abs(f.ChangePct-48) > 1e-6 {
		t.Errorf("ChangePct = %.2f, want 48", f.ChangePct)
	}
	// sigma = |0.4| * 0.15
	if math.Abs(f.Sigma-0.06) > 1e-9 {
		t.Errorf("Sigma = %.4f, want 0.06", f.Sigma)
	}
}

func TestSenseForecastDefaults(t *testing.T) {
	res, err := Sense(SenseInput{Factors: testFactors(nil), Policy: indices.DefaultPolicy()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Forecast.Months != 6 {
		t.Errorf("default horizon = %d months, want 6", res.Forecast.Months)
	}
	if res.Forecast.ChangePct != 0 {
		t.Errorf("ChangePct with zero metric = %.2f, want 0", res.Forecast.ChangePct)
	}
}

func TestSenseHeaderChaining(t *testing.T) {
	res, err := Sense(SenseInput{Factors: testFactors(nil), Policy: indices.DefaultPolicy()})
	if err != nil {
		t.Fatal(err)
	}
	if res.Phase != workflow.PhaseSense || res.Status != workflow.StatusComplete {
		t.Errorf("header = %s/%s", res.Phase, res.Status)
	}
	if res.NextPhase == nil || *res.NextPhase != workflow.PhaseAnalyze {
		t.Error("SENSE header does not chain to ANALYZE")
	}
}
