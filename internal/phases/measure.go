package phases

import (
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// TSEL component weights for the total R.
const (
	tselWeightTrust        = 0.3
	tselWeightSatisfaction = 0.3
	tselWeightEngagement   = 0.2
	tselWeightLoyalty      = 0.2
)

// MeasureInput carries the OKR with actuals filled in, plus before/after
// TSEL component scores.
type MeasureInput struct {
	OKR        workflow.OKR
	TSELBefore workflow.TSEL
	TSELAfter  workflow.TSEL
}

// Measure computes per-KR progress with status glyphs, the TSEL delta,
// and assembles the proof pack. An OKR with no key results degrades to an
// empty progress list and a zero-progress proof pack.
func Measure(in MeasureInput) (*workflow.MeasureResult, error) {
	before := weighTSEL(in.TSELBefore)
	after := weighTSEL(in.TSELAfter)

	var (
		progress []workflow.KRProgress
		sum      float64
		points   []string
	)
	for _, kr := range in.OKR.KeyResults {
		if kr.Name == "" {
			return nil, fmt.Errorf("measure: key result with empty name")
		}
		p := krProgress(kr)
		progress = append(progress, p)
		sum += p.ProgressPct

		switch p.Status {
		case workflow.KRStatusOnTarget:
			points = append(points, fmt.Sprintf("달성: %s (%.0f%%)", kr.Name, p.ProgressPct))
		case workflow.KRStatusMissed:
			points = append(points, fmt.Sprintf("미달: %s — 원인 분석 필요", kr.Name))
		}
	}

	avg := 0.0
	if len(progress) > 0 {
		avg = sum / float64(len(progress))
	}

	delta := after.R - before.R
	switch {
	case delta > 0:
		points = append(points, fmt.Sprintf("TSEL 총점 %.2f 상승", delta))
	case delta < 0:
		points = append(points, fmt.Sprintf("TSEL 총점 %.2f 하락", -delta))
	}

	return &workflow.MeasureResult{
		Header:     workflow.NewHeader(workflow.PhaseMeasure),
		OKR:        in.OKR,
		KRProgress: progress,
		TSELBefore: before,
		TSELAfter:  after,
		ProofPack: workflow.ProofPack{
			OKRProgressPct: avg,
			TSELDelta:      delta,
			LearningPoints: points,
		},
	}, nil
}

// krProgress computes (actual−baseline)/(target−baseline) as a clamped
// percentage. The formula handles inverted KRs (target below baseline)
// since both numerator and denominator flip sign.
func krProgress(kr workflow.KeyResult) workflow.KRProgress {
	var pct float64
	if kr.Target == kr.Baseline {
		if kr.Actual >= kr.Target {
			pct = 100
		}
	} else {
		pct = (kr.Actual - kr.Baseline) / (kr.Target - kr.Baseline) * 100
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	status := workflow.KRStatusPartial
	switch {
	case pct >= 100:
		status = workflow.KRStatusOnTarget
	case pct <= 0:
		status = workflow.KRStatusMissed
	}
	return workflow.KRProgress{Name: kr.Name, ProgressPct: pct, Status: status}
}

// weighTSEL recomputes the weighted total R from the four components,
// ignoring any caller-supplied R.
func weighTSEL(t workflow.TSEL) workflow.TSEL {
	t.R = t.Trust*tselWeightTrust +
		t.Satisfaction*tselWeightSatisfaction +
		t.Engagement*tselWeightEngagement +
		t.Loyalty*tselWeightLoyalty
	return t
}
