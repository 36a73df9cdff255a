package phases

import (
	"fmt"
	"strings"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// PlaceholderCause is the explicit placeholder used when no problem
// category matches and deeper analysis is still required.
const PlaceholderCause = "추가 분석 필요"

// causeChainDepth is the fixed depth of a five-whys decomposition.
const causeChainDepth = 5

// ProblemCategory is one known problem pattern with its canned five-level
// cause chain. Categories are configuration data, not code.
type ProblemCategory struct {
	Name        string   `json:"name" yaml:"name"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	CauseChain  []string `json:"cause_chain" yaml:"cause_chain"`
	Assumptions []string `json:"assumptions" yaml:"assumptions"`
}

// AnalyzeInput carries the problem statement, the sensed signals that seed
// the decomposition, the configured category table, and optional external
// evidence keyed by assumption text.
type AnalyzeInput struct {
	Problem             string
	Signals             []workflow.Signal
	Categories          []ProblemCategory
	BaselineAssumptions []string
	Evidence            map[string]string
}

// Analyze runs the deterministic five-whys decomposition: keyword
// containment against the known categories, or a generic placeholder
// chain when nothing matches. Assumptions are only ever validated against
// supplied evidence — no silent fabrication.
func Analyze(in AnalyzeInput) (*workflow.AnalyzeResult, error) {
	for i, c := range in.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("analyze: category %d has no name", i)
		}
		if len(c.CauseChain) != causeChainDepth {
			return nil, fmt.Errorf("analyze: category %q cause chain has %d levels, want %d",
				c.Name, len(c.CauseChain), causeChainDepth)
		}
	}

	res := &workflow.AnalyzeResult{
		Header:               workflow.NewHeader(workflow.PhaseAnalyze),
		Assumptions:          append([]string{}, in.BaselineAssumptions...),
		ValidatedAssumptions: []string{},
	}

	problem := strings.ToLower(in.Problem)
	matched := false
	for _, c := range in.Categories {
		for _, kw := range c.Keywords {
			if kw != "" && strings.Contains(problem, strings.ToLower(kw)) {
				res.ProblemCategory = c.Name
				res.CauseChain = append([]string{}, c.CauseChain...)
				res.Assumptions = append(res.Assumptions, c.Assumptions...)
				matched = true
				break
			}
		}
		if matched {
			break
		}
	}

	if !matched {
		res.ProblemCategory = PlaceholderCause
		res.CauseChain = genericChain(in)
	}
	res.RootCause = res.CauseChain[causeChainDepth-1]

	for _, a := range res.Assumptions {
		if ev, ok := in.Evidence[a]; ok && ev != "" {
			res.ValidatedAssumptions = append(res.ValidatedAssumptions,
				fmt.Sprintf("%s — %s", a, ev))
		}
	}
	return res, nil
}

// genericChain builds the fallback five-level chain, seeded from the
// strongest threat signal when one exists.
func genericChain(in AnalyzeInput) []string {
	observed := in.Problem
	if observed == "" {
		observed = "문제 미기술"
	}
	if top := topThreat(in.Signals); top != "" {
		observed = fmt.Sprintf("%s (위협 신호: %s)", observed, top)
	}
	chain := make([]string, causeChainDepth)
	chain[0] = "관찰: " + observed
	for i := 1; i < causeChainDepth; i++ {
		chain[i] = fmt.Sprintf("%d차 원인: %s", i, PlaceholderCause)
	}
	return chain
}

func topThreat(signals []workflow.Signal) string {
	var (
		name string
		best float64
	)
	for _, s := range signals {
		if s.Type == workflow.SignalThreat && s.Magnitude > best {
			best = s.Magnitude
			name = s.Factor
		}
	}
	return name
}
