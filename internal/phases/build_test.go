package phases

import (
	"math"
	"testing"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

func TestBuildScoreAndAction(t *testing.T) {
	tests := []struct {
		name       string
		factors    workflow.AutomationFactors
		wantScore  float64
		wantAction workflow.BuildAction
	}{
		{
			// 25 + 25 + 20 + 20 + 10 with complexity 0.
			name:       "fully automatable",
			factors:    workflow.AutomationFactors{DataAvailability: 1, PatternRecognition: 1, Complexity: 0, Repetition: 1, ToolAvailability: 1},
			wantScore:  100,
			wantAction: workflow.ActionAutomate,
		},
		{
			// 0.8*25 + 0.8*25 + 0.5*20 + 0.5*20 + 0.5*10 = 65.
			name:       "compress",
			factors:    workflow.AutomationFactors{DataAvailability: 0.8, PatternRecognition: 0.8, Complexity: 0.5, Repetition: 0.5, ToolAvailability: 0.5},
			wantScore:  65,
			wantAction: workflow.ActionCompress,
		},
		{
			// 0.5s across the board = 12.5+12.5+10+10+5 = 50.
			name:       "delegate",
			factors:    workflow.AutomationFactors{DataAvailability: 0.5, PatternRecognition: 0.5, Complexity: 0.5, Repetition: 0.5, ToolAvailability: 0.5},
			wantScore:  50,
			wantAction: workflow.ActionDelegate,
		},
		{
			// Max complexity, nothing else: only the inverse term drops out.
			name:       "keep",
			factors:    workflow.AutomationFactors{Complexity: 1},
			wantScore:  0,
			wantAction: workflow.ActionKeep,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(BuildInput{Factors: tt.factors})
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(res.AutomationScore-tt.wantScore) > 1e-9 {
				t.Errorf("AutomationScore = %.2f, want %.2f", res.AutomationScore, tt.wantScore)
			}
			if res.Action != tt.wantAction {
				t.Errorf("Action = %s, want %s", res.Action, tt.wantAction)
			}
			if len(res.Tasks) == 0 {
				t.Error("no default tasks derived")
			}
			for _, task := range res.Tasks {
				if task.Status != "PENDING" {
					t.Errorf("task %q status = %q, want PENDING", task.Name, task.Status)
				}
			}
		})
	}
}

func TestBuildKeepsExplicitTasks(t *testing.T) {
	res, err := Build(BuildInput{
		Factors: workflow.AutomationFactors{DataAvailability: 1, PatternRecognition: 1, Repetition: 1, ToolAvailability: 1},
		Tasks: []workflow.Task{
			{Name: "알림 자동화", Assignee: "운영팀"},
			{Name: "검증", Status: "IN_PROGRESS"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tasks) != 2 {
		t.Fatalf("len(Tasks) = %d, want the explicit 2", len(res.Tasks))
	}
	if res.Tasks[0].Status != "PENDING" {
		t.Errorf("empty status not defaulted: %q", res.Tasks[0].Status)
	}
	if res.Tasks[1].Status != "IN_PROGRESS" {
		t.Errorf("explicit status overwritten: %q", res.Tasks[1].Status)
	}
}

func TestBuildRejectsOutOfRangeFactors(t *testing.T) {
	bad := []workflow.AutomationFactors{
		{DataAvailability: 1.1},
		{Complexity: -0.1},
	}
	for _, f := range bad {
		if _, err := Build(BuildInput{Factors: f}); err == nil {
			t.Errorf("Build accepted factors %+v", f)
		}
	}
}
