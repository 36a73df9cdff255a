package phases

import (
	"fmt"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// Automation factor weights; they sum to 100 so the score lands on a
// 0-100 scale. Complexity contributes inversely.
const (
	weightData       = 25
	weightPattern    = 25
	weightComplexity = 20
	weightRepetition = 20
	weightTooling    = 10
)

// Build action cut lines on the 0-100 automation score.
const (
	actionAutomateScore = 80
	actionCompressScore = 60
	actionDelegateScore = 40
)

// taskStatusPending is the initial status for derived tasks.
const taskStatusPending = "PENDING"

// BuildInput carries the automation factors (each scaled to [0,1]) and an
// optional explicit task list.
type BuildInput struct {
	Factors workflow.AutomationFactors
	Tasks   []workflow.Task
}

// Build computes the weighted automation score, derives the build action
// from its thresholds, and emits the task list (deriving a default list
// from the action when none was supplied).
func Build(in BuildInput) (*workflow.BuildResult, error) {
	if err := checkFactors(in.Factors); err != nil {
		return nil, err
	}

	f := in.Factors
	score := f.DataAvailability*weightData +
		f.PatternRecognition*weightPattern +
		(1-f.Complexity)*weightComplexity +
		f.Repetition*weightRepetition +
		f.ToolAvailability*weightTooling

	action := actionFor(score)

	tasks := in.Tasks
	if len(tasks) == 0 {
		tasks = defaultTasks(action)
	}
	for i := range tasks {
		if tasks[i].Status == "" {
			tasks[i].Status = taskStatusPending
		}
	}

	return &workflow.BuildResult{
		Header:          workflow.NewHeader(workflow.PhaseBuild),
		AutomationScore: score,
		Factors:         f,
		Action:          action,
		Tasks:           tasks,
	}, nil
}

func checkFactors(f workflow.AutomationFactors) error {
	for name, v := range map[string]float64{
		"data_availability":   f.DataAvailability,
		"pattern_recognition": f.PatternRecognition,
		"complexity":          f.Complexity,
		"repetition":          f.Repetition,
		"tool_availability":   f.ToolAvailability,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("build: factor %s value %.2f out of range [0, 1]", name, v)
		}
	}
	return nil
}

func actionFor(score float64) workflow.BuildAction {
	switch {
	case score >= actionAutomateScore:
		return workflow.ActionAutomate
	case score >= actionCompressScore:
		return workflow.ActionCompress
	case score >= actionDelegateScore:
		return workflow.ActionDelegate
	default:
		return workflow.ActionKeep
	}
}

func defaultTasks(action workflow.BuildAction) []workflow.Task {
	switch action {
	case workflow.ActionAutomate:
		return []workflow.Task{
			{Name: "자동화 스크립트 작성", Status: taskStatusPending},
			{Name: "자동화 검증 및 모니터링 설정", Status: taskStatusPending},
		}
	case workflow.ActionCompress:
		return []workflow.Task{
			{Name: "프로세스 단계 축소안 작성", Status: taskStatusPending},
			{Name: "축소된 프로세스 시범 적용", Status: taskStatusPending},
		}
	case workflow.ActionDelegate:
		return []workflow.Task{
			{Name: "위임 대상자 선정", Status: taskStatusPending},
			{Name: "업무 인수인계 문서 작성", Status: taskStatusPending},
		}
	default:
		return []workflow.Task{
			{Name: "현행 유지 및 분기별 재평가", Status: taskStatusPending},
		}
	}
}
