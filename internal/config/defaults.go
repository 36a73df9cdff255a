package config

import (
	"github.com/Ohseho81/autus-engine/internal/indices"
	"github.com/Ohseho81/autus-engine/internal/phases"
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// Default returns the built-in configuration covering the Korean
// education-service domain, so the engine runs without a config file.
func Default() *Config {
	return &Config{
		Engine: Engine{
			Name:   "autus",
			Policy: indices.DefaultPolicy(),
			CategorySeeds: map[string]float64{
				"교육서비스업": 0.6,
				"학원":     0.65,
				"온라인교육":  0.7,
				"출판":     0.45,
				"컨설팅":    0.55,
			},
			EnvironmentFactors: []string{
				"정책", "경제", "사회", "기술", "인구", "경쟁", "계절", "지역",
			},
			BaselineAssumptions: []string{
				"대상 고객이 문제를 실제로 인식하고 있다",
				"제안 가치가 대안보다 우월하다",
				"실행 팀이 필요한 역량을 보유하고 있다",
			},
			ProblemCategories: []phases.ProblemCategory{
				{
					Name:     "수강생 감소",
					Keywords: []string{"감소", "이탈", "줄어"},
					CauseChain: []string{
						"수강생 수가 전분기 대비 줄었다",
						"재등록률이 하락했다",
						"수업 만족도가 낮아졌다",
						"커리큘럼이 학부모 기대와 어긋났다",
						"학부모 피드백 수집 채널이 없다",
					},
					Assumptions: []string{"이탈 사유는 가격이 아니라 만족도다"},
				},
				{
					Name:     "매출 정체",
					Keywords: []string{"매출", "정체", "수익"},
					CauseChain: []string{
						"매출이 6개월째 제자리다",
						"신규 유입이 기존 이탈을 겨우 상쇄한다",
						"신규 채널이 하나뿐이다",
						"추천 기반 유입 장치가 없다",
						"추천할 만한 차별 경험이 정의되지 않았다",
					},
					Assumptions: []string{"기존 고객의 추천 의향이 존재한다"},
				},
				{
					Name:     "운영 비효율",
					Keywords: []string{"운영", "비효율", "수작업"},
					CauseChain: []string{
						"운영 업무에 주당 20시간 이상 쓴다",
						"반복 업무가 수작업으로 처리된다",
						"업무 절차가 문서화되어 있지 않다",
						"도구 도입 검토가 이루어진 적 없다",
						"운영 개선 담당이 지정되지 않았다",
					},
					Assumptions: []string{"반복 업무의 절반 이상은 자동화 가능하다"},
				},
			},
			// Monthly demand multipliers, January first. New-semester
			// months (2-3, 8-9) run hot; early summer runs cool.
			SeasonFactors: []float64{
				1.10, 1.20, 1.25, 1.00, 0.90, 0.95,
				1.10, 1.20, 1.15, 1.00, 0.95, 1.05,
			},
			CauseCandidates: []string{
				"목표 과다 설정",
				"실행 기간 부족",
				"데이터 수집 누락",
				"담당자 부재",
			},
			RiskRules: []RiskRule{
				{Signal: "absences", Op: ">=", Threshold: 3, Level: "HIGH", Message: "결석 3회 이상 — 이탈 위험"},
				{Signal: "attendance_drop", Op: ">=", Threshold: 20, Level: "MEDIUM", Message: "출석률 20%p 이상 하락"},
				{Signal: "overdue_days", Op: ">=", Threshold: 14, Level: "HIGH", Message: "수강료 2주 이상 연체"},
				{Signal: "days_to_expiry", Op: "<=", Threshold: 7, Level: "MEDIUM", Message: "수강권 만료 7일 전 — 재등록 안내 필요"},
			},
			Templates: map[string]MissionTemplate{
				"재등록 개선": {
					Name:        "재등록 개선",
					Description: "재등록률 하락에 대응하는 리텐션 미션",
					Category:    "교육서비스업",
					SixW: workflow.SixW{
						Who:     "재원생 학부모",
						What:    "재등록률 개선",
						When:    "학기 말 4주 전",
						Where:   "전 캠퍼스",
						Why:     "재등록률이 신규 유치보다 수익 기여가 크다",
						HowMuch: "재등록률 +10%p",
					},
					Objective: "재등록률을 끌어올린다",
					KeyResults: []workflow.KeyResult{
						{Name: "재등록률", Baseline: 62, Target: 72, Unit: "%", Period: "분기"},
						{Name: "만족도 조사 응답률", Baseline: 30, Target: 60, Unit: "%", Period: "분기"},
					},
				},
				"신규 유입 확대": {
					Name:        "신규 유입 확대",
					Description: "추천 기반 신규 수강생 유입 미션",
					Category:    "학원",
					SixW: workflow.SixW{
						Who:     "잠재 학부모",
						What:    "추천 기반 신규 등록",
						When:    "신학기 시작 8주 전",
						Where:   "주요 1개 캠퍼스",
						Why:     "광고 대비 추천 유입의 전환율이 높다",
						HowMuch: "신규 등록 +20명",
					},
					Objective: "추천 유입 루프를 만든다",
					KeyResults: []workflow.KeyResult{
						{Name: "추천 등록 수", Baseline: 0, Target: 20, Unit: "명", Period: "분기"},
					},
				},
			},
		},
	}
}
