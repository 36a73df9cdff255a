// Package analytics runs SQL aggregations over the stage-run event log.
package analytics

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
)

// DB is the interface for database queries used by analytics.
type DB interface {
	Conn() *sql.DB
}

// VerdictCount is the number of stage runs ending in a given verdict.
type VerdictCount struct {
	Stage   string `json:"stage"`
	Verdict string `json:"verdict"`
	Count   int    `json:"count"`
}

// QueryVerdictDistribution returns verdict counts per stage, optionally
// restricted to runs at or after the since timestamp.
func QueryVerdictDistribution(database DB, since string) ([]VerdictCount, error) {
	query := `
		SELECT stage, verdict, COUNT(*)
		FROM stage_runs`
	args := []interface{}{}
	if since != "" {
		query += ` WHERE timestamp >= ?`
		args = append(args, since)
	}
	query += ` GROUP BY stage, verdict ORDER BY stage, verdict`

	rows, err := database.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verdict distribution: %w", err)
	}
	defer rows.Close()

	var results []VerdictCount
	for rows.Next() {
		var v VerdictCount
		if err := rows.Scan(&v.Stage, &v.Verdict, &v.Count); err != nil {
			return nil, fmt.Errorf("scan verdict count: %w", err)
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

// CategoryElimination is the elimination rate for one mission category.
type CategoryElimination struct {
	Category      string  `json:"category"`
	Missions      int     `json:"missions"`
	Eliminated    int     `json:"eliminated"`
	EliminatedPct float64 `json:"eliminated_pct"`
}

// QueryEliminationByCategory returns, per category, how many missions ran
// and how many ended in an elimination verdict at any stage.
func QueryEliminationByCategory(database DB, since string) ([]CategoryElimination, error) {
	query := `
		SELECT category,
			COUNT(DISTINCT mission_id) as missions,
			COUNT(DISTINCT CASE WHEN verdict IN ('ELIMINATE') THEN mission_id END) as eliminated
		FROM stage_runs
		WHERE category != ''`
	args := []interface{}{}
	if since != "" {
		query += ` AND timestamp >= ?`
		args = append(args, since)
	}
	query += ` GROUP BY category ORDER BY category`

	rows, err := database.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query elimination by category: %w", err)
	}
	defer rows.Close()

	var results []CategoryElimination
	for rows.Next() {
		var c CategoryElimination
		if err := rows.Scan(&c.Category, &c.Missions, &c.Eliminated); err != nil {
			return nil, fmt.Errorf("scan category elimination: %w", err)
		}
		if c.Missions > 0 {
			c.EliminatedPct = float64(c.Eliminated) / float64(c.Missions) * 100
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// StageIndexAvg holds average index values per engine stage.
type StageIndexAvg struct {
	Stage    string  `json:"stage"`
	Count    int     `json:"count"`
	AvgK     float64 `json:"avg_k"`
	AvgI     float64 `json:"avg_i"`
	AvgOmega float64 `json:"avg_omega"`
}

// QueryIndexAverages returns the average K/I/Ω snapshot per stage.
func QueryIndexAverages(database DB, since string) ([]StageIndexAvg, error) {
	query := `
		SELECT stage, COUNT(*), AVG(k), AVG(i), AVG(omega)
		FROM stage_runs`
	args := []interface{}{}
	if since != "" {
		query += ` WHERE timestamp >= ?`
		args = append(args, since)
	}
	query += ` GROUP BY stage ORDER BY stage`

	rows, err := database.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query index averages: %w", err)
	}
	defer rows.Close()

	var results []StageIndexAvg
	for rows.Next() {
		var a StageIndexAvg
		if err := rows.Scan(&a.Stage, &a.Count, &a.AvgK, &a.AvgI, &a.AvgOmega); err != nil {
			return nil, fmt.Errorf("scan index averages: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

// StageDuration holds duration stats for a stage.
type StageDuration struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Avg   float64 `json:"avg_ms"`
	P50   float64 `json:"p50_ms"`
	P95   float64 `json:"p95_ms"`
}

// QueryStageDurations returns average and percentile run durations per
// stage, in milliseconds.
func QueryStageDurations(database DB, since string) ([]StageDuration, error) {
	query := `
		SELECT stage, COALESCE(duration_ms, 0)
		FROM stage_runs
		WHERE duration_ms > 0`
	args := []interface{}{}
	if since != "" {
		query += ` AND timestamp >= ?`
		args = append(args, since)
	}

	rows, err := database.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stage durations: %w", err)
	}
	defer rows.Close()

	durations := make(map[string][]float64)
	for rows.Next() {
		var stage string
		var ms float64
		if err := rows.Scan(&stage, &ms); err != nil {
			return nil, fmt.Errorf("scan stage duration: %w", err)
		}
		durations[stage] = append(durations[stage], ms)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var results []StageDuration
	for stage, ds := range durations {
		sort.Float64s(ds)
		results = append(results, StageDuration{
			Stage: stage,
			Count: len(ds),
			Avg:   avg(ds),
			P50:   percentile(ds, 50),
			P95:   percentile(ds, 95),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Stage < results[j].Stage
	})
	return results, nil
}

func avg(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

// percentile computes the p-th percentile of a sorted slice using
// nearest-rank.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
