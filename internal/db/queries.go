package db

import "fmt"

// MissionEvent represents a row in the mission_events table.
type MissionEvent struct {
	ID        int    `json:"id"`
	MissionID string `json:"mission_id"`
	Event     string `json:"event"`
	Stage     string `json:"stage,omitempty"`
	Detail    string `json:"detail,omitempty"`
	Timestamp string `json:"timestamp"`
}

// StageRun represents a row in the stage_runs table.
type StageRun struct {
	ID         int     `json:"id"`
	MissionID  string  `json:"mission_id"`
	Category   string  `json:"category,omitempty"`
	Stage      string  `json:"stage"`
	Verdict    string  `json:"verdict"`
	K          float64 `json:"k"`
	I          float64 `json:"i"`
	Omega      float64 `json:"omega"`
	DurationMs int64   `json:"duration_ms"`
	Timestamp  string  `json:"timestamp"`
}

// LogMissionEvent inserts a mission event.
func (d *DB) LogMissionEvent(missionID, event, stage, detail string) error {
	_, err := d.conn.Exec(
		`INSERT INTO mission_events (mission_id, event, stage, detail) VALUES (?, ?, ?, ?)`,
		missionID, event, stage, detail,
	)
	if err != nil {
		return fmt.Errorf("log mission event: %w", err)
	}
	return nil
}

// LogStageRun inserts a stage run with its verdict and index snapshot.
func (d *DB) LogStageRun(missionID, category, stage, verdict string, k, i, omega float64, durationMs int64) error {
	_, err := d.conn.Exec(
		`INSERT INTO stage_runs (mission_id, category, stage, verdict, k, i, omega, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		missionID, category, stage, verdict, k, i, omega, durationMs,
	)
	if err != nil {
		return fmt.Errorf("log stage run: %w", err)
	}
	return nil
}

// StageRunsForMission returns all stage runs for a mission, oldest first.
func (d *DB) StageRunsForMission(missionID string) ([]StageRun, error) {
	rows, err := d.conn.Query(
		`SELECT id, mission_id, category, stage, verdict, k, i, omega,
		        COALESCE(duration_ms, 0), timestamp
		 FROM stage_runs WHERE mission_id = ? ORDER BY id`,
		missionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query stage runs: %w", err)
	}
	defer rows.Close()

	var runs []StageRun
	for rows.Next() {
		var r StageRun
		if err := rows.Scan(&r.ID, &r.MissionID, &r.Category, &r.Stage, &r.Verdict,
			&r.K, &r.I, &r.Omega, &r.DurationMs, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan stage run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RecentEvents returns the latest events across all missions, newest
// first, capped at limit.
func (d *DB) RecentEvents(limit int) ([]MissionEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.conn.Query(
		`SELECT id, mission_id, event, COALESCE(stage, ''), COALESCE(detail, ''), timestamp
		 FROM mission_events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []MissionEvent
	for rows.Next() {
		var e MissionEvent
		if err := rows.Scan(&e.ID, &e.MissionID, &e.Event, &e.Stage, &e.Detail, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
