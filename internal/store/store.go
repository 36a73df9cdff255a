// Package store persists missions and their stage results as JSON
// documents on disk. Documents are small and single-writer, so plain
// atomic file writes are sufficient.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Ohseho81/autus-engine/internal/workflow"
)

// Store manages mission state on disk.
type Store struct {
	baseDir string // defaults to ~/.autus/missions
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultStore returns a Store at ~/.autus/missions, creating the
// directory if needed.
func DefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, ".autus", "missions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &Store{baseDir: dir}, nil
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

func (s *Store) missionDir(id string) string {
	return filepath.Join(s.baseDir, id)
}

func (s *Store) missionPath(id string) string {
	return filepath.Join(s.missionDir(id), "mission.json")
}

func (s *Store) stageDir(id, stage string) string {
	return filepath.Join(s.missionDir(id), "stages", stage)
}

// Create persists a new mission on disk.
func (s *Store) Create(m *workflow.Mission) error {
	dir := s.missionDir(m.ID)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("mission %s already exists", m.ID)
	}
	if err := os.MkdirAll(filepath.Join(dir, "stages"), 0o755); err != nil {
		return fmt.Errorf("mkdir stages: %w", err)
	}
	return WriteJSON(s.missionPath(m.ID), m)
}

// Get reads the mission state for an id.
func (s *Store) Get(id string) (*workflow.Mission, error) {
	var m workflow.Mission
	if err := ReadJSON(s.missionPath(id), &m); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("mission %s not found", id)
		}
		return nil, err
	}
	return &m, nil
}

// Save writes the mission state back to disk.
func (s *Store) Save(m *workflow.Mission) error {
	return WriteJSON(s.missionPath(m.ID), m)
}

// Update performs an atomic read-modify-write of the mission state.
func (s *Store) Update(id string, fn func(*workflow.Mission)) error {
	m, err := s.Get(id)
	if err != nil {
		return err
	}
	fn(m)
	m.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return WriteJSON(s.missionPath(id), m)
}

// List returns all missions, optionally filtered by status. Pass "" for
// statusFilter to return all.
func (s *Store) List(statusFilter workflow.MissionStatus) ([]workflow.Mission, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read dir %s: %w", s.baseDir, err)
	}

	var missions []workflow.Mission
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m, err := s.Get(entry.Name())
		if err != nil {
			continue // skip broken entries
		}
		if statusFilter == "" || m.Status == statusFilter {
			missions = append(missions, *m)
		}
	}

	sort.Slice(missions, func(i, j int) bool {
		if missions[i].CreatedAt != missions[j].CreatedAt {
			return missions[i].CreatedAt < missions[j].CreatedAt
		}
		return missions[i].ID < missions[j].ID
	})
	return missions, nil
}

// Delete removes all data for a mission.
func (s *Store) Delete(id string) error {
	dir := s.missionDir(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("mission %s not found", id)
	}
	return os.RemoveAll(dir)
}

// SaveStageResult writes a stage's result JSON under the mission's stage
// directory.
func (s *Store) SaveStageResult(id, stage string, v interface{}) error {
	dir := s.stageDir(id, stage)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir stage dir: %w", err)
	}
	return WriteJSON(filepath.Join(dir, "result.json"), v)
}

// GetStageResult reads a stage's result JSON into v.
func (s *Store) GetStageResult(id, stage string, v interface{}) error {
	return ReadJSON(filepath.Join(s.stageDir(id, stage), "result.json"), v)
}
