package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ohseho81/autus-engine/internal/analytics"
	"github.com/Ohseho81/autus-engine/internal/db"
	"github.com/Ohseho81/autus-engine/internal/workflow"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	status := workflow.MissionStatus(r.URL.Query().Get("status"))
	missions, err := s.store.List(status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if missions == nil {
		missions = []workflow.Mission{}
	}
	writeJSON(w, http.StatusOK, missions)
}

// missionDetail is the mission plus its stage run history.
type missionDetail struct {
	Mission *workflow.Mission `json:"mission"`
	Runs    []db.StageRun     `json:"runs"`
}

func (s *Server) handleMission(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	m, err := s.store.Get(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	detail := missionDetail{Mission: m}
	if s.db != nil {
		runs, err := s.db.StageRunsForMission(id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		detail.Runs = runs
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := s.db.RecentEvents(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []db.MissionEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleVerdicts(w http.ResponseWriter, r *http.Request) {
	since := r.URL.Query().Get("since")
	counts, err := analytics.QueryVerdictDistribution(s.db, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Server) handleIndices(w http.ResponseWriter, r *http.Request) {
	since := r.URL.Query().Get("since")
	avgs, err := analytics.QueryIndexAverages(s.db, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, avgs)
}

func (s *Server) handleDurations(w http.ResponseWriter, r *http.Request) {
	since := r.URL.Query().Get("since")
	durations, err := analytics.QueryStageDurations(s.db, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, durations)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	since := r.URL.Query().Get("since")
	rates, err := analytics.QueryEliminationByCategory(s.db, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rates)
}
