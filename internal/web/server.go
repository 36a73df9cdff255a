// Package web serves a read-only JSON API over the mission store and the
// stage-run event log.
package web

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Ohseho81/autus-engine/internal/db"
	"github.com/Ohseho81/autus-engine/internal/store"
)

// Server is the read-only status server.
type Server struct {
	store *store.Store
	db    *db.DB
	port  int
}

// NewServer creates a Server.
func NewServer(st *store.Store, database *db.DB, port int) *Server {
	return &Server{store: st, db: database, port: port}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/missions", s.handleMissions)
	mux.HandleFunc("GET /api/missions/{id}", s.handleMission)
	mux.HandleFunc("GET /api/events", s.handleEvents)
	mux.HandleFunc("GET /api/analytics/verdicts", s.handleVerdicts)
	mux.HandleFunc("GET /api/analytics/indices", s.handleIndices)
	mux.HandleFunc("GET /api/analytics/durations", s.handleDurations)
	mux.HandleFunc("GET /api/analytics/categories", s.handleCategories)
	return mux
}

// Start runs the server until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	log.Printf("autus status server listening on http://%s", addr)
	return srv.ListenAndServe()
}
