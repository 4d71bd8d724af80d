package server

import (
	"encoding/json"
	"net/http"

	"github.com/gitscape/gitscape/internal/scenario"
	"github.com/gitscape/gitscape/internal/snapshot"
	"github.com/gitscape/gitscape/internal/state"
)

type Server struct {
	Sessions  *state.SessionManager
	Scenarios *scenario.Runner
	Snapshots *snapshot.Store
	Mux       *http.ServeMux
}

func NewServer(sessions *state.SessionManager, scenarios *scenario.Runner, snapshots *snapshot.Store) *Server {
	s := &Server{
		Sessions:  sessions,
		Scenarios: scenarios,
		Snapshots: snapshots,
		Mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Mux.HandleFunc("/ping", s.handlePing)
	s.Mux.HandleFunc("/api/session/init", s.handleInitSession)
	s.Mux.HandleFunc("/api/command", s.handleExecCommand)
	s.Mux.HandleFunc("/api/state", s.handleGetState)
	s.Mux.HandleFunc("/api/undo", s.handleUndo)
	s.Mux.HandleFunc("/api/redo", s.handleRedo)
	s.Mux.HandleFunc("/api/history", s.handleHistory)
	s.Mux.HandleFunc("/api/events", s.handleEvents)
	s.Mux.HandleFunc("/api/snapshot/export", s.handleSnapshotExport)
	s.Mux.HandleFunc("/api/snapshot/import", s.handleSnapshotImport)
	s.Mux.HandleFunc("/api/scenarios", s.handleListScenarios)
	s.Mux.HandleFunc("/api/scenario/start", s.handleStartScenario)
	s.Mux.HandleFunc("/api/scenario/verify", s.handleVerifyScenario)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Mux.ServeHTTP(w, r)
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "pong",
		"system":  "GitScape Backend",
	})
}

// session resolves the session id from a request field or query param,
// writing the error response itself when the lookup fails.
func (s *Server) session(w http.ResponseWriter, id string) (*state.Session, bool) {
	if id == "" {
		http.Error(w, "sessionId required", http.StatusBadRequest)
		return nil, false
	}
	sess, ok := s.Sessions.GetSession(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}
