package server

import (
	"encoding/json"
	"net/http"

	"github.com/gitscape/gitscape/internal/git"
	"github.com/gitscape/gitscape/internal/snapshot"
	"github.com/gitscape/gitscape/internal/state"
)

type SnapshotExportRequest struct {
	SessionID string `json:"sessionId"`
	// Name, when set, also persists the snapshot in the store.
	Name string `json:"name,omitempty"`
}

func (s *Server) handleSnapshotExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SnapshotExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, ok := s.session(w, req.SessionID)
	if !ok {
		return
	}

	sess.RLock()
	st := sess.Commands.State()
	sess.RUnlock()

	if req.Name != "" {
		if err := s.Snapshots.Save(req.Name, st); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot.FromState(st))
}

type SnapshotImportRequest struct {
	SessionID string `json:"sessionId"`
	// Exactly one of Name (a stored snapshot) or Snapshot (an inline
	// document) must be set.
	Name     string          `json:"name,omitempty"`
	Snapshot json.RawMessage `json:"snapshot,omitempty"`
}

func (s *Server) handleSnapshotImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SnapshotImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, ok := s.session(w, req.SessionID)
	if !ok {
		return
	}

	var (
		st  *git.State
		err error
	)
	switch {
	case req.Name != "" && len(req.Snapshot) > 0:
		http.Error(w, "give either name or snapshot, not both", http.StatusBadRequest)
		return
	case req.Name != "":
		st, err = s.Snapshots.Load(req.Name)
	case len(req.Snapshot) > 0:
		st, err = snapshot.Decode(req.Snapshot)
	default:
		http.Error(w, "name or snapshot required", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess.Lock()
	err = sess.Commands.Restore(st)
	graph := state.BuildGraph(sess.Commands)
	sess.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "imported",
		"graph":  graph,
	})
}
