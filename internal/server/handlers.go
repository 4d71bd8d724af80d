package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gitscape/gitscape/internal/command"
	"github.com/gitscape/gitscape/internal/state"
)

func (s *Server) handleInitSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.Sessions.CreateSession("")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "session created",
		"sessionId": sess.ID,
	})
}

type CommandRequest struct {
	SessionID string `json:"sessionId"`
	Command   string `json:"command"`
	Preview   bool   `json:"preview,omitempty"`
}

type CommandResponse struct {
	Success bool                `json:"success"`
	Output  string              `json:"output,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  []command.ExecError `json:"errors,omitempty"`
	Changes []command.Change    `json:"changes,omitempty"`
	Graph   state.GraphState    `json:"graph"`
}

func (s *Server) handleExecCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, ok := s.session(w, req.SessionID)
	if !ok {
		return
	}

	log.Printf("command received: session=%s cmd=%q preview=%t", req.SessionID, req.Command, req.Preview)

	cmd, err := command.Parse(req.Command)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cmd.Preview = req.Preview

	sess.Lock()
	res := sess.Commands.Execute(r.Context(), cmd)
	graph := state.BuildGraph(sess.Commands)
	sess.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CommandResponse{
		Success: res.Success,
		Output:  res.Output,
		Message: res.Message,
		Errors:  res.Errors,
		Changes: res.Changes,
		Graph:   graph,
	})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := s.session(w, r.URL.Query().Get("sessionId"))
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess.Graph())
}

type StepRequest struct {
	SessionID string `json:"sessionId"`
	CommandID string `json:"commandId,omitempty"`
}

type StepResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Graph   state.GraphState `json:"graph"`
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.handleStep(w, r, func(sess *state.Session, commandID string) *command.StepResult {
		return sess.Commands.Undo(commandID)
	})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.handleStep(w, r, func(sess *state.Session, commandID string) *command.StepResult {
		return sess.Commands.Redo(commandID)
	})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, step func(*state.Session, string) *command.StepResult) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, ok := s.session(w, req.SessionID)
	if !ok {
		return
	}

	sess.Lock()
	res := step(sess, req.CommandID)
	graph := state.BuildGraph(sess.Commands)
	sess.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StepResponse{
		Success: res.Success,
		Message: res.Message,
		Graph:   graph,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := s.session(w, r.URL.Query().Get("sessionId"))
	if !ok {
		return
	}

	sess.RLock()
	entries := sess.Commands.History()
	sess.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
