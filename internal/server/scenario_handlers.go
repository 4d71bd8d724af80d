package server

import (
	"encoding/json"
	"net/http"

	"github.com/gitscape/gitscape/internal/scenario"
	"github.com/gitscape/gitscape/internal/state"
)

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.Scenarios.Loader.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scenarios)
}

type StartScenarioRequest struct {
	SessionID  string `json:"sessionId"`
	ScenarioID string `json:"scenarioId"`
}

type StartScenarioResponse struct {
	SessionID string             `json:"sessionId"`
	Scenario  *scenario.Scenario `json:"scenario"`
	Graph     state.GraphState   `json:"graph"`
}

func (s *Server) handleStartScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StartScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	sess, sc, err := s.Scenarios.Start(r.Context(), req.ScenarioID, req.SessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StartScenarioResponse{
		SessionID: sess.ID,
		Scenario:  sc,
		Graph:     sess.Graph(),
	})
}

type VerifyScenarioRequest struct {
	SessionID  string `json:"sessionId"`
	ScenarioID string `json:"scenarioId"`
}

func (s *Server) handleVerifyScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req VerifyScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.Scenarios.Verify(req.ScenarioID, req.SessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
