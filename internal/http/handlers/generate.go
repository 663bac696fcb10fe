package handlers

import (
	"encoding/json"
	"net/http"

	"studio/internal/domain"
)

type generateRequest struct {
	Tool string `json:"tool"`
}

// Generate dispatches one orchestrated generation request. The connection is
// held until the request completes, which for video spans the whole poll loop.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	tool := domain.Tool(req.Tool)
	switch tool {
	case domain.ToolImageGenerate, domain.ToolImageEdit, domain.ToolVideoGenerate, domain.ToolVideoEdit:
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unknown tool")
		return
	}

	if err := a.Session.Dispatch(r.Context(), tool); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// Enhance replaces the prompt with the first model suggestion. Best-effort:
// an empty or failed suggestion leaves the prompt unchanged.
func (a *App) Enhance(w http.ResponseWriter, r *http.Request) {
	if err := a.Session.EnhancePrompt(r.Context()); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}
