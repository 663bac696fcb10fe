package handlers

import (
	"encoding/json"
	"net/http"

	"studio/internal/domain"
)

// GetSession returns the current session snapshot for rendering.
func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

type updateSessionRequest struct {
	Prompt         *string `json:"prompt,omitempty"`
	NegativePrompt *string `json:"negative_prompt,omitempty"`
	AspectRatio    *string `json:"aspect_ratio,omitempty"`
	StylePreset    *string `json:"style_preset,omitempty"`
	View           *string `json:"view,omitempty"`
}

// UpdateSession applies user input (prompt text, settings, view switches).
func (a *App) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var req updateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Prompt != nil {
		a.Session.SetPrompt(*req.Prompt)
	}
	if req.NegativePrompt != nil {
		a.Session.SetNegativePrompt(*req.NegativePrompt)
	}
	if req.AspectRatio != nil {
		a.Session.SetAspectRatio(*req.AspectRatio)
	}
	if req.StylePreset != nil {
		a.Session.SetStylePreset(*req.StylePreset)
	}
	if req.View != nil {
		a.Session.SetView(domain.View(*req.View))
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// SelectCredential drives the host's key-selection flow.
func (a *App) SelectCredential(w http.ResponseWriter, r *http.Request) {
	if err := a.Session.ConfirmCredential(r.Context()); err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, a.Session.Snapshot())
}

// DismissCredential closes the selection prompt without selecting a key.
func (a *App) DismissCredential(w http.ResponseWriter, r *http.Request) {
	a.Session.DismissCredentialPrompt()
	a.json(w, http.StatusOK, a.Session.Snapshot())
}
