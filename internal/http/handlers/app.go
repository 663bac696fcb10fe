// Package handlers is the HTTP presentation shell: thin adapters that render
// session state and invoke orchestrator operations. No generation logic lives
// here.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studio/internal/domain"
	"studio/internal/infra"
	"studio/internal/session"
)

// App bundles the handlers' dependencies.
type App struct {
	Session *session.Session
	Logger  infra.Logger
}

// NewApp constructs the handler container.
func NewApp(sess *session.Session, logger infra.Logger) *App {
	return &App{Session: sess, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}

// fail maps a domain error onto the wire.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBusy):
		a.error(w, http.StatusConflict, "busy", "another request is in flight")
	case errors.Is(err, domain.ErrPreconditionFailed):
		a.error(w, http.StatusUnprocessableEntity, "precondition_failed", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrCredentialRequired):
		a.error(w, http.StatusPreconditionRequired, "credential_required", "select an API key to generate video")
	case errors.Is(err, domain.ErrCredentialInvalid):
		a.error(w, http.StatusPreconditionRequired, "credential_invalid", "the selected API key was rejected; select another")
	case errors.Is(err, domain.ErrGenerationEmpty):
		a.error(w, http.StatusBadGateway, "generation_empty", "the service returned no content")
	default:
		a.error(w, http.StatusBadGateway, "provider_failure", "generation failed")
	}
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
