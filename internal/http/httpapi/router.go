package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studio/internal/http/handlers"
	"studio/internal/infra"
	"studio/internal/middleware"
)

// NewRouter assembles the presentation shell's routes and middleware chain.
func NewRouter(app *handlers.App, logger infra.Logger, corsOrigins []string) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimiddleware.RealIP, chimiddleware.Recoverer)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/session", func(r chi.Router) {
		r.Get("/", app.GetSession)
		r.Post("/", app.UpdateSession)
	})

	r.Post("/v1/generate", app.Generate)
	r.Post("/v1/enhance", app.Enhance)

	r.Route("/v1/history", func(r chi.Router) {
		r.Get("/", app.History)
		r.Get("/archive", app.HistoryArchive)
		r.Post("/{id}/select", app.SelectHistory)
	})

	r.Route("/v1/artifact", func(r chi.Router) {
		r.Get("/", app.CurrentArtifact)
		r.Post("/upload", app.Upload)
		r.Post("/export", app.Export)
	})

	r.Route("/v1/credential", func(r chi.Router) {
		r.Post("/select", app.SelectCredential)
		r.Post("/dismiss", app.DismissCredential)
	})

	return r
}
