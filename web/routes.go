package web

import (
	"taxform/web/api"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server, app *App) {
	h := formHandlers{app: app}

	// Page and fragment routes - HTML responses
	s.Get("/", h.page)
	s.Post("/form/events", h.event)

	s.Get("/health", api.Health(app.Started, app.Store.Count))

	// API v1 routes - JSON responses
	s.Get("/api/v1/countries", api.ListCountries)
	s.Post("/api/v1/validate", api.ValidateFields)
	s.Post("/api/v1/submissions", api.ReceiveSubmission)
}
