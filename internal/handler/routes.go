package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finopsmind/costmeter/internal/session"
)

// Mount registers the calculator page and the JSON API on r.
func Mount(r chi.Router, page *ForecastHandler, api *APIHandler, sessions *session.Store) {
	r.Get("/health", Health)

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)

		r.Get("/", page.Page)
		r.Post("/form", page.UpdateForm)
		r.Post("/forecast", page.Submit)
		r.Get("/forecast/export.csv", page.Export)
		r.Post("/session/reset", page.Reset)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/forecast", api.Forecast)
		r.Post("/form/fields", api.Fields)
	})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
