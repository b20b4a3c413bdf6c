package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all simulation run routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/runs", func(r chi.Router) {
		r.Get("/", h.HandleListRuns)
		r.Get("/algorithms", h.HandleListAlgorithms)
		r.Get("/{id:[0-9]+}", h.HandleGetRun)
		r.Post("/algorithm/{name}", h.HandleRunAlgorithm)
		r.Post("/custom", h.HandleRunCustom)
		r.Post("/error-correction", h.HandleRunErrorCorrection)
		r.Post("/benchmark", h.HandleRunBenchmark)
	})
}
