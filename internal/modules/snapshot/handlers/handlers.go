// Package handlers provides HTTP handlers for snapshot export operations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/qforge/internal/modules/snapshot"
)

// Handler handles snapshot HTTP requests
type Handler struct {
	exporter *snapshot.Exporter
	log      zerolog.Logger
}

// NewHandler creates a new snapshot handler
func NewHandler(exporter *snapshot.Exporter, log zerolog.Logger) *Handler {
	return &Handler{
		exporter: exporter,
		log:      log.With().Str("handler", "snapshot").Logger(),
	}
}

// HandleGetSnapshot handles GET /api/snapshot
//
// The response body is the export document itself, not the usual
// data/metadata envelope: its top-level field names are a compatibility
// contract with the dashboard.
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.exporter.Export()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to build snapshot")
		http.Error(w, "Failed to build snapshot", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode snapshot response")
	}
}

// RegisterRoutes registers all snapshot routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/snapshot", h.HandleGetSnapshot)
}
