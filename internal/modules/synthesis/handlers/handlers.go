// Package handlers provides HTTP handlers for synthesis document operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/qforge/internal/modules/simulation"
	"github.com/aristath/qforge/internal/modules/synthesis"
)

// Handler handles synthesis HTTP requests
type Handler struct {
	service *synthesis.Service
	log     zerolog.Logger
}

// NewHandler creates a new synthesis handler
func NewHandler(service *synthesis.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "synthesis").Logger(),
	}
}

// HandleGetCircuit handles GET /api/synthesis/circuit?qubits=&gates=&name=
func (h *Handler) HandleGetCircuit(w http.ResponseWriter, r *http.Request) {
	qubits, ok := h.queryInt(w, r, "qubits")
	if !ok {
		return
	}
	gates, ok := h.queryInt(w, r, "gates")
	if !ok {
		return
	}
	if qubits < 1 || qubits > simulation.MaxQubitCount || gates < 1 {
		http.Error(w, "qubits must be in [1,100] and gates at least 1", http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "custom"
	}

	response := map[string]interface{}{
		"data": h.service.Circuit(name, qubits, gates),
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetPinMap handles GET /api/synthesis/pinmap?qubits=
func (h *Handler) HandleGetPinMap(w http.ResponseWriter, r *http.Request) {
	qubits, ok := h.queryInt(w, r, "qubits")
	if !ok {
		return
	}
	if qubits < 1 || qubits > simulation.MaxQubitCount {
		http.Error(w, "qubits must be in [1,100]", http.StatusBadRequest)
		return
	}

	response := map[string]interface{}{
		"data": h.service.Pins(qubits),
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetLog handles GET /api/synthesis/log
func (h *Handler) HandleGetLog(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.service.RecentInvocations(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get toolchain log")
		http.Error(w, "Failed to get toolchain log", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []synthesis.ToolchainLogEntry{}
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"invocations": entries,
			"count":       len(entries),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers all synthesis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/synthesis", func(r chi.Router) {
		r.Get("/circuit", h.HandleGetCircuit)
		r.Get("/pinmap", h.HandleGetPinMap)
		r.Get("/log", h.HandleGetLog)
	})
}

func (h *Handler) queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		http.Error(w, "Missing query parameter: "+key, http.StatusBadRequest)
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "Invalid query parameter: "+key, http.StatusBadRequest)
		return 0, false
	}
	return value, true
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
