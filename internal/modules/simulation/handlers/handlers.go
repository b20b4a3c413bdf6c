// Package handlers provides HTTP handlers for simulation run operations.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/qforge/internal/modules/results"
	"github.com/aristath/qforge/internal/modules/simulation"
)

// Handler handles simulation run HTTP requests
type Handler struct {
	runner   *simulation.Runner
	recorder *results.Recorder
	log      zerolog.Logger
}

// NewHandler creates a new simulation run handler
func NewHandler(runner *simulation.Runner, recorder *results.Recorder, log zerolog.Logger) *Handler {
	return &Handler{
		runner:   runner,
		recorder: recorder,
		log:      log.With().Str("handler", "runs").Logger(),
	}
}

type customRunRequest struct {
	Name       string `json:"name"`
	QubitCount int    `json:"qubit_count"`
	GateCount  int    `json:"gate_count"`
}

type benchmarkRequest struct {
	Count int `json:"count"`
}

// HandleRunAlgorithm handles POST /api/runs/algorithm/{name}
func (h *Handler) HandleRunAlgorithm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	result, err := h.runner.RunAlgorithm(r.Context(), name)
	h.respondRun(w, result, err)
}

// HandleRunCustom handles POST /api/runs/custom
func (h *Handler) HandleRunCustom(w http.ResponseWriter, r *http.Request) {
	var req customRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.runner.RunCustom(r.Context(), req.Name, req.QubitCount, req.GateCount)
	h.respondRun(w, result, err)
}

// HandleRunErrorCorrection handles POST /api/runs/error-correction
func (h *Handler) HandleRunErrorCorrection(w http.ResponseWriter, r *http.Request) {
	batch, err := h.runner.RunErrorCorrection(r.Context())
	h.respondBatch(w, batch, err)
}

// HandleRunBenchmark handles POST /api/runs/benchmark
func (h *Handler) HandleRunBenchmark(w http.ResponseWriter, r *http.Request) {
	count := 5
	if r.Body != nil {
		var req benchmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Count > 0 {
			count = req.Count
		}
	}

	batch, err := h.runner.RunBenchmark(r.Context(), count)
	h.respondBatch(w, batch, err)
}

// HandleListAlgorithms handles GET /api/runs/algorithms
func (h *Handler) HandleListAlgorithms(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"data": map[string]interface{}{
			"algorithms": simulation.AlgorithmNames(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleListRuns handles GET /api/runs
func (h *Handler) HandleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.recorder.History(limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list runs")
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"runs":  records,
			"count": len(records),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
			"limit":     limit,
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// HandleGetRun handles GET /api/runs/{id}
func (h *Handler) HandleGetRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return
	}

	record, samples, err := h.recorder.Get(id)
	if err != nil {
		h.log.Error().Err(err).Int64("run_id", id).Msg("Failed to get run")
		http.Error(w, "Failed to get run", http.StatusInternalServerError)
		return
	}
	if record == nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	data := map[string]interface{}{
		"run":     record,
		"samples": samples,
	}
	if record.Trace != nil {
		data["register"] = record.Trace
	}

	response := map[string]interface{}{
		"data": data,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	}
	h.writeJSON(w, http.StatusOK, response)
}

// respondRun maps a single run outcome to an HTTP response. A storage
// failure still returns the computed result, flagged as unpersisted.
func (h *Handler) respondRun(w http.ResponseWriter, result *simulation.RunResult, err error) {
	switch {
	case errors.Is(err, simulation.ErrInvalidProfile):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, results.ErrStorageUnavailable):
		// Fall through with the in-memory result.
	case err != nil:
		h.log.Error().Err(err).Msg("Run failed")
		http.Error(w, "Run failed", http.StatusInternalServerError)
		return
	}

	metadata := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if err != nil {
		metadata["warning"] = "storage unavailable, result not persisted"
	}

	response := map[string]interface{}{
		"data":     result,
		"metadata": metadata,
	}
	h.writeJSON(w, http.StatusOK, response)
}

func (h *Handler) respondBatch(w http.ResponseWriter, batch []*simulation.RunResult, err error) {
	switch {
	case errors.Is(err, simulation.ErrInvalidProfile):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, results.ErrStorageUnavailable):
		// Fall through with the in-memory results.
	case err != nil:
		h.log.Error().Err(err).Msg("Batch run failed")
		http.Error(w, "Batch run failed", http.StatusInternalServerError)
		return
	}

	metadata := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if err != nil {
		metadata["warning"] = "storage unavailable, results not persisted"
	}

	response := map[string]interface{}{
		"data": map[string]interface{}{
			"results": batch,
			"count":   len(batch),
		},
		"metadata": metadata,
	}
	h.writeJSON(w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
