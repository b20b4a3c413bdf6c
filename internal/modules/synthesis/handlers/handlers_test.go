package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/qforge/internal/modules/synthesis"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	service := synthesis.NewService(synthesis.NullToolchain{}, nil, zerolog.Nop())
	handler := NewHandler(service, zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", handler.RegisterRoutes)
	return router
}

func TestHandleGetCircuit(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/synthesis/circuit?qubits=2&gates=4&name=bell_state", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "bell_state", data["name"])
	assert.Contains(t, data["source"].(string), "module bell_state_qsim")
}

func TestHandleGetCircuitValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []string{
		"/api/synthesis/circuit?gates=4",
		"/api/synthesis/circuit?qubits=2",
		"/api/synthesis/circuit?qubits=abc&gates=4",
		"/api/synthesis/circuit?qubits=0&gates=4",
		"/api/synthesis/circuit?qubits=101&gates=4",
		"/api/synthesis/circuit?qubits=2&gates=0",
	}
	for _, url := range tests {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

func TestHandleGetPinMap(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/synthesis/pinmap?qubits=20", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assignments := data["assignments"].([]interface{})
	assert.Len(t, assignments, 20)
}

func TestHandleGetLogEmpty(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/synthesis/log", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 0.0, data["count"])
}
