package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/qforge/internal/modules/results"
	"github.com/aristath/qforge/internal/modules/simulation"
	testhelpers "github.com/aristath/qforge/internal/testing"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	db, cleanup := testhelpers.NewTestDB(t, "results")
	t.Cleanup(cleanup)

	repo := results.NewResultRepository(db.Conn(), zerolog.Nop())
	recorder := results.NewRecorder(repo, zerolog.Nop())
	engine := simulation.NewEngine(zerolog.Nop())
	runner := simulation.NewRunner(engine, recorder, nil, nil, zerolog.Nop())

	handler := NewHandler(runner, recorder, zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", handler.RegisterRoutes)
	return router
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleRunAlgorithm(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/runs/algorithm/bell_state", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	record := data["record"].(map[string]interface{})
	assert.Equal(t, "bell_state", record["algorithm_name"])
	assert.InDelta(t, 0.926, record["fidelity"].(float64), 1e-9)
	assert.InDelta(t, 96.0, record["decoherence_time"].(float64), 1e-9)
	assert.InDelta(t, 42.0, record["resource_units"].(float64), 1e-9)
	assert.Equal(t, true, data["persisted"])

	samples := data["samples"].([]interface{})
	assert.Len(t, samples, 2)
}

func TestHandleRunAlgorithmUnknown(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/runs/algorithm/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRunCustom(t *testing.T) {
	router := newTestRouter(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":        "my_experiment",
		"qubit_count": 4,
		"gate_count":  10,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/runs/custom", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	record := body["data"].(map[string]interface{})["record"].(map[string]interface{})
	assert.Equal(t, "my_experiment", record["algorithm_name"])
	assert.Equal(t, 4.0, record["qubit_count"])
}

func TestHandleRunCustomValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		qubits int
		gates  int
	}{
		{"zero_qubits", 0, 5},
		{"over_cap", 101, 5},
		{"zero_gates", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, _ := json.Marshal(map[string]interface{}{
				"qubit_count": tt.qubits,
				"gate_count":  tt.gates,
			})
			req := httptest.NewRequest(http.MethodPost, "/api/runs/custom", bytes.NewReader(payload))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleRunErrorCorrection(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/runs/error-correction", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 4.0, data["count"])

	names := map[string]bool{}
	for _, raw := range data["results"].([]interface{}) {
		record := raw.(map[string]interface{})["record"].(map[string]interface{})
		names[record["algorithm_name"].(string)] = true
	}
	assert.True(t, names["bit_flip_code"])
	assert.True(t, names["steane_code"])
}

func TestHandleRunBenchmark(t *testing.T) {
	router := newTestRouter(t)

	payload, _ := json.Marshal(map[string]int{"count": 3})
	req := httptest.NewRequest(http.MethodPost, "/api/runs/benchmark", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, 3.0, data["count"])
}

func TestHandleListAndGetRun(t *testing.T) {
	router := newTestRouter(t)

	for _, name := range []string{"bell_state", "ghz_state"} {
		req := httptest.NewRequest(http.MethodPost, "/api/runs/algorithm/"+name, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/runs?limit=10", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	listBody := decodeEnvelope(t, listRec)
	listData := listBody["data"].(map[string]interface{})
	require.Equal(t, 2.0, listData["count"])

	runs := listData["runs"].([]interface{})
	newest := runs[0].(map[string]interface{})
	assert.Equal(t, "ghz_state", newest["algorithm_name"])

	id := int64(newest["id"].(float64))
	getReq := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%d", id), nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	getBody := decodeEnvelope(t, getRec)
	getData := getBody["data"].(map[string]interface{})
	run := getData["run"].(map[string]interface{})
	assert.Equal(t, "ghz_state", run["algorithm_name"])
	assert.Len(t, getData["samples"].([]interface{}), 3)
	assert.NotNil(t, getData["register"])
}

func TestHandleGetRunNotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs/12345", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListAlgorithms(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs/algorithms", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	algorithms := body["data"].(map[string]interface{})["algorithms"].([]interface{})
	assert.Len(t, algorithms, 6)
}
