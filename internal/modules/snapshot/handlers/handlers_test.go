package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/qforge/internal/modules/results"
	"github.com/aristath/qforge/internal/modules/snapshot"
	testhelpers "github.com/aristath/qforge/internal/testing"
)

func TestHandleGetSnapshot(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "results")
	t.Cleanup(cleanup)

	repo := results.NewResultRepository(db.Conn(), zerolog.Nop())
	_, err := repo.CreateRun(&results.RunRecord{
		AlgorithmName: "bell_state",
		QubitCount:    2,
		GateCount:     4,
		Fidelity:      0.926,
		CreatedAt:     time.Now().UTC(),
	}, []results.QubitSample{
		{QubitIndex: 0, Probability: 1},
		{QubitIndex: 1, Probability: 1},
	})
	require.NoError(t, err)

	handler := NewHandler(snapshot.NewExporter(repo, zerolog.Nop()), zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", handler.RegisterRoutes)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The body is the export document itself, no envelope.
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "quantum_results")
	assert.Contains(t, body, "quantum_states")
	assert.Contains(t, body, "metrics")
	assert.NotContains(t, body, "data")
}
