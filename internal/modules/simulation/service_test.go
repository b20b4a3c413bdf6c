package simulation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/qforge/internal/events"
	"github.com/aristath/qforge/internal/modules/results"
	testhelpers "github.com/aristath/qforge/internal/testing"
)

func newTestRunner(t *testing.T, bus *events.Bus) (*Runner, *results.Recorder, func()) {
	t.Helper()
	db, cleanup := testhelpers.NewTestDB(t, "results")
	repo := results.NewResultRepository(db.Conn(), zerolog.Nop())
	recorder := results.NewRecorder(repo, zerolog.Nop())
	runner := NewRunner(NewEngine(zerolog.Nop()), recorder, nil, bus, zerolog.Nop())
	return runner, recorder, cleanup
}

func TestRunnerRunAlgorithmPersists(t *testing.T) {
	runner, recorder, cleanup := newTestRunner(t, nil)
	t.Cleanup(cleanup)

	result, err := runner.RunAlgorithm(context.Background(), "bell_state")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Persisted)
	assert.NotZero(t, result.Record.ID)
	assert.Equal(t, "bell_state", result.Record.AlgorithmName)
	assert.InDelta(t, 0.926, result.Record.Fidelity, 1e-9)
	assert.InDelta(t, 96.0, result.Record.DecoherenceTime, 1e-9)
	assert.InDelta(t, 55.4, result.Record.FrequencyMHz, 1e-9)
	assert.Equal(t, 42, result.Record.ResourceUnits)
	require.Len(t, result.Samples, 2)
	assert.InDelta(t, 1.0, result.Samples[0].Probability, 1e-9)

	record, samples, err := recorder.Get(result.Record.ID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Len(t, samples, 2)
	require.NotNil(t, record.Trace)
	assert.Len(t, record.Trace.Words, 2)
	assert.Len(t, record.Trace.Measurement, 2)
}

func TestRunnerRunAlgorithmUnknown(t *testing.T) {
	runner, _, cleanup := newTestRunner(t, nil)
	t.Cleanup(cleanup)

	result, err := runner.RunAlgorithm(context.Background(), "nope")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrInvalidProfile))
}

func TestRunnerRunCustomDefaultsName(t *testing.T) {
	runner, _, cleanup := newTestRunner(t, nil)
	t.Cleanup(cleanup)

	result, err := runner.RunCustom(context.Background(), "", 3, 9)
	require.NoError(t, err)
	assert.Equal(t, "custom", result.Record.AlgorithmName)
	assert.Equal(t, 3, result.Record.QubitCount)
	assert.Equal(t, 9, result.Record.GateCount)
}

func TestRunnerStorageFailureReturnsResult(t *testing.T) {
	runner, _, cleanup := newTestRunner(t, nil)
	// Closed database simulates storage loss.
	cleanup()

	result, err := runner.RunAlgorithm(context.Background(), "shor")
	require.Error(t, err)
	assert.True(t, errors.Is(err, results.ErrStorageUnavailable))

	require.NotNil(t, result)
	assert.False(t, result.Persisted)
	assert.InDelta(t, 0.806, result.Record.Fidelity, 1e-9)
	assert.Equal(t, 312, result.Record.ResourceUnits)
	assert.Len(t, result.Samples, 8)
}

func TestRunnerErrorCorrectionBatch(t *testing.T) {
	runner, recorder, cleanup := newTestRunner(t, nil)
	t.Cleanup(cleanup)

	batch, err := runner.RunErrorCorrection(context.Background())
	require.NoError(t, err)
	require.Len(t, batch, 4)

	records, err := recorder.History(10)
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestRunnerBenchmarkCapped(t *testing.T) {
	runner, _, cleanup := newTestRunner(t, nil)
	t.Cleanup(cleanup)

	batch, err := runner.RunBenchmark(context.Background(), 1000)
	require.NoError(t, err)
	assert.Len(t, batch, maxBenchmarkCount)

	for _, result := range batch {
		assert.True(t, result.Persisted)
	}
}

func TestRunnerPublishesRunCompleted(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	ch, unsubscribe := bus.Subscribe(4)
	defer unsubscribe()

	runner, _, cleanup := newTestRunner(t, bus)
	t.Cleanup(cleanup)

	result, err := runner.RunAlgorithm(context.Background(), "grover")
	require.NoError(t, err)

	select {
	case event := <-ch:
		assert.Equal(t, events.EventRunCompleted, event.Type)
		data, ok := event.Data.(events.RunCompletedData)
		require.True(t, ok)
		assert.Equal(t, result.Record.ID, data.RunID)
		assert.Equal(t, "grover", data.AlgorithmName)
		assert.True(t, data.Persisted)
	case <-time.After(time.Second):
		t.Fatal("run completion event not published")
	}
}
