package results

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "github.com/aristath/qforge/internal/testing"
)

func TestRecorderRecordAndGet(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "results")
	t.Cleanup(cleanup)
	rec := NewRecorder(NewResultRepository(db.Conn(), zerolog.Nop()), zerolog.Nop())

	record := sampleRecord("bell_state", 2, 4)
	samples := []QubitSample{
		{QubitIndex: 0, AmplitudeReal: 0, AmplitudeImag: 1, Probability: 1},
		{QubitIndex: 1, AmplitudeReal: 1, AmplitudeImag: 0, Probability: 1},
	}

	require.NoError(t, rec.Record(record, samples))
	require.NotZero(t, record.ID)

	got, gotSamples, err := rec.Get(record.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bell_state", got.AlgorithmName)
	assert.Len(t, gotSamples, 2)
}

func TestRecorderStorageFailureKeepsResult(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "results")
	rec := NewRecorder(NewResultRepository(db.Conn(), zerolog.Nop()), zerolog.Nop())

	// Closing the database up front simulates an unavailable store.
	cleanup()

	record := sampleRecord("ghz_state", 3, 6)
	err := rec.Record(record, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	// The in-memory record survives for the caller to report.
	assert.Equal(t, "ghz_state", record.AlgorithmName)
	assert.Equal(t, 0.926, record.Fidelity)
}

func TestRecorderHistoryDefaultLimit(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "results")
	t.Cleanup(cleanup)
	rec := NewRecorder(NewResultRepository(db.Conn(), zerolog.Nop()), zerolog.Nop())

	for i := 0; i < 3; i++ {
		record := sampleRecord("qft", 5, 25)
		record.CreatedAt = time.Now().UTC()
		require.NoError(t, rec.Record(record, nil))
	}

	records, err := rec.History(0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRecorderGetUnknown(t *testing.T) {
	db, cleanup := testhelpers.NewTestDB(t, "results")
	t.Cleanup(cleanup)
	rec := NewRecorder(NewResultRepository(db.Conn(), zerolog.Nop()), zerolog.Nop())

	record, samples, err := rec.Get(42)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Nil(t, samples)
}
