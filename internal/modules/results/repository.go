package results

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/qforge/internal/database"
)

// ResultRepository handles run history database operations.
//
// Writes are serialized through a mutex in addition to the insert
// transaction: a run and its samples must land as one unit, and run ids must
// stay strictly increasing under concurrent recording.
type ResultRepository struct {
	resultsDB *sql.DB
	mu        sync.Mutex
	log       zerolog.Logger
}

// NewResultRepository creates a new result repository.
func NewResultRepository(resultsDB *sql.DB, log zerolog.Logger) *ResultRepository {
	return &ResultRepository{
		resultsDB: resultsDB,
		log:       log.With().Str("repo", "results").Logger(),
	}
}

// CreateRun appends one run record and its samples in a single transaction
// and returns the assigned run id. Prior records are never mutated.
func (r *ResultRepository) CreateRun(record *RunRecord, samples []QubitSample) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var traceBlob []byte
	if record.Trace != nil {
		encoded, err := msgpack.Marshal(record.Trace)
		if err != nil {
			return 0, fmt.Errorf("failed to encode register trace: %w", err)
		}
		traceBlob = encoded
	}

	var runID int64
	err := database.WithTransaction(r.resultsDB, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO quantum_results
			(algorithm_name, qubit_count, gate_count, fidelity, decoherence_time,
			 frequency_mhz, resource_units, register_state, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			record.AlgorithmName,
			record.QubitCount,
			record.GateCount,
			record.Fidelity,
			record.DecoherenceTime,
			record.FrequencyMHz,
			record.ResourceUnits,
			traceBlob,
			record.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert run record: %w", err)
		}

		runID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read run id: %w", err)
		}

		for i := range samples {
			samples[i].RunID = runID
			if _, err := tx.Exec(`
				INSERT INTO quantum_states
				(run_id, qubit_index, amplitude_real, amplitude_imag, probability)
				VALUES (?, ?, ?, ?, ?)
			`,
				runID,
				samples[i].QubitIndex,
				samples[i].AmplitudeReal,
				samples[i].AmplitudeImag,
				samples[i].Probability,
			); err != nil {
				return fmt.Errorf("failed to insert qubit sample %d: %w", samples[i].QubitIndex, err)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	record.ID = runID

	r.log.Info().
		Int64("run_id", runID).
		Str("algorithm", record.AlgorithmName).
		Int("qubits", record.QubitCount).
		Int("gates", record.GateCount).
		Msg("Run recorded")

	return runID, nil
}

// GetRecent retrieves the most recent runs, newest first.
func (r *ResultRepository) GetRecent(limit int) ([]RunRecord, error) {
	rows, err := r.resultsDB.Query(`
		SELECT id, algorithm_name, qubit_count, gate_count, fidelity,
		       decoherence_time, frequency_mhz, resource_units, register_state, created_at
		FROM quantum_results
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRunRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run records: %w", err)
	}

	return records, nil
}

// GetByID retrieves one run. Returns nil without error when the id is
// unknown.
func (r *ResultRepository) GetByID(id int64) (*RunRecord, error) {
	rows, err := r.resultsDB.Query(`
		SELECT id, algorithm_name, qubit_count, gate_count, fidelity,
		       decoherence_time, frequency_mhz, resource_units, register_state, created_at
		FROM quantum_results
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get run %d: %w", id, err)
		}
		return nil, nil
	}

	record, err := scanRunRecord(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run %d: %w", id, err)
	}

	return &record, nil
}

// GetSamplesForRun retrieves a run's samples in ascending qubit order.
func (r *ResultRepository) GetSamplesForRun(runID int64) ([]QubitSample, error) {
	rows, err := r.resultsDB.Query(`
		SELECT run_id, qubit_index, amplitude_real, amplitude_imag, probability
		FROM quantum_states
		WHERE run_id = ?
		ORDER BY qubit_index ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get samples for run %d: %w", runID, err)
	}
	defer rows.Close()

	return collectSamples(rows)
}

// GetRecentSamples retrieves the most recent sample rows across runs,
// ordered by descending run id then ascending qubit index.
func (r *ResultRepository) GetRecentSamples(limit int) ([]QubitSample, error) {
	rows, err := r.resultsDB.Query(`
		SELECT run_id, qubit_index, amplitude_real, amplitude_imag, probability
		FROM quantum_states
		ORDER BY run_id DESC, qubit_index ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent samples: %w", err)
	}
	defer rows.Close()

	return collectSamples(rows)
}

// CountRuns returns the total number of recorded runs.
func (r *ResultRepository) CountRuns() (int, error) {
	var count int
	err := r.resultsDB.QueryRow("SELECT COUNT(*) FROM quantum_results").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}

// Helper functions

func scanRunRecord(rows *sql.Rows) (RunRecord, error) {
	var record RunRecord
	var createdAt string
	var traceBlob []byte

	err := rows.Scan(
		&record.ID,
		&record.AlgorithmName,
		&record.QubitCount,
		&record.GateCount,
		&record.Fidelity,
		&record.DecoherenceTime,
		&record.FrequencyMHz,
		&record.ResourceUnits,
		&traceBlob,
		&createdAt,
	)
	if err != nil {
		return record, err
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		record.CreatedAt = t
	}

	if len(traceBlob) > 0 {
		var trace RegisterTrace
		if err := msgpack.Unmarshal(traceBlob, &trace); err != nil {
			return record, fmt.Errorf("failed to decode register trace: %w", err)
		}
		record.Trace = &trace
	}

	return record, nil
}

func collectSamples(rows *sql.Rows) ([]QubitSample, error) {
	var samples []QubitSample
	for rows.Next() {
		var s QubitSample
		if err := rows.Scan(&s.RunID, &s.QubitIndex, &s.AmplitudeReal, &s.AmplitudeImag, &s.Probability); err != nil {
			return nil, fmt.Errorf("failed to scan qubit sample: %w", err)
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating qubit samples: %w", err)
	}

	return samples, nil
}

// wrapStorageErr tags database failures with the storage sentinel so
// callers can detect persistence loss with errors.Is.
func wrapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
