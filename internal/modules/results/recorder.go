package results

import (
	"github.com/rs/zerolog"
)

// Recorder is the write-side service over the run history. It owns the
// degraded-storage contract: when the database is unavailable the computed
// record is still returned to the caller, tagged with ErrStorageUnavailable,
// instead of being dropped.
type Recorder struct {
	repo *ResultRepository
	log  zerolog.Logger
}

// NewRecorder creates a new run recorder.
func NewRecorder(repo *ResultRepository, log zerolog.Logger) *Recorder {
	return &Recorder{
		repo: repo,
		log:  log.With().Str("service", "recorder").Logger(),
	}
}

// Record appends a run and its samples to the history. On storage failure
// the record keeps ID zero, the returned error matches ErrStorageUnavailable,
// and the caller still has the full in-memory result to report.
func (rec *Recorder) Record(record *RunRecord, samples []QubitSample) error {
	if _, err := rec.repo.CreateRun(record, samples); err != nil {
		rec.log.Error().Err(err).
			Str("algorithm", record.AlgorithmName).
			Msg("Failed to persist run, returning in-memory result only")
		return wrapStorageErr(err)
	}
	return nil
}

// History returns the most recent runs, newest first.
func (rec *Recorder) History(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return rec.repo.GetRecent(limit)
}

// Get returns one run with its samples, or nil when the id is unknown.
func (rec *Recorder) Get(id int64) (*RunRecord, []QubitSample, error) {
	record, err := rec.repo.GetByID(id)
	if err != nil || record == nil {
		return record, nil, err
	}
	samples, err := rec.repo.GetSamplesForRun(id)
	if err != nil {
		return record, nil, err
	}
	return record, samples, nil
}
