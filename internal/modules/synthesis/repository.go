package synthesis

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ToolchainLogEntry is one recorded toolchain invocation.
type ToolchainLogEntry struct {
	ID            int64     `json:"id"`
	JobID         string    `json:"job_id"`
	AlgorithmName string    `json:"algorithm_name"`
	Status        string    `json:"status"`
	Output        string    `json:"output"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToolchainLogRepository handles toolchain log database operations on the
// cache database. Entries are informational; losing them is acceptable.
type ToolchainLogRepository struct {
	cacheDB *sql.DB
	log     zerolog.Logger
}

// NewToolchainLogRepository creates a new toolchain log repository.
func NewToolchainLogRepository(cacheDB *sql.DB, log zerolog.Logger) *ToolchainLogRepository {
	return &ToolchainLogRepository{
		cacheDB: cacheDB,
		log:     log.With().Str("repo", "toolchain_log").Logger(),
	}
}

// Append records one invocation outcome.
func (r *ToolchainLogRepository) Append(entry ToolchainLogEntry) error {
	_, err := r.cacheDB.Exec(`
		INSERT INTO toolchain_log (job_id, algorithm_name, status, output, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		entry.JobID,
		entry.AlgorithmName,
		entry.Status,
		entry.Output,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to append toolchain log entry: %w", err)
	}
	return nil
}

// GetRecent retrieves the most recent invocations, newest first.
func (r *ToolchainLogRepository) GetRecent(limit int) ([]ToolchainLogEntry, error) {
	rows, err := r.cacheDB.Query(`
		SELECT id, job_id, algorithm_name, status, output, created_at
		FROM toolchain_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get toolchain log: %w", err)
	}
	defer rows.Close()

	var entries []ToolchainLogEntry
	for rows.Next() {
		var entry ToolchainLogEntry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.JobID, &entry.AlgorithmName, &entry.Status, &entry.Output, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan toolchain log entry: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entry.CreatedAt = t
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating toolchain log: %w", err)
	}

	return entries, nil
}
