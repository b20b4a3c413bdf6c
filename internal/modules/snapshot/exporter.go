// Package snapshot builds the bounded, read-only aggregate view of the run
// history that the dashboard consumes. A snapshot is recomputed on demand
// from the store; nothing is persisted incrementally.
package snapshot

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/qforge/internal/modules/results"
)

const (
	// maxRuns bounds the run records included in a snapshot.
	maxRuns = 50
	// maxSamples bounds the qubit sample rows included in a snapshot.
	maxSamples = 100
	// advantageCap caps the estimated quantum advantage figure.
	advantageCap = 1_000_000
)

// AggregateMetrics summarizes the runs included in a snapshot.
type AggregateMetrics struct {
	AverageFidelity  float64 `json:"average_fidelity"`
	MaxQubits        int     `json:"max_qubits"`
	TotalGates       int     `json:"total_gates"`
	QuantumAdvantage float64 `json:"quantum_advantage"`
	RunCount         int     `json:"run_count"`
}

// Snapshot is the export document. The three top-level field names are a
// compatibility contract with the dashboard and must not change.
type Snapshot struct {
	QuantumResults []results.RunRecord   `json:"quantum_results"`
	QuantumStates  []results.QubitSample `json:"quantum_states"`
	Metrics        AggregateMetrics      `json:"metrics"`
}

// Exporter builds snapshots from the run history.
type Exporter struct {
	repo *results.ResultRepository
	log  zerolog.Logger
}

// NewExporter creates a snapshot exporter.
func NewExporter(repo *results.ResultRepository, log zerolog.Logger) *Exporter {
	return &Exporter{
		repo: repo,
		log:  log.With().Str("service", "snapshot").Logger(),
	}
}

// Export reads at most the 50 most recent runs and 100 most recent qubit
// samples and computes the aggregate metrics over the included runs. An
// empty store yields empty lists and zero aggregates, not an error.
func (e *Exporter) Export() (*Snapshot, error) {
	records, err := e.repo.GetRecent(maxRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to read run history for snapshot: %w", err)
	}

	samples, err := e.repo.GetRecentSamples(maxSamples)
	if err != nil {
		return nil, fmt.Errorf("failed to read qubit samples for snapshot: %w", err)
	}

	snapshot := &Snapshot{
		QuantumResults: records,
		QuantumStates:  samples,
		Metrics:        aggregate(records),
	}
	if snapshot.QuantumResults == nil {
		snapshot.QuantumResults = []results.RunRecord{}
	}
	if snapshot.QuantumStates == nil {
		snapshot.QuantumStates = []results.QubitSample{}
	}

	return snapshot, nil
}

// WriteFile exports a snapshot and writes it as JSON to path, creating the
// parent directory if needed. The write goes through a temp file and rename
// so the dashboard never reads a partial document.
func (e *Exporter) WriteFile(path string) (*Snapshot, error) {
	snapshot, err := e.Export()
	if err != nil {
		return nil, err
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot_*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	e.log.Debug().
		Str("path", path).
		Int("runs", len(snapshot.QuantumResults)).
		Int("samples", len(snapshot.QuantumStates)).
		Msg("Snapshot written")

	return snapshot, nil
}

func aggregate(records []results.RunRecord) AggregateMetrics {
	if len(records) == 0 {
		return AggregateMetrics{}
	}

	fidelities := make([]float64, len(records))
	maxQubits := 0
	totalGates := 0
	for i, record := range records {
		fidelities[i] = record.Fidelity
		if record.QubitCount > maxQubits {
			maxQubits = record.QubitCount
		}
		totalGates += record.GateCount
	}

	advantage := math.Exp2(float64(maxQubits))
	if advantage > advantageCap {
		advantage = advantageCap
	}

	return AggregateMetrics{
		AverageFidelity:  stat.Mean(fidelities, nil),
		MaxQubits:        maxQubits,
		TotalGates:       totalGates,
		QuantumAdvantage: advantage,
		RunCount:         len(records),
	}
}
