package synthesis

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service generates the hardware documents for a circuit and drives the
// toolchain, recording each invocation in the toolchain log.
type Service struct {
	toolchain Toolchain
	repo      *ToolchainLogRepository
	log       zerolog.Logger
}

// NewService creates a synthesis service. repo may be nil when the cache
// database is unavailable; invocations then go unlogged but still run.
func NewService(toolchain Toolchain, repo *ToolchainLogRepository, log zerolog.Logger) *Service {
	return &Service{
		toolchain: toolchain,
		repo:      repo,
		log:       log.With().Str("service", "synthesis").Logger(),
	}
}

// Synthesize builds the circuit and pin documents for the profile and runs
// them through the toolchain under a fresh job id. The result is logged and
// returned; a toolchain error is reported but carries the captured output.
func (s *Service) Synthesize(ctx context.Context, name string, qubits, gates int) (*ToolchainResult, error) {
	jobID := uuid.New().String()
	circuit := BuildCircuit(name, qubits, gates)
	pins := BuildPinMap(qubits)

	result, err := s.toolchain.Synthesize(ctx, jobID, circuit, pins)
	if err != nil {
		s.log.Warn().Err(err).
			Str("job_id", jobID).
			Str("algorithm", name).
			Msg("Toolchain invocation failed")
	}

	if result != nil && s.repo != nil {
		entry := ToolchainLogEntry{
			JobID:         result.JobID,
			AlgorithmName: name,
			Status:        result.Status,
			Output:        result.Output,
		}
		if logErr := s.repo.Append(entry); logErr != nil {
			s.log.Warn().Err(logErr).Str("job_id", jobID).Msg("Failed to record toolchain log entry")
		}
	}

	return result, err
}

// Circuit returns the circuit description document without invoking the
// toolchain.
func (s *Service) Circuit(name string, qubits, gates int) CircuitDoc {
	return BuildCircuit(name, qubits, gates)
}

// Pins returns the pin-constraint document without invoking the toolchain.
func (s *Service) Pins(qubits int) PinMap {
	return BuildPinMap(qubits)
}

// RecentInvocations lists the latest toolchain log entries.
func (s *Service) RecentInvocations(limit int) ([]ToolchainLogEntry, error) {
	if s.repo == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.repo.GetRecent(limit)
}
