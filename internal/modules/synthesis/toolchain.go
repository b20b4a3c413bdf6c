package synthesis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ErrToolchainFailure marks external synthesis failures. Callers log it and
// carry on; simulated metrics never depend on toolchain output.
var ErrToolchainFailure = errors.New("synthesis toolchain failure")

// ToolchainResult is the outcome of one toolchain invocation. Output is the
// captured text of the run, kept only for the log.
type ToolchainResult struct {
	JobID    string        `json:"job_id"`
	Status   string        `json:"status"`
	Output   string        `json:"output"`
	Duration time.Duration `json:"duration"`
}

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// Toolchain is the boundary to the external synthesis/place-route step.
type Toolchain interface {
	Synthesize(ctx context.Context, jobID string, circuit CircuitDoc, pins PinMap) (*ToolchainResult, error)
}

// CommandToolchain shells out to a configured synthesis command. The circuit
// and pin documents are written to a scratch directory and passed as
// arguments; whatever the command prints is captured verbatim.
type CommandToolchain struct {
	command string
	timeout time.Duration
}

// NewCommandToolchain creates a toolchain backed by an external command.
func NewCommandToolchain(command string) *CommandToolchain {
	return &CommandToolchain{
		command: command,
		timeout: 30 * time.Second,
	}
}

// Synthesize runs the external command against freshly written circuit and
// pin files. Output text is returned even on failure so it can be logged.
func (t *CommandToolchain) Synthesize(ctx context.Context, jobID string, circuit CircuitDoc, pins PinMap) (*ToolchainResult, error) {
	start := time.Now()

	dir, err := os.MkdirTemp("", "qforge_synth_"+jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create scratch dir: %v", ErrToolchainFailure, err)
	}
	defer os.RemoveAll(dir)

	circuitPath := filepath.Join(dir, "circuit.v")
	pinPath := filepath.Join(dir, "pins.pcf")
	if err := os.WriteFile(circuitPath, []byte(circuit.Source), 0o644); err != nil {
		return nil, fmt.Errorf("%w: failed to write circuit file: %v", ErrToolchainFailure, err)
	}
	if err := os.WriteFile(pinPath, []byte(pins.Source), 0o644); err != nil {
		return nil, fmt.Errorf("%w: failed to write pin file: %v", ErrToolchainFailure, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, t.command, circuitPath, pinPath)
	outputBytes, err := cmd.CombinedOutput()

	result := &ToolchainResult{
		JobID:    jobID,
		Output:   string(outputBytes),
		Duration: time.Since(start),
	}

	if err != nil {
		result.Status = StatusFailed
		return result, fmt.Errorf("%w: %s: %v", ErrToolchainFailure, t.command, err)
	}

	result.Status = StatusSucceeded
	return result, nil
}

// NullToolchain is used when no synthesis command is configured. Every job
// is reported as skipped.
type NullToolchain struct{}

// Synthesize records the job as skipped without doing any work.
func (NullToolchain) Synthesize(_ context.Context, jobID string, _ CircuitDoc, _ PinMap) (*ToolchainResult, error) {
	return &ToolchainResult{
		JobID:  jobID,
		Status: StatusSkipped,
		Output: "no synthesis toolchain configured",
	}, nil
}
