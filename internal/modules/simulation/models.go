// Package simulation implements the deterministic quantum circuit
// simulation engine: the pseudorandom sequence generator, the qubit
// register, and the fixed gate-stage state machine that advances a run from
// superposition through measurement.
package simulation

import (
	"errors"
	"fmt"
	"time"
)

// MaxQubitCount is the hard cap on register width enforced before any
// simulation state is created.
const MaxQubitCount = 100

// ErrInvalidProfile marks profile validation failures. No partial run is
// ever created or recorded for an invalid profile.
var ErrInvalidProfile = errors.New("invalid algorithm profile")

// AlgorithmProfile identifies one simulation run. Immutable once the run
// starts.
type AlgorithmProfile struct {
	Name       string `json:"name"`
	QubitCount int    `json:"qubit_count"`
	GateCount  int    `json:"gate_count"`
}

// Validate checks the profile bounds.
func (p AlgorithmProfile) Validate() error {
	if p.QubitCount < 1 {
		return fmt.Errorf("%w: qubit_count must be at least 1, got %d", ErrInvalidProfile, p.QubitCount)
	}
	if p.QubitCount > MaxQubitCount {
		return fmt.Errorf("%w: qubit_count %d exceeds the hard cap of %d", ErrInvalidProfile, p.QubitCount, MaxQubitCount)
	}
	if p.GateCount < 1 {
		return fmt.Errorf("%w: gate_count must be at least 1, got %d", ErrInvalidProfile, p.GateCount)
	}
	return nil
}

// RunOutput is the in-memory result of one completed run.
type RunOutput struct {
	Profile     AlgorithmProfile
	Measurement []byte   // one collapse bit per qubit
	Register    []uint32 // final qubit words after the measure stage
	CompletedAt time.Time
}
