// Package results persists completed simulation runs: the append-only run
// history and the per-qubit amplitude samples belonging to each run.
package results

import (
	"errors"
	"time"
)

// ErrStorageUnavailable marks persistence failures. Callers receive it
// wrapped; the computed in-memory result is still handed back so an
// observation is never lost to a storage outage.
var ErrStorageUnavailable = errors.New("results storage unavailable")

// RegisterTrace captures the final simulated register for later inspection.
// It is serialized with msgpack into the register_state BLOB column.
type RegisterTrace struct {
	Words       []uint32 `msgpack:"words" json:"words"`
	Measurement []byte   `msgpack:"measurement" json:"measurement"`
}

// RunRecord is one completed simulation run. Records are append-only; the
// monotonically increasing ID establishes the canonical history order.
type RunRecord struct {
	ID              int64          `json:"id"`
	AlgorithmName   string         `json:"algorithm_name"`
	QubitCount      int            `json:"qubit_count"`
	GateCount       int            `json:"gate_count"`
	Fidelity        float64        `json:"fidelity"`
	DecoherenceTime float64        `json:"decoherence_time"`
	FrequencyMHz    float64        `json:"frequency_mhz"`
	ResourceUnits   int            `json:"resource_units"`
	Trace           *RegisterTrace `json:"-"`
	CreatedAt       time.Time      `json:"timestamp"`
}

// QubitSample is one per-qubit amplitude triple for a run. Samples come from
// the closed-form trigonometric distribution over qubit index, not from the
// simulated register contents; probability is always 1 by construction.
type QubitSample struct {
	RunID         int64   `json:"run_id"`
	QubitIndex    int     `json:"qubit_index"`
	AmplitudeReal float64 `json:"amplitude_real"`
	AmplitudeImag float64 `json:"amplitude_imag"`
	Probability   float64 `json:"probability"`
}
