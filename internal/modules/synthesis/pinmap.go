package synthesis

import (
	"fmt"
	"strings"
)

// pinPool is the fixed set of physical I/O pins available for measurement
// outputs. Registers wider than the pool wrap via modulo: that is documented
// behavior, not resource exhaustion.
var pinPool = []string{
	"A2", "A3", "A4", "A5",
	"B1", "B2", "B3", "B4",
	"C1", "C2", "C3", "C4",
	"D1", "D2", "D3", "D4",
}

// PinAssignment binds one qubit's measurement output to a physical pin.
type PinAssignment struct {
	QubitIndex int    `json:"qubit_index"`
	Pin        string `json:"pin"`
}

// PinMap is the pin-constraint document for a register of a given width.
type PinMap struct {
	QubitCount  int             `json:"qubit_count"`
	PoolSize    int             `json:"pool_size"`
	Assignments []PinAssignment `json:"assignments"`
	Source      string          `json:"source"`
}

// BuildPinMap assigns each qubit's measurement output a pin from the fixed
// pool, wrapping when the register is wider than the pool.
func BuildPinMap(qubits int) PinMap {
	assignments := make([]PinAssignment, 0, qubits)
	var b strings.Builder
	b.WriteString("# Auto-generated pin constraints\n")
	fmt.Fprintf(&b, "# pool=%d qubits=%d\n", len(pinPool), qubits)

	for i := 0; i < qubits; i++ {
		pin := pinPool[i%len(pinPool)]
		assignments = append(assignments, PinAssignment{QubitIndex: i, Pin: pin})
		fmt.Fprintf(&b, "set_io measure_out[%d] %s\n", i, pin)
	}

	return PinMap{
		QubitCount:  qubits,
		PoolSize:    len(pinPool),
		Assignments: assignments,
		Source:      b.String(),
	}
}
