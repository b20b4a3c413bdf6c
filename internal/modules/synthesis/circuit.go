// Package synthesis generates the hardware-facing documents for a circuit
// (a Verilog-style description and a pin-constraint map) and drives the
// external synthesis toolchain. The toolchain is an opaque boundary: its
// output is captured as text for the log and never parsed, and its failure
// never blocks the simulated metrics from being recorded.
package synthesis

import (
	"fmt"
	"strings"
)

// CircuitDoc is the generated circuit description handed to the toolchain.
type CircuitDoc struct {
	Name       string `json:"name"`
	QubitCount int    `json:"qubit_count"`
	GateCount  int    `json:"gate_count"`
	Source     string `json:"source"`
}

// BuildCircuit renders a Verilog-style description of the circuit. The
// document is structural only: one register line per qubit and a gate budget
// per stage, enough for the toolchain to size the design.
func BuildCircuit(name string, qubits, gates int) CircuitDoc {
	moduleName := sanitizeIdentifier(name)
	if moduleName == "" {
		moduleName = "circuit"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Auto-generated circuit description: %s\n", name)
	fmt.Fprintf(&b, "// qubits=%d gates=%d\n", qubits, gates)
	fmt.Fprintf(&b, "module %s_qsim (\n", moduleName)
	b.WriteString("    input  wire        clk,\n")
	b.WriteString("    input  wire        rst_n,\n")
	b.WriteString("    input  wire        prsg_bit,\n")
	fmt.Fprintf(&b, "    output wire [%d:0] measure_out\n", qubits-1)
	b.WriteString(");\n\n")

	for i := 0; i < qubits; i++ {
		fmt.Fprintf(&b, "    reg [31:0] qubit_%d; // state word, ground 32'h80000000\n", i)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "    localparam SUPERPOSITION_ITERS = %d;\n", (gates+3)/4)
	fmt.Fprintf(&b, "    localparam ENTANGLEMENT_ITERS  = %d;\n", (gates+1)/2)
	fmt.Fprintf(&b, "    localparam PHASE_ITERS         = %d;\n", (gates+3)/4)
	b.WriteString("\n")

	for i := 0; i < qubits; i++ {
		fmt.Fprintf(&b, "    assign measure_out[%d] = qubit_%d[0] ^ prsg_bit;\n", i, i)
	}

	b.WriteString("\nendmodule\n")

	return CircuitDoc{
		Name:       name,
		QubitCount: qubits,
		GateCount:  gates,
		Source:     b.String(),
	}
}

// sanitizeIdentifier reduces an algorithm name to a legal HDL identifier.
func sanitizeIdentifier(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '-':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
