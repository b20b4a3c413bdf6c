package simulation

// GroundState is the canonical per-qubit reset word: high bit set as the
// computational basis indicator, low bits zeroed as the phase/noise
// accumulator.
const GroundState uint32 = 0x80000000

// Register models the qubit register as one 32-bit word per qubit. It is a
// coarse amplitude encoding, not a complex state vector: the high bit marks
// the basis state, the low 16 bits accumulate phase.
//
// A Register belongs to exactly one run and is never shared.
type Register struct {
	words []uint32
}

// NewRegister creates a register of n qubits in the ground state.
func NewRegister(n int) *Register {
	r := &Register{words: make([]uint32, n)}
	r.Reset()
	return r
}

// Size returns the number of qubits.
func (r *Register) Size() int {
	return len(r.words)
}

// Reset sets every qubit word back to the ground-state constant.
func (r *Register) Reset() {
	for i := range r.words {
		r.words[i] = GroundState
	}
}

// ApplyXORMask flips each qubit word's low bit with its slice of the mask.
// Qubit i consumes mask bit i mod 32, so registers wider than the mask reuse
// it cyclically.
func (r *Register) ApplyXORMask(mask uint32) {
	for i := range r.words {
		r.words[i] ^= (mask >> uint(i%32)) & 1
	}
}

// ApplyControlledUpdate XORs the target word with the control word. It is a
// no-op when the register holds fewer than two qubits or either index is out
// of range.
func (r *Register) ApplyControlledUpdate(control, target int) {
	if len(r.words) < 2 {
		return
	}
	if control < 0 || control >= len(r.words) || target < 0 || target >= len(r.words) {
		return
	}
	r.words[target] ^= r.words[control]
}

// ApplyPhaseIncrement adds the low 16 bits of the mask into each qubit
// word's low 16 bits with wraparound, leaving the upper half untouched.
func (r *Register) ApplyPhaseIncrement(mask uint32) {
	inc := mask & 0xFFFF
	for i, w := range r.words {
		low := (w + inc) & 0xFFFF
		r.words[i] = (w &^ 0xFFFF) | low
	}
}

// Collapse derives the measurement bit for each qubit as the XOR of a fresh
// PRSG bit with the qubit word's low bit, in ascending qubit order.
func (r *Register) Collapse(prsg *PRSG) []byte {
	bits := make([]byte, len(r.words))
	for i, w := range r.words {
		bits[i] = byte(prsg.Next() ^ (w & 1))
	}
	return bits
}

// Words returns a copy of the raw qubit words.
func (r *Register) Words() []uint32 {
	out := make([]uint32, len(r.words))
	copy(out, r.words)
	return out
}
