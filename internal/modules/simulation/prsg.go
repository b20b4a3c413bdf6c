package simulation

// prsgSeed is the fixed non-zero seed every run starts from. Identical
// profiles therefore produce bit-identical trajectories; there is no
// inter-run state leakage because each run owns its own PRSG instance.
const prsgSeed uint32 = 0xACE1

// PRSG is a 32-bit Fibonacci linear-feedback shift register standing in for
// quantum randomness. Feedback taps sit at bits 31, 21, 1 and 0.
type PRSG struct {
	state uint32
}

// NewPRSG returns a generator seeded with the fixed run-start seed.
func NewPRSG() *PRSG {
	return &PRSG{state: prsgSeed}
}

// Next advances the register by one clock tick and returns the bit shifted
// out (0 or 1).
func (p *PRSG) Next() uint32 {
	out := p.state & 1
	feedback := ((p.state >> 31) ^ (p.state >> 21) ^ (p.state >> 1) ^ p.state) & 1
	p.state = (p.state >> 1) | (feedback << 31)
	return out
}

// Peek exposes the current low-order n bits without advancing the register.
// n is clamped to [0, 32].
func (p *PRSG) Peek(n int) uint32 {
	if n <= 0 {
		return 0
	}
	if n >= 32 {
		return p.state
	}
	return p.state & ((1 << uint(n)) - 1)
}

// State returns the raw register word. Used by tests asserting determinism.
func (p *PRSG) State() uint32 {
	return p.state
}
