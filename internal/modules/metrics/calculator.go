// Package metrics derives quality and resource figures for a simulation run.
//
// All functions are pure closed-form calculations over the algorithm
// parameters (qubit count q, gate count g). The constants are part of the
// system's external contract: persisted history and the dashboard both
// assume these exact formulas, so they must not be tuned or clamped.
package metrics

import "math"

// RunMetrics holds the scalar metrics derived from one run's parameters.
type RunMetrics struct {
	Fidelity        float64 `json:"fidelity"`
	DecoherenceTime float64 `json:"decoherence_time"`
	FrequencyMHz    float64 `json:"frequency_mhz"`
	ResourceUnits   int     `json:"resource_units"`
}

// Amplitude is the illustrative per-qubit amplitude triple.
// Probability is real^2 + imag^2 and therefore always 1 by the trigonometric
// identity; the value is decorative, not a physical measurement probability.
type Amplitude struct {
	Real        float64
	Imag        float64
	Probability float64
}

// Fidelity estimates gate fidelity for q qubits and g gates.
//
//	fidelity = 0.95 - 0.01*q - 0.001*g
//
// The result is intentionally not clamped to [0, 1]; large circuits yield
// negative values and callers must treat those as valid output.
func Fidelity(q, g int) float64 {
	return 0.95 - 0.01*float64(q) - 0.001*float64(g)
}

// DecoherenceTime estimates the decoherence window in microseconds.
//
//	decoherence_time = 100 - 2*q
//
// Goes negative for q > 50; not clamped.
func DecoherenceTime(q int) float64 {
	return 100 - 2*float64(q)
}

// ResourceUnits estimates the abstract logic-cell count consumed on the
// reconfigurable fabric.
//
//	resource_units = 15*q + 3*g
func ResourceUnits(q, g int) int {
	return 15*q + 3*g
}

// ClockEstimate estimates the achievable clock frequency in MHz.
//
//	clock = 50 + 2.5*q + 0.1*g
func ClockEstimate(q, g int) float64 {
	return 50 + 2.5*float64(q) + 0.1*float64(g)
}

// Compute evaluates all scalar metrics for one (q, g) pair.
func Compute(q, g int) RunMetrics {
	return RunMetrics{
		Fidelity:        Fidelity(q, g),
		DecoherenceTime: DecoherenceTime(q),
		FrequencyMHz:    ClockEstimate(q, g),
		ResourceUnits:   ResourceUnits(q, g),
	}
}

// AmplitudeAt returns the amplitude triple for qubit index i of a q-qubit
// register:
//
//	real = sin(i*pi/q), imag = cos(i*pi/q), probability = real^2 + imag^2
//
// The samples are derived from qubit position only, never from the simulated
// register contents.
func AmplitudeAt(i, q int) Amplitude {
	theta := float64(i) * math.Pi / float64(q)
	re := math.Sin(theta)
	im := math.Cos(theta)
	return Amplitude{
		Real:        re,
		Imag:        im,
		Probability: re*re + im*im,
	}
}

// AmplitudeSamples returns the full set of q amplitude triples for a run.
func AmplitudeSamples(q int) []Amplitude {
	samples := make([]Amplitude, q)
	for i := 0; i < q; i++ {
		samples[i] = AmplitudeAt(i, q)
	}
	return samples
}
