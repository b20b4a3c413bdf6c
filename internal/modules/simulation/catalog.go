package simulation

import (
	"fmt"
	"math/rand"
	"sort"
)

// catalog holds the built-in named algorithm profiles. The name only labels
// the run; every algorithm passes through the same stage sequence.
var catalog = map[string]AlgorithmProfile{
	"bell_state":    {Name: "bell_state", QubitCount: 2, GateCount: 4},
	"ghz_state":     {Name: "ghz_state", QubitCount: 3, GateCount: 6},
	"teleportation": {Name: "teleportation", QubitCount: 3, GateCount: 8},
	"grover":        {Name: "grover", QubitCount: 4, GateCount: 16},
	"qft":           {Name: "qft", QubitCount: 5, GateCount: 25},
	"shor":          {Name: "shor", QubitCount: 8, GateCount: 64},
}

// LookupAlgorithm resolves a named catalog profile.
func LookupAlgorithm(name string) (AlgorithmProfile, error) {
	profile, ok := catalog[name]
	if !ok {
		return AlgorithmProfile{}, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidProfile, name)
	}
	return profile, nil
}

// AlgorithmNames returns the catalog names in stable order.
func AlgorithmNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrorCorrectionBatch returns the fixed batch of error-correction code
// profiles run together by the error-correction command.
func ErrorCorrectionBatch() []AlgorithmProfile {
	return []AlgorithmProfile{
		{Name: "bit_flip_code", QubitCount: 3, GateCount: 12},
		{Name: "phase_flip_code", QubitCount: 3, GateCount: 12},
		{Name: "shor_code", QubitCount: 9, GateCount: 36},
		{Name: "steane_code", QubitCount: 7, GateCount: 28},
	}
}

// BenchmarkBatch draws count randomized profiles from the catalog. Gate
// counts are perturbed between half and double the catalog figure so a
// benchmark sweeps a range of circuit depths. Only the batch composition is
// random; each drawn profile still simulates deterministically.
func BenchmarkBatch(count int, rng *rand.Rand) []AlgorithmProfile {
	names := AlgorithmNames()
	batch := make([]AlgorithmProfile, 0, count)
	for i := 0; i < count; i++ {
		base := catalog[names[rng.Intn(len(names))]]
		minGates := base.GateCount / 2
		if minGates < 1 {
			minGates = 1
		}
		base.GateCount = minGates + rng.Intn(base.GateCount*2-minGates+1)
		batch = append(batch, base)
	}
	return batch
}
