package simulation

import (
	"errors"
	"math/rand"
	"testing"
)

func TestLookupAlgorithm(t *testing.T) {
	tests := []struct {
		name   string
		qubits int
		gates  int
	}{
		{"bell_state", 2, 4},
		{"ghz_state", 3, 6},
		{"teleportation", 3, 8},
		{"grover", 4, 16},
		{"qft", 5, 25},
		{"shor", 8, 64},
	}
	for _, tt := range tests {
		profile, err := LookupAlgorithm(tt.name)
		if err != nil {
			t.Fatalf("LookupAlgorithm(%q) failed: %v", tt.name, err)
		}
		if profile.QubitCount != tt.qubits || profile.GateCount != tt.gates {
			t.Errorf("%s = %d qubits / %d gates, want %d / %d",
				tt.name, profile.QubitCount, profile.GateCount, tt.qubits, tt.gates)
		}
	}
}

func TestLookupAlgorithmUnknown(t *testing.T) {
	_, err := LookupAlgorithm("deutsch_jozsa")
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("err = %v, want ErrInvalidProfile", err)
	}
}

func TestAlgorithmNamesSorted(t *testing.T) {
	names := AlgorithmNames()
	if len(names) != 6 {
		t.Fatalf("got %d names, want 6", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestErrorCorrectionBatch(t *testing.T) {
	batch := ErrorCorrectionBatch()
	if len(batch) != 4 {
		t.Fatalf("batch size = %d, want 4", len(batch))
	}

	want := map[string][2]int{
		"bit_flip_code":   {3, 12},
		"phase_flip_code": {3, 12},
		"shor_code":       {9, 36},
		"steane_code":     {7, 28},
	}
	for _, profile := range batch {
		dims, ok := want[profile.Name]
		if !ok {
			t.Errorf("unexpected profile %q", profile.Name)
			continue
		}
		if profile.QubitCount != dims[0] || profile.GateCount != dims[1] {
			t.Errorf("%s = %d/%d, want %d/%d",
				profile.Name, profile.QubitCount, profile.GateCount, dims[0], dims[1])
		}
		if err := profile.Validate(); err != nil {
			t.Errorf("%s does not validate: %v", profile.Name, err)
		}
	}
}

func TestBenchmarkBatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	batch := BenchmarkBatch(20, rng)
	if len(batch) != 20 {
		t.Fatalf("batch size = %d, want 20", len(batch))
	}
	for i, profile := range batch {
		if err := profile.Validate(); err != nil {
			t.Errorf("profile %d does not validate: %v", i, err)
		}
		base, err := LookupAlgorithm(profile.Name)
		if err != nil {
			t.Fatalf("profile %d has non-catalog name %q", i, profile.Name)
		}
		if profile.GateCount < base.GateCount/2 || profile.GateCount > base.GateCount*2 {
			t.Errorf("profile %d gate count %d outside [%d, %d]",
				i, profile.GateCount, base.GateCount/2, base.GateCount*2)
		}
	}
}
