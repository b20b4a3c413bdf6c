package simulation

import "testing"

func TestStageSequence(t *testing.T) {
	m := NewMachine()

	want := []Stage{
		StageIdle,
		StageSuperposition,
		StageEntanglement,
		StagePhase,
		StageMeasure,
		StageDone,
	}
	for i, stage := range want {
		if m.Stage() != stage {
			t.Fatalf("step %d: stage = %s, want %s", i, m.Stage(), stage)
		}
		m.Advance()
	}

	if !m.Done() {
		t.Fatal("machine not done after full sequence")
	}

	// Done is terminal; further advances stay put.
	m.Advance()
	if m.Stage() != StageDone {
		t.Fatalf("advance past done moved to %s", m.Stage())
	}

	m.Reset()
	if m.Stage() != StageIdle {
		t.Fatalf("reset landed on %s, want idle", m.Stage())
	}
}

func TestStageIterations(t *testing.T) {
	tests := []struct {
		stage Stage
		gates int
		want  int
	}{
		{StageSuperposition, 4, 1},
		{StageSuperposition, 5, 2},
		{StageSuperposition, 64, 16},
		{StageEntanglement, 4, 2},
		{StageEntanglement, 5, 3},
		{StageEntanglement, 1, 1},
		{StagePhase, 1, 1},
		{StagePhase, 25, 7},
		{StageMeasure, 64, 1},
		{StageIdle, 64, 0},
		{StageDone, 64, 0},
	}
	for _, tt := range tests {
		if got := tt.stage.Iterations(tt.gates); got != tt.want {
			t.Errorf("%s.Iterations(%d) = %d, want %d", tt.stage, tt.gates, got, tt.want)
		}
	}
}

func TestStageString(t *testing.T) {
	if got := StageSuperposition.String(); got != "superposition" {
		t.Errorf("String() = %q", got)
	}
	if got := Stage(99).String(); got != "unknown" {
		t.Errorf("String() for invalid stage = %q", got)
	}
}
