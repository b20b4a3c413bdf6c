package simulation

// Stage identifies one phase of the fixed gate sequence. Every run passes
// through each stage exactly once, in declaration order; algorithm identity
// labels the run but never changes the sequence.
type Stage int

const (
	// StageIdle is the only entry state; a started run leaves it immediately.
	StageIdle Stage = iota
	// StageSuperposition applies ceil(g/4) XOR-mask iterations.
	StageSuperposition
	// StageEntanglement applies ceil(g/2) controlled updates (qubit 0 -> 1).
	StageEntanglement
	// StagePhase applies ceil(g/4) phase increments.
	StagePhase
	// StageMeasure collapses the register once.
	StageMeasure
	// StageDone is terminal; only an explicit reset restarts from idle.
	StageDone
)

// String returns the stage name used in logs and traces.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSuperposition:
		return "superposition"
	case StageEntanglement:
		return "entanglement"
	case StagePhase:
		return "phase"
	case StageMeasure:
		return "measure"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// next is the explicit transition function of the stage machine. StageDone
// maps to itself; restarting requires Machine.Reset.
func (s Stage) next() Stage {
	if s >= StageDone {
		return StageDone
	}
	return s + 1
}

// Iterations returns the gate-iteration budget of the stage for a run of g
// gates. Budgets are a function of gate count alone, so registers of any
// width consume the same number of PRSG ticks.
func (s Stage) Iterations(g int) int {
	switch s {
	case StageSuperposition, StagePhase:
		return (g + 3) / 4
	case StageEntanglement:
		return (g + 1) / 2
	case StageMeasure:
		return 1
	default:
		return 0
	}
}

// Machine tracks the current stage of one run.
type Machine struct {
	stage Stage
}

// NewMachine returns a machine in the idle state.
func NewMachine() *Machine {
	return &Machine{stage: StageIdle}
}

// Stage returns the current stage.
func (m *Machine) Stage() Stage {
	return m.stage
}

// Advance moves to the next stage and returns it.
func (m *Machine) Advance() Stage {
	m.stage = m.stage.next()
	return m.stage
}

// Done reports whether the machine reached the terminal stage.
func (m *Machine) Done() bool {
	return m.stage == StageDone
}

// Reset returns the machine to idle so a new run can start.
func (m *Machine) Reset() {
	m.stage = StageIdle
}
