package simulation

import (
	"time"

	"github.com/rs/zerolog"
)

// Engine runs profiles through the fixed gate-stage sequence. It holds no
// per-run state; every run gets its own PRSG and register, which is what
// keeps concurrent runs independent and identical profiles bit-for-bit
// reproducible.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a simulation engine.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("component", "engine").Logger(),
	}
}

// Run validates the profile and executes the full stage sequence to
// completion. Runs are CPU-bound and bounded by the gate count, so there is
// no cancellation path; a caller that loses interest simply discards the
// output.
func (e *Engine) Run(profile AlgorithmProfile) (*RunOutput, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	prsg := NewPRSG()
	register := NewRegister(profile.QubitCount)
	machine := NewMachine()

	// Gate stages consume min(qubit_count, 32) PRSG bits per iteration.
	width := profile.QubitCount
	if width > 32 {
		width = 32
	}

	out := &RunOutput{Profile: profile}

	for !machine.Done() {
		stage := machine.Stage()
		iterations := stage.Iterations(profile.GateCount)

		switch stage {
		case StageIdle:
			// A started run always leaves idle immediately.

		case StageSuperposition:
			for i := 0; i < iterations; i++ {
				prsg.Next()
				register.ApplyXORMask(prsg.Peek(width))
			}

		case StageEntanglement:
			// The controlled update is a no-op for single-qubit registers,
			// but the PRSG still ticks so downstream stages see the same
			// sequence phase for a given gate count.
			for i := 0; i < iterations; i++ {
				prsg.Next()
				register.ApplyControlledUpdate(0, 1)
			}

		case StagePhase:
			for i := 0; i < iterations; i++ {
				prsg.Next()
				register.ApplyPhaseIncrement(prsg.Peek(width))
			}

		case StageMeasure:
			out.Measurement = register.Collapse(prsg)
		}

		machine.Advance()
	}

	out.Register = register.Words()
	out.CompletedAt = time.Now()

	e.log.Debug().
		Str("algorithm", profile.Name).
		Int("qubits", profile.QubitCount).
		Int("gates", profile.GateCount).
		Msg("Run completed")

	return out, nil
}
