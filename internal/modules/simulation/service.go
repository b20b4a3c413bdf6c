package simulation

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/qforge/internal/events"
	"github.com/aristath/qforge/internal/modules/metrics"
	"github.com/aristath/qforge/internal/modules/results"
	"github.com/aristath/qforge/internal/modules/synthesis"
)

// maxBenchmarkCount caps a single benchmark batch.
const maxBenchmarkCount = 32

// RunResult is one completed and scored run as returned to callers.
// Persisted is false when storage was unavailable; the in-memory record and
// samples are complete either way.
type RunResult struct {
	Record    *results.RunRecord    `json:"record"`
	Samples   []results.QubitSample `json:"samples"`
	Persisted bool                  `json:"persisted"`
}

// Runner orchestrates a full run: simulate, score, synthesize, record,
// publish. It is safe for concurrent use; each run owns its own simulation
// state and the recorder serializes writes.
type Runner struct {
	engine   *Engine
	recorder *results.Recorder
	synth    *synthesis.Service
	bus      *events.Bus
	log      zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRunner creates a run orchestrator. synth and bus may be nil; synthesis
// and event publication are then skipped.
func NewRunner(engine *Engine, recorder *results.Recorder, synth *synthesis.Service, bus *events.Bus, log zerolog.Logger) *Runner {
	return &Runner{
		engine:   engine,
		recorder: recorder,
		synth:    synth,
		bus:      bus,
		log:      log.With().Str("service", "runner").Logger(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RunProfile executes one profile end to end. A toolchain failure is logged
// and never blocks recording. A storage failure is returned to the caller
// together with the complete in-memory result.
func (r *Runner) RunProfile(ctx context.Context, profile AlgorithmProfile) (*RunResult, error) {
	out, err := r.engine.Run(profile)
	if err != nil {
		return nil, err
	}

	runMetrics := metrics.Compute(profile.QubitCount, profile.GateCount)
	amplitudes := metrics.AmplitudeSamples(profile.QubitCount)

	// The simulated metrics come from closed-form formulas, so the
	// synthesis outcome has no bearing on what gets recorded.
	if r.synth != nil {
		if _, synthErr := r.synth.Synthesize(ctx, profile.Name, profile.QubitCount, profile.GateCount); synthErr != nil {
			r.log.Warn().Err(synthErr).
				Str("algorithm", profile.Name).
				Msg("Synthesis failed, recording simulated metrics anyway")
		}
	}

	record := &results.RunRecord{
		AlgorithmName:   profile.Name,
		QubitCount:      profile.QubitCount,
		GateCount:       profile.GateCount,
		Fidelity:        runMetrics.Fidelity,
		DecoherenceTime: runMetrics.DecoherenceTime,
		FrequencyMHz:    runMetrics.FrequencyMHz,
		ResourceUnits:   runMetrics.ResourceUnits,
		Trace: &results.RegisterTrace{
			Words:       out.Register,
			Measurement: out.Measurement,
		},
		CreatedAt: out.CompletedAt.UTC(),
	}

	samples := make([]results.QubitSample, 0, len(amplitudes))
	for i, amp := range amplitudes {
		samples = append(samples, results.QubitSample{
			QubitIndex:    i,
			AmplitudeReal: amp.Real,
			AmplitudeImag: amp.Imag,
			Probability:   amp.Probability,
		})
	}

	result := &RunResult{Record: record, Samples: samples, Persisted: true}

	recordErr := r.recorder.Record(record, samples)
	if recordErr != nil {
		result.Persisted = false
	}

	if r.bus != nil {
		r.bus.Publish(events.EventRunCompleted, events.RunCompletedData{
			RunID:         record.ID,
			AlgorithmName: record.AlgorithmName,
			QubitCount:    record.QubitCount,
			GateCount:     record.GateCount,
			Fidelity:      record.Fidelity,
			Persisted:     result.Persisted,
		})
	}

	return result, recordErr
}

// RunAlgorithm runs a named catalog profile.
func (r *Runner) RunAlgorithm(ctx context.Context, name string) (*RunResult, error) {
	profile, err := LookupAlgorithm(name)
	if err != nil {
		return nil, err
	}
	return r.RunProfile(ctx, profile)
}

// RunCustom runs a caller-specified profile. An empty name is labeled
// "custom".
func (r *Runner) RunCustom(ctx context.Context, name string, qubits, gates int) (*RunResult, error) {
	if name == "" {
		name = "custom"
	}
	return r.RunProfile(ctx, AlgorithmProfile{Name: name, QubitCount: qubits, GateCount: gates})
}

// RunErrorCorrection runs the fixed error-correction batch. The batch stops
// at the first engine error; a storage failure on one run does not stop the
// rest, and the first such failure is reported after the batch completes.
func (r *Runner) RunErrorCorrection(ctx context.Context) ([]*RunResult, error) {
	return r.runBatch(ctx, ErrorCorrectionBatch())
}

// RunBenchmark runs count randomized catalog profiles, capped at
// maxBenchmarkCount.
func (r *Runner) RunBenchmark(ctx context.Context, count int) ([]*RunResult, error) {
	if count < 1 {
		count = 1
	}
	if count > maxBenchmarkCount {
		count = maxBenchmarkCount
	}

	r.rngMu.Lock()
	batch := BenchmarkBatch(count, r.rng)
	r.rngMu.Unlock()

	return r.runBatch(ctx, batch)
}

func (r *Runner) runBatch(ctx context.Context, profiles []AlgorithmProfile) ([]*RunResult, error) {
	batchResults := make([]*RunResult, 0, len(profiles))
	var storageErr error

	for _, profile := range profiles {
		result, err := r.RunProfile(ctx, profile)
		if err != nil && !errors.Is(err, results.ErrStorageUnavailable) {
			return batchResults, err
		}
		if err != nil && storageErr == nil {
			storageErr = err
		}
		batchResults = append(batchResults, result)
	}

	return batchResults, storageErr
}
