package di

import (
	"github.com/aristath/qforge/internal/events"
	"github.com/aristath/qforge/internal/modules/results"
	"github.com/aristath/qforge/internal/modules/simulation"
	"github.com/aristath/qforge/internal/modules/snapshot"
	"github.com/aristath/qforge/internal/modules/synthesis"
)

// InitializeServices creates all services. Requires repositories.
func (c *Container) InitializeServices() error {
	c.EventBus = events.NewBus(c.Log)
	c.Engine = simulation.NewEngine(c.Log)
	c.Recorder = results.NewRecorder(c.ResultRepo, c.Log)

	var toolchain synthesis.Toolchain = synthesis.NullToolchain{}
	if c.Config.ToolchainCommand != "" {
		toolchain = synthesis.NewCommandToolchain(c.Config.ToolchainCommand)
	}
	c.SynthesisService = synthesis.NewService(toolchain, c.ToolchainLogRepo, c.Log)

	c.Runner = simulation.NewRunner(c.Engine, c.Recorder, c.SynthesisService, c.EventBus, c.Log)
	c.SnapshotExporter = snapshot.NewExporter(c.ResultRepo, c.Log)

	return nil
}
