// Package di wires the application together: databases, repositories,
// services and scheduled jobs, initialized in dependency order.
package di

import (
	"github.com/rs/zerolog"

	"github.com/aristath/qforge/internal/config"
	"github.com/aristath/qforge/internal/database"
	"github.com/aristath/qforge/internal/events"
	"github.com/aristath/qforge/internal/modules/results"
	"github.com/aristath/qforge/internal/modules/simulation"
	"github.com/aristath/qforge/internal/modules/snapshot"
	"github.com/aristath/qforge/internal/modules/synthesis"
	"github.com/aristath/qforge/internal/scheduler"
)

// Container holds all initialized application components.
type Container struct {
	Config *config.Config
	Log    zerolog.Logger

	// Databases
	ResultsDB *database.DB
	CacheDB   *database.DB

	// Repositories
	ResultRepo       *results.ResultRepository
	ToolchainLogRepo *synthesis.ToolchainLogRepository

	// Services
	EventBus         *events.Bus
	Engine           *simulation.Engine
	Recorder         *results.Recorder
	SynthesisService *synthesis.Service
	Runner           *simulation.Runner
	SnapshotExporter *snapshot.Exporter

	// Scheduler
	Scheduler *scheduler.Scheduler
}

// Close releases everything the container owns, in reverse initialization
// order.
func (c *Container) Close() {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.CacheDB != nil {
		if err := c.CacheDB.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("Failed to close cache database")
		}
	}
	if c.ResultsDB != nil {
		if err := c.ResultsDB.Close(); err != nil {
			c.Log.Warn().Err(err).Msg("Failed to close results database")
		}
	}
}
