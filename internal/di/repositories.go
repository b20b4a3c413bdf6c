package di

import (
	"github.com/aristath/qforge/internal/modules/results"
	"github.com/aristath/qforge/internal/modules/synthesis"
)

// InitializeRepositories creates all repositories. Requires databases.
func (c *Container) InitializeRepositories() error {
	c.ResultRepo = results.NewResultRepository(c.ResultsDB.Conn(), c.Log)
	c.ToolchainLogRepo = synthesis.NewToolchainLogRepository(c.CacheDB.Conn(), c.Log)
	return nil
}
