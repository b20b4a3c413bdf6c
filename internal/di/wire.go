package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/qforge/internal/config"
)

// Wire builds a fully initialized container in dependency order: databases,
// then repositories, then services, then jobs.
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Log:    log,
	}

	if err := c.InitializeDatabases(); err != nil {
		return nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	if err := c.InitializeRepositories(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if err := c.InitializeServices(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := c.RegisterJobs(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	return c, nil
}
