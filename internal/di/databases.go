package di

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aristath/qforge/internal/database"
)

// InitializeDatabases opens and migrates the two databases. The run history
// uses the archive profile (append-only, durability over speed); the
// toolchain log uses the cache profile (rebuildable, speed over durability).
func (c *Container) InitializeDatabases() error {
	if err := os.MkdirAll(c.Config.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	resultsDB, err := database.New(database.Config{
		Path:    filepath.Join(c.Config.DataDir, "results.db"),
		Profile: database.ProfileArchive,
		Name:    "results",
	})
	if err != nil {
		return fmt.Errorf("failed to open results database: %w", err)
	}
	if err := resultsDB.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate results database: %w", err)
	}
	c.ResultsDB = resultsDB

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(c.Config.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := cacheDB.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate cache database: %w", err)
	}
	c.CacheDB = cacheDB

	c.Log.Info().Str("data_dir", c.Config.DataDir).Msg("Databases initialized")
	return nil
}
