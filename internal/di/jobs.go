package di

import (
	"fmt"

	"github.com/aristath/qforge/internal/scheduler"
)

// RegisterJobs creates the scheduler and registers the background jobs.
// Requires services.
func (c *Container) RegisterJobs() error {
	c.Scheduler = scheduler.New(c.Log)

	snapshotJob := scheduler.NewSnapshotExportJob(
		c.SnapshotExporter,
		c.EventBus,
		c.Config.SnapshotPath(),
		c.Log,
	)
	if err := c.Scheduler.AddJob(c.Config.SnapshotSchedule, snapshotJob); err != nil {
		return fmt.Errorf("failed to register snapshot export job: %w", err)
	}

	checkpointJob := scheduler.NewWALCheckpointJob(c.Log, c.ResultsDB, c.CacheDB)
	if err := c.Scheduler.AddJob("@hourly", checkpointJob); err != nil {
		return fmt.Errorf("failed to register wal checkpoint job: %w", err)
	}

	return nil
}
