package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/aristath/qforge/internal/events"
	"github.com/aristath/qforge/internal/modules/snapshot"
)

// SnapshotExportJob periodically writes the dashboard snapshot document to
// disk and announces it on the event bus.
type SnapshotExportJob struct {
	exporter *snapshot.Exporter
	bus      *events.Bus
	path     string
	log      zerolog.Logger
}

// NewSnapshotExportJob creates the snapshot export job. bus may be nil.
func NewSnapshotExportJob(exporter *snapshot.Exporter, bus *events.Bus, path string, log zerolog.Logger) *SnapshotExportJob {
	return &SnapshotExportJob{
		exporter: exporter,
		bus:      bus,
		path:     path,
		log:      log.With().Str("job", "snapshot_export").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotExportJob) Name() string {
	return "snapshot_export"
}

// Run exports the snapshot document to the configured path.
func (j *SnapshotExportJob) Run() error {
	snap, err := j.exporter.WriteFile(j.path)
	if err != nil {
		return err
	}

	if j.bus != nil {
		j.bus.Publish(events.EventSnapshotExported, events.SnapshotExportedData{
			Path:        j.path,
			RunCount:    len(snap.QuantumResults),
			SampleCount: len(snap.QuantumStates),
		})
	}

	j.log.Info().
		Str("path", j.path).
		Int("runs", len(snap.QuantumResults)).
		Msg("Snapshot exported")

	return nil
}
