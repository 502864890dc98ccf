package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/database"
)

// WALCheckpointJob truncates the write-ahead logs of the engine databases
// so they do not grow without bound between restarts.
type WALCheckpointJob struct {
	log zerolog.Logger
	dbs []*database.DB
}

// NewWALCheckpointJob creates a checkpoint job over the given databases.
func NewWALCheckpointJob(log zerolog.Logger, dbs ...*database.DB) *WALCheckpointJob {
	return &WALCheckpointJob{
		log: log.With().Str("job", "wal_checkpoint").Logger(),
		dbs: dbs,
	}
}

// Name returns the job name
func (j *WALCheckpointJob) Name() string {
	return "wal_checkpoint"
}

// Run checkpoints every database, continuing past individual failures.
func (j *WALCheckpointJob) Run() error {
	var firstErr error
	for _, db := range j.dbs {
		if db == nil {
			continue
		}
		if err := db.Checkpoint(); err != nil {
			j.log.Warn().Err(err).Str("database", db.Name()).Msg("Checkpoint failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("checkpoint %s: %w", db.Name(), err)
			}
		}
	}
	return firstErr
}
