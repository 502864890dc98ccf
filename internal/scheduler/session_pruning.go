package scheduler

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/session"
)

// defaultSessionMaxAge is how long a saved game stays restorable.
const defaultSessionMaxAge = 7 * 24 * time.Hour

// SessionPruningJob drops saved sessions nobody has touched in a week.
type SessionPruningJob struct {
	log    zerolog.Logger
	store  *session.Store
	maxAge time.Duration
}

// NewSessionPruningJob creates a pruning job. A non-positive maxAge uses
// the default retention.
func NewSessionPruningJob(store *session.Store, maxAge time.Duration, log zerolog.Logger) *SessionPruningJob {
	if maxAge <= 0 {
		maxAge = defaultSessionMaxAge
	}
	return &SessionPruningJob{
		log:    log.With().Str("job", "session_pruning").Logger(),
		store:  store,
		maxAge: maxAge,
	}
}

// Name returns the job name
func (j *SessionPruningJob) Name() string {
	return "session_pruning"
}

// Run deletes stale saved sessions.
func (j *SessionPruningJob) Run() error {
	pruned, err := j.store.Prune(j.maxAge, time.Now())
	if err != nil {
		return err
	}
	if pruned > 0 {
		j.log.Info().Int64("pruned", pruned).Msg("Stale saved sessions removed")
	}
	return nil
}
