package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Clock drives the session heartbeat at the configured price interval.
// The session handles its own slower cadences (news, expiry) internally,
// so one ticker is enough.
type Clock struct {
	session  *Session
	interval time.Duration
	log      zerolog.Logger
}

// NewClock creates a clock for the session.
func NewClock(session *Session, interval time.Duration, log zerolog.Logger) *Clock {
	return &Clock{
		session:  session,
		interval: interval,
		log:      log.With().Str("component", "clock").Logger(),
	}
}

// Run ticks the session until the context is canceled. It blocks; callers
// start it in its own goroutine.
func (c *Clock) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.log.Info().Dur("interval", c.interval).Msg("clock started")
	for {
		select {
		case <-ctx.Done():
			c.log.Info().Msg("clock stopped")
			return
		case now := <-ticker.C:
			c.session.OnTick(now)
		}
	}
}
