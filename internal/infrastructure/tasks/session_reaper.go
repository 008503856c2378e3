package tasks

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace/internal/core/ports"
)

const defaultReapInterval = time.Hour

// SessionReaper periodically deletes expired session rows. Logout only
// moves a session's expiry into the past; the reaper is what eventually
// removes the row.
type SessionReaper struct {
	sessions ports.SessionRepository
	interval time.Duration
	log      zerolog.Logger
	nowFunc  func() time.Time
}

// NewSessionReaper creates a reaper running every interval.
// If interval <= 0, defaultReapInterval is used.
func NewSessionReaper(sessions ports.SessionRepository, interval time.Duration, log zerolog.Logger) *SessionReaper {
	if interval <= 0 {
		interval = defaultReapInterval
	}
	return &SessionReaper{
		sessions: sessions,
		interval: interval,
		log:      log,
		nowFunc:  time.Now,
	}
}

// Start launches the reap loop in its own goroutine. The loop stops when
// ctx is cancelled.
func (r *SessionReaper) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *SessionReaper) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reap(ctx)
		}
	}
}

func (r *SessionReaper) reap(ctx context.Context) {
	n, err := r.sessions.DeleteExpired(ctx, r.nowFunc().UTC())
	if err != nil {
		r.log.Error().Err(err).Msg("session reap failed")
		return
	}
	if n > 0 {
		r.log.Info().Int64("deleted", n).Msg("expired sessions reaped")
	}
}
