package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/atelierhq/studio-api/internal/session"
)

// SessionSweeper periodically removes expired sessions from the store. The
// sweep is advisory: expiry is also enforced lazily when a session is used,
// so a missed tick never extends a session's life.
type SessionSweeper struct {
	store    session.Store
	interval time.Duration
	done     chan struct{}
}

func NewSessionSweeper(store session.Store, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (s *SessionSweeper) Start() {
	go s.run()
	log.Info().Dur("interval", s.interval).Msg("session sweeper started")
}

func (s *SessionSweeper) Stop() {
	close(s.done)
	log.Info().Msg("session sweeper stopped")
}

func (s *SessionSweeper) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.store.DeleteExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("session sweep failed")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("expired sessions swept")
	}
}
