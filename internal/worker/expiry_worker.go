package worker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rankten/rankten-backend/internal/config"
	"github.com/rankten/rankten-backend/internal/game"
	"github.com/rankten/rankten-backend/internal/repository"
	"github.com/rs/zerolog"
)

const (
	// SweepInterval bounds how stale an abandoned session can stay open.
	// Resume and submit finalize expired sessions inline; the sweep only
	// catches sessions nobody ever comes back to.
	SweepInterval = 30 * time.Second

	// LockTTL must exceed SweepInterval so the lease does not lapse
	// between ticks of the holding instance.
	LockTTL = 45 * time.Second
)

// ExpiryWorker finalizes sessions whose overall budget ran out without the
// player resuming or submitting. A Redis SetNX lease elects one instance
// to sweep; the others idle until the lease lapses.
type ExpiryWorker struct {
	sessions *repository.SessionRepository
	rdb      *redis.Client
	log      zerolog.Logger
}

// NewExpiryWorker creates a new ExpiryWorker.
func NewExpiryWorker(sessions *repository.SessionRepository, rdb *redis.Client, log zerolog.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		sessions: sessions,
		rdb:      rdb,
		log:      log.With().Str("component", "expiry_worker").Logger(),
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ExpiryWorker started")

	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ExpiryWorker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context) {
	acquired, err := w.rdb.SetNX(ctx, config.WorkerKey.ExpirySweepLock(), 1, LockTTL).Result()
	if err != nil {
		w.log.Warn().Err(err).Msg("Sweep lock unavailable, skipping tick")
		return
	}
	if !acquired {
		return
	}
	defer w.rdb.Del(ctx, config.WorkerKey.ExpirySweepLock())

	n, err := w.sessions.CompleteExpired(ctx, game.TotalSeconds)
	if err != nil {
		w.log.Error().Err(err).Msg("Expiry sweep failed")
		return
	}
	if n > 0 {
		w.log.Info().Int64("finalized", n).Msg("Expired sessions finalized")
	}
}
