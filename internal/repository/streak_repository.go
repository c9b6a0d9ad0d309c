package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rankten/rankten-backend/internal/model"
)

// StreakRepository handles the per-user running streak counters.
type StreakRepository struct {
	db DB
}

// NewStreakRepository creates a new StreakRepository.
func NewStreakRepository(db DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// Get retrieves a user's streak record. A user who never submitted gets a
// zero-valued record, not an error.
func (r *StreakRepository) Get(ctx context.Context, userID int) (*model.Streak, error) {
	return r.get(ctx, userID, "")
}

// GetForUpdate is Get with a row lock; call inside a transaction when the
// streak will be rewritten (keeps concurrent submits from both reading the
// stale counter).
func (r *StreakRepository) GetForUpdate(ctx context.Context, userID int) (*model.Streak, error) {
	return r.get(ctx, userID, " FOR UPDATE")
}

func (r *StreakRepository) get(ctx context.Context, userID int, suffix string) (*model.Streak, error) {
	s := &model.Streak{}
	err := r.db.QueryRow(ctx,
		`SELECT user_id, current_streak, longest_streak, last_play_date
		 FROM streaks
		 WHERE user_id = $1`+suffix, userID,
	).Scan(&s.UserID, &s.CurrentStreak, &s.LongestStreak, &s.LastPlayDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return &model.Streak{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Upsert writes the streak counters for a user.
func (r *StreakRepository) Upsert(ctx context.Context, s *model.Streak) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO streaks (user_id, current_streak, longest_streak, last_play_date)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET current_streak = EXCLUDED.current_streak,
		     longest_streak = EXCLUDED.longest_streak,
		     last_play_date = EXCLUDED.last_play_date`,
		s.UserID, s.CurrentStreak, s.LongestStreak, s.LastPlayDate)
	return err
}
