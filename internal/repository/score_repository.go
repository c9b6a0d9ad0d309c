package repository

import (
	"context"
	"time"

	"github.com/rankten/rankten-backend/internal/model"
)

// ScoreRepository handles immutable daily score records.
type ScoreRepository struct {
	db DB
}

// NewScoreRepository creates a new ScoreRepository.
func NewScoreRepository(db DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Insert creates the daily score record. The (user_id, quiz_date) unique
// constraint is the sole double-submission guard; a violation surfaces as
// ErrDuplicate and the existing row is left untouched.
func (r *ScoreRepository) Insert(ctx context.Context, s *model.DailyScore) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO daily_scores
		   (user_id, quiz_date, quiz_index, total_score, correct_guesses,
		    hints_used, time_used_seconds, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		s.UserID, s.QuizDate, s.QuizIndex, s.TotalScore, s.CorrectGuesses,
		s.HintsUsed, s.TimeUsedSeconds, s.CompletedAt,
	).Scan(&s.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetByUserAndDate retrieves one user's score record for a date.
func (r *ScoreRepository) GetByUserAndDate(ctx context.Context, userID int, quizDate time.Time) (*model.DailyScore, error) {
	s := &model.DailyScore{}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, quiz_date, quiz_index, total_score, correct_guesses,
		        hints_used, time_used_seconds, completed_at
		 FROM daily_scores
		 WHERE user_id = $1 AND quiz_date = $2`, userID, quizDate,
	).Scan(
		&s.ID, &s.UserID, &s.QuizDate, &s.QuizIndex, &s.TotalScore, &s.CorrectGuesses,
		&s.HintsUsed, &s.TimeUsedSeconds, &s.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RankForScore computes a player's leaderboard position for a date:
// 1 + the number of strictly greater scores. Ties share a rank.
func (r *ScoreRepository) RankForScore(ctx context.Context, quizDate time.Time, totalScore int) (int, error) {
	var greater int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_scores
		 WHERE quiz_date = $1 AND total_score > $2`, quizDate, totalScore,
	).Scan(&greater)
	if err != nil {
		return 0, err
	}
	return greater + 1, nil
}
