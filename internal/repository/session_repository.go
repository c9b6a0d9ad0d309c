package repository

import (
	"context"
	"time"

	"github.com/rankten/rankten-backend/internal/model"
)

const sessionColumns = `id, user_id, quiz_date, quiz_index, started_at, turn_started_at,
	score, hints_used, correct_ranks, revealed_ranks, completed_at, status`

// SessionRepository handles quiz session data access. All mutations of an
// open session are conditional writes scoped to completed_at IS NULL, so a
// late save can never resurrect a finished session.
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetByUserAndDate retrieves the session for one user's daily attempt.
func (r *SessionRepository) GetByUserAndDate(ctx context.Context, userID int, quizDate time.Time) (*model.QuizSession, error) {
	return r.get(ctx, userID, quizDate, "")
}

// GetByUserAndDateForUpdate locks the session row for the duration of the
// caller's transaction, so a concurrent progress save serializes against
// the finalization that reads this snapshot.
func (r *SessionRepository) GetByUserAndDateForUpdate(ctx context.Context, userID int, quizDate time.Time) (*model.QuizSession, error) {
	return r.get(ctx, userID, quizDate, " FOR UPDATE")
}

func (r *SessionRepository) get(ctx context.Context, userID int, quizDate time.Time, suffix string) (*model.QuizSession, error) {
	s := &model.QuizSession{}
	err := r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+`
		 FROM quiz_sessions
		 WHERE user_id = $1 AND quiz_date = $2`+suffix, userID, quizDate,
	).Scan(
		&s.ID, &s.UserID, &s.QuizDate, &s.QuizIndex, &s.StartedAt, &s.TurnStartedAt,
		&s.Score, &s.HintsUsed, &s.CorrectRanks, &s.RevealedRanks, &s.CompletedAt, &s.Status,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a fresh session. The caller supplies the timestamps so the
// service owns the clock. On a concurrent create for the same (user, date),
// no row is inserted and pgx.ErrNoRows comes back from the RETURNING scan —
// callers should re-fetch and use the winner's row.
func (r *SessionRepository) Create(ctx context.Context, s *model.QuizSession) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO quiz_sessions
		   (user_id, quiz_date, quiz_index, started_at, turn_started_at,
		    score, hints_used, correct_ranks, revealed_ranks, status)
		 VALUES ($1, $2, $3, $4, $5, 0, 0, '{}', '{}', $6)
		 ON CONFLICT (user_id, quiz_date) DO NOTHING
		 RETURNING id`,
		s.UserID, s.QuizDate, s.QuizIndex, s.StartedAt, s.TurnStartedAt,
		model.SessionStatusInProgress,
	).Scan(&s.ID)
}

// SaveProgress applies one atomic progress update to an open session.
// When resetTurn is set, turn_started_at moves to turnStartedAt as part of
// the same write. Returns false when the session was already completed.
func (r *SessionRepository) SaveProgress(
	ctx context.Context,
	userID int,
	quizDate time.Time,
	score, hintsUsed int,
	correctRanks, revealedRanks []int32,
	resetTurn bool,
	turnStartedAt time.Time,
) (bool, error) {
	if correctRanks == nil {
		correctRanks = []int32{}
	}
	if revealedRanks == nil {
		revealedRanks = []int32{}
	}

	if resetTurn {
		ct, err := r.db.Exec(ctx,
			`UPDATE quiz_sessions
			 SET score = $3, hints_used = $4, correct_ranks = $5, revealed_ranks = $6,
			     turn_started_at = $7
			 WHERE user_id = $1 AND quiz_date = $2 AND completed_at IS NULL`,
			userID, quizDate, score, hintsUsed, correctRanks, revealedRanks, turnStartedAt)
		if err != nil {
			return false, err
		}
		return ct.RowsAffected() > 0, nil
	}

	ct, err := r.db.Exec(ctx,
		`UPDATE quiz_sessions
		 SET score = $3, hints_used = $4, correct_ranks = $5, revealed_ranks = $6
		 WHERE user_id = $1 AND quiz_date = $2 AND completed_at IS NULL`,
		userID, quizDate, score, hintsUsed, correctRanks, revealedRanks)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Complete finalizes an open session. Returns false when another request
// (or the expiry sweep) completed it first.
func (r *SessionRepository) Complete(ctx context.Context, userID int, quizDate time.Time, completedAt time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE quiz_sessions
		 SET status = $3, completed_at = $4
		 WHERE user_id = $1 AND quiz_date = $2 AND completed_at IS NULL`,
		userID, quizDate, model.SessionStatusCompleted, completedAt)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// CompleteExpired finalizes every open session whose overall budget has
// elapsed, crediting the budget boundary (not the sweep time) as the
// completion instant. Used by the expiry sweep worker.
func (r *SessionRepository) CompleteExpired(ctx context.Context, overallSeconds int) (int64, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE quiz_sessions
		 SET status = $1, completed_at = started_at + make_interval(secs => $2)
		 WHERE completed_at IS NULL
		   AND started_at < now() - make_interval(secs => $2)`,
		model.SessionStatusCompleted, overallSeconds)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
