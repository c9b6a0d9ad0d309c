package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rankten/rankten-backend/internal/game"
	"github.com/rankten/rankten-backend/internal/model"
	"github.com/rankten/rankten-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ScoreService finalizes a completed session into an immutable daily score
// record, computes the day's rank and updates the streak — all in one
// transaction. The client's submitted figures are only cross-checked for
// telemetry; the stored session is the sole source of truth.
type ScoreService struct {
	pool *pgxpool.Pool
	now  func() time.Time
	log  zerolog.Logger
}

// NewScoreService creates a new ScoreService.
func NewScoreService(pool *pgxpool.Pool, log zerolog.Logger) *ScoreService {
	return &ScoreService{
		pool: pool,
		now:  time.Now,
		log:  log.With().Str("component", "score_service").Logger(),
	}
}

// Submit finalizes the (user, quizDate) attempt. Fails with
// ErrAlreadySubmitted when a record already exists — the unique constraint
// on daily_scores closes the check-then-insert race — and with ErrNoSession
// when the user never played that date.
func (s *ScoreService) Submit(ctx context.Context, userID int, quizDate time.Time, req model.SubmitScoreRequest) (*model.SubmitResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	sessions := repository.NewSessionRepository(tx)
	scores := repository.NewScoreRepository(tx)
	streaks := repository.NewStreakRepository(tx)

	// Lock the session row so a progress save racing this submission
	// serializes before the snapshot is read.
	sess, err := sessions.GetByUserAndDateForUpdate(ctx, userID, quizDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Finalize the session if the player finished before any timeout did.
	completedAt := s.now()
	if sess.CompletedAt != nil {
		completedAt = *sess.CompletedAt
	} else {
		if budgetEnd := sess.StartedAt.Add(game.OverallBudget); completedAt.After(budgetEnd) {
			completedAt = budgetEnd
		}
		if _, err := sessions.Complete(ctx, userID, quizDate, completedAt); err != nil {
			return nil, fmt.Errorf("complete session: %w", err)
		}
	}

	record := recordFromSession(sess, completedAt)
	s.auditClientFigures(userID, record, req)

	if err := scores.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("insert daily score: %w", err)
	}

	rank, err := scores.RankForScore(ctx, quizDate, record.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("compute rank: %w", err)
	}

	streak, err := streaks.GetForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get streak: %w", err)
	}
	next := nextStreak(*streak, quizDate)
	if err := streaks.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("update streak: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().Int("user_id", userID).Str("quiz_date", dateString(quizDate)).
		Int("score", record.TotalScore).Int("rank", rank).
		Int("streak", next.CurrentStreak).Msg("Score submitted")

	return &model.SubmitResult{
		Rank:          rank,
		CurrentStreak: next.CurrentStreak,
		LongestStreak: next.LongestStreak,
	}, nil
}

// GetStreak returns the user's streak record (zero-valued if never played).
func (s *ScoreService) GetStreak(ctx context.Context, userID int) (*model.Streak, error) {
	return repository.NewStreakRepository(s.pool).Get(ctx, userID)
}

// recordFromSession derives the authoritative score record from the stored
// session. Time used is clamped to the overall budget.
func recordFromSession(sess *model.QuizSession, completedAt time.Time) *model.DailyScore {
	timeUsed := int(completedAt.Sub(sess.StartedAt).Seconds())
	if timeUsed > game.TotalSeconds {
		timeUsed = game.TotalSeconds
	}
	if timeUsed < 0 {
		timeUsed = 0
	}

	return &model.DailyScore{
		UserID:          sess.UserID,
		QuizDate:        sess.QuizDate,
		QuizIndex:       sess.QuizIndex,
		TotalScore:      sess.Score,
		CorrectGuesses:  len(sess.CorrectRanks),
		HintsUsed:       sess.HintsUsed,
		TimeUsedSeconds: timeUsed,
		CompletedAt:     completedAt,
	}
}

// auditClientFigures logs when the client's claimed figures disagree with
// the server-derived record. The record always wins; the log is how we
// notice broken clients (or forged payloads).
func (s *ScoreService) auditClientFigures(userID int, record *model.DailyScore, req model.SubmitScoreRequest) {
	if req.TotalScore == record.TotalScore &&
		req.CorrectGuesses == record.CorrectGuesses &&
		req.HintsUsed == record.HintsUsed {
		return
	}
	s.log.Warn().Int("user_id", userID).
		Int("client_score", req.TotalScore).Int("server_score", record.TotalScore).
		Int("client_correct", req.CorrectGuesses).Int("server_correct", record.CorrectGuesses).
		Int("client_hints", req.HintsUsed).Int("server_hints", record.HintsUsed).
		Msg("Client-submitted figures disagree with session; using server figures")
}

// nextStreak applies the date-adjacency rules: played yesterday extends the
// run, a duplicate call for the same date is a no-op, anything else resets
// to 1. longest_streak only ever grows.
func nextStreak(s model.Streak, quizDate time.Time) model.Streak {
	if s.LastPlayDate != nil && sameDay(*s.LastPlayDate, quizDate) {
		return s
	}

	if s.LastPlayDate != nil && sameDay(*s.LastPlayDate, quizDate.AddDate(0, 0, -1)) {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}

	day := quizDate
	s.LastPlayDate = &day
	return s
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
