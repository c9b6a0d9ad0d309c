package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rankten/rankten-backend/internal/game"
	"github.com/rankten/rankten-backend/internal/model"
	"github.com/rs/zerolog"
)

// SessionStore is the durable-store surface the state machine needs.
// Implemented by repository.SessionRepository; faked in tests.
type SessionStore interface {
	GetByUserAndDate(ctx context.Context, userID int, quizDate time.Time) (*model.QuizSession, error)
	Create(ctx context.Context, s *model.QuizSession) error
	SaveProgress(ctx context.Context, userID int, quizDate time.Time, score, hintsUsed int,
		correctRanks, revealedRanks []int32, resetTurn bool, turnStartedAt time.Time) (bool, error)
	Complete(ctx context.Context, userID int, quizDate time.Time, completedAt time.Time) (bool, error)
}

// QuizCatalog is the slice of the content store the state machine needs
// for bounds checks and today's index.
type QuizCatalog interface {
	QuizByIndex(index int) (*model.QuizDefinition, error)
	TodayIndex(now time.Time) int
}

// Session lifecycle outcomes returned by StartOrResume.
const (
	StateStarted          = "session_started"
	StateExists           = "session_exists"
	StateExpired          = "session_expired"
	StateAlreadyCompleted = "already_completed"
)

// SessionState is the full client-visible view of a session: persisted
// progress plus server-derived clocks, enough to rebuild the UI after a
// reload.
type SessionState struct {
	State                string     `json:"state"`
	QuizIndex            int        `json:"quiz_index"`
	QuizDate             string     `json:"quiz_date"`
	StartedAt            time.Time  `json:"started_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	Score                int        `json:"score"`
	HintsUsed            int        `json:"hints_used"`
	CorrectRanks         []int32    `json:"correct_ranks"`
	RevealedRanks        []int32    `json:"revealed_ranks"`
	ElapsedSeconds       int        `json:"elapsed_seconds"`
	RemainingSeconds     int        `json:"remaining_seconds"`
	RemainingTurnSeconds int        `json:"remaining_turn_seconds"`
	TurnSeconds          int        `json:"turn_seconds"`
	TotalSeconds         int        `json:"total_seconds"`
}

// ClockState is the 1 Hz frame pushed over the session clock stream.
type ClockState struct {
	RemainingSeconds     int  `json:"remaining_seconds"`
	RemainingTurnSeconds int  `json:"remaining_turn_seconds"`
	Completed            bool `json:"completed"`
}

// SessionService is the quiz session state machine. Every decision reads
// the wall clock through s.now and the durable store through s.store; a
// client-reported elapsed time or score delta is never an input.
type SessionService struct {
	store   SessionStore
	catalog QuizCatalog
	now     func() time.Time
	log     zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(store SessionStore, catalog QuizCatalog, log zerolog.Logger) *SessionService {
	return &SessionService{
		store:   store,
		catalog: catalog,
		now:     time.Now,
		log:     log.With().Str("component", "session_service").Logger(),
	}
}

// StartOrResume creates today's session on first access, otherwise reports
// the session's current state. Resuming past the overall budget finalizes
// the session with its last persisted progress (partial credit) and reports
// session_expired exactly once; after that it is already_completed.
func (s *SessionService) StartOrResume(ctx context.Context, userID int, quizDate time.Time) (*SessionState, error) {
	now := s.now()

	sess, err := s.store.GetByUserAndDate(ctx, userID, quizDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.start(ctx, userID, quizDate, now)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	return s.resume(ctx, sess, now)
}

func (s *SessionService) start(ctx context.Context, userID int, quizDate time.Time, now time.Time) (*SessionState, error) {
	sess := &model.QuizSession{
		UserID:        userID,
		QuizDate:      quizDate,
		QuizIndex:     s.catalog.TodayIndex(now),
		StartedAt:     now,
		TurnStartedAt: now,
		CorrectRanks:  []int32{},
		RevealedRanks: []int32{},
		Status:        model.SessionStatusInProgress,
	}

	if err := s.store.Create(ctx, sess); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("create session: %w", err)
		}
		// Concurrent start from another device won the insert; resume
		// against the winner's row.
		existing, fetchErr := s.store.GetByUserAndDate(ctx, userID, quizDate)
		if fetchErr != nil {
			return nil, fmt.Errorf("concurrent start detected, but fetch failed: %w", fetchErr)
		}
		return s.resume(ctx, existing, now)
	}

	s.log.Info().Int("user_id", userID).Str("quiz_date", dateString(quizDate)).Msg("Session started")

	state := s.buildState(sess, now)
	state.State = StateStarted
	return state, nil
}

func (s *SessionService) resume(ctx context.Context, sess *model.QuizSession, now time.Time) (*SessionState, error) {
	if sess.CompletedAt != nil {
		state := s.buildState(sess, now)
		state.State = StateAlreadyCompleted
		return state, nil
	}

	if now.Sub(sess.StartedAt) >= game.OverallBudget {
		// Overall timeout: finalize with whatever progress was last
		// persisted. The conditional write makes a race with a concurrent
		// finalizer harmless.
		if _, err := s.store.Complete(ctx, sess.UserID, sess.QuizDate, now); err != nil {
			return nil, fmt.Errorf("complete expired session: %w", err)
		}
		sess.CompletedAt = &now
		sess.Status = model.SessionStatusCompleted

		s.log.Info().Int("user_id", sess.UserID).Str("quiz_date", dateString(sess.QuizDate)).
			Int("score", sess.Score).Msg("Session expired on resume")

		state := s.buildState(sess, now)
		state.State = StateExpired
		return state, nil
	}

	state := s.buildState(sess, now)
	state.State = StateExists
	return state, nil
}

// SaveProgress applies a progress snapshot to an open session as a single
// conditional write. The snapshot is sanity-checked against the quiz
// definition and the previously persisted progress; anything that would
// move progress backwards or above the score ceiling is rejected outright.
func (s *SessionService) SaveProgress(ctx context.Context, userID int, quizDate time.Time, req model.SaveProgressRequest) error {
	now := s.now()

	sess, err := s.store.GetByUserAndDate(ctx, userID, quizDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}

	if sess.CompletedAt != nil {
		return ErrSessionCompleted
	}
	if now.Sub(sess.StartedAt) >= game.OverallBudget {
		if _, err := s.store.Complete(ctx, userID, quizDate, now); err != nil {
			return fmt.Errorf("complete expired session: %w", err)
		}
		return ErrSessionCompleted
	}

	if err := s.validateProgress(sess, req); err != nil {
		return err
	}

	ok, err := s.store.SaveProgress(ctx, userID, quizDate,
		req.Score, req.HintsUsed, req.CorrectRanks, req.RevealedRanks,
		req.ResetTurn, now)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if !ok {
		// Lost the race against expiry or another finalizer.
		return ErrSessionCompleted
	}
	return nil
}

// Clock derives the remaining overall and turn clocks for an existing
// session without mutating it. Used by the websocket clock stream.
func (s *SessionService) Clock(ctx context.Context, userID int, quizDate time.Time) (*ClockState, error) {
	sess, err := s.store.GetByUserAndDate(ctx, userID, quizDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	now := s.now()
	state := s.buildState(sess, now)
	return &ClockState{
		RemainingSeconds:     state.RemainingSeconds,
		RemainingTurnSeconds: state.RemainingTurnSeconds,
		Completed:            sess.CompletedAt != nil || state.RemainingSeconds == 0,
	}, nil
}

func (s *SessionService) validateProgress(sess *model.QuizSession, req model.SaveProgressRequest) error {
	quiz, err := s.catalog.QuizByIndex(sess.QuizIndex)
	if err != nil {
		return fmt.Errorf("load quiz %d: %w", sess.QuizIndex, err)
	}
	n := len(quiz.Answers)

	if req.Score > n*game.MaxAnswerPoints {
		return ErrInvalidProgress
	}
	if !validRankSet(req.CorrectRanks, n) || !validRankSet(req.RevealedRanks, n) {
		return ErrInvalidProgress
	}

	// Progress is append-only: nothing persisted may regress.
	if req.Score < sess.Score ||
		req.HintsUsed < sess.HintsUsed ||
		len(req.CorrectRanks) < len(sess.CorrectRanks) ||
		len(req.RevealedRanks) < len(sess.RevealedRanks) {
		return ErrInvalidProgress
	}
	return nil
}

func validRankSet(ranks []int32, n int) bool {
	seen := make(map[int32]bool, len(ranks))
	for _, r := range ranks {
		if r < 1 || int(r) > n || seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

func (s *SessionService) buildState(sess *model.QuizSession, now time.Time) *SessionState {
	end := now
	if sess.CompletedAt != nil {
		end = *sess.CompletedAt
	}

	elapsed := int(end.Sub(sess.StartedAt).Seconds())
	if elapsed > game.TotalSeconds {
		elapsed = game.TotalSeconds
	}

	remaining := game.TotalSeconds - elapsed
	remainingTurn := game.TurnSeconds - int(now.Sub(sess.TurnStartedAt).Seconds())
	if sess.CompletedAt != nil {
		remaining = 0
		remainingTurn = 0
	}
	if remaining < 0 {
		remaining = 0
	}
	if remainingTurn < 0 {
		remainingTurn = 0
	}

	return &SessionState{
		QuizIndex:            sess.QuizIndex,
		QuizDate:             dateString(sess.QuizDate),
		StartedAt:            sess.StartedAt,
		CompletedAt:          sess.CompletedAt,
		Score:                sess.Score,
		HintsUsed:            sess.HintsUsed,
		CorrectRanks:         sess.CorrectRanks,
		RevealedRanks:        sess.RevealedRanks,
		ElapsedSeconds:       elapsed,
		RemainingSeconds:     remaining,
		RemainingTurnSeconds: remainingTurn,
		TurnSeconds:          game.TurnSeconds,
		TotalSeconds:         game.TotalSeconds,
	}
}

func dateString(t time.Time) string {
	return t.Format("2006-01-02")
}
