package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rankten/rankten-backend/internal/game"
	"github.com/rankten/rankten-backend/internal/model"
	"github.com/rs/zerolog"
)

// fakeSessionStore keeps sessions in memory, mimicking the repository's
// conditional-write semantics (completed rows reject further writes).
type fakeSessionStore struct {
	sessions map[string]*model.QuizSession
	nextID   int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*model.QuizSession)}
}

func sessionKey(userID int, quizDate time.Time) string {
	return fmt.Sprintf("%d/%s", userID, quizDate.Format("2006-01-02"))
}

func (f *fakeSessionStore) GetByUserAndDate(_ context.Context, userID int, quizDate time.Time) (*model.QuizSession, error) {
	s, ok := f.sessions[sessionKey(userID, quizDate)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) Create(_ context.Context, s *model.QuizSession) error {
	key := sessionKey(s.UserID, s.QuizDate)
	if _, exists := f.sessions[key]; exists {
		return pgx.ErrNoRows
	}
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.sessions[key] = &cp
	return nil
}

func (f *fakeSessionStore) SaveProgress(_ context.Context, userID int, quizDate time.Time,
	score, hintsUsed int, correctRanks, revealedRanks []int32, resetTurn bool, turnStartedAt time.Time) (bool, error) {
	s, ok := f.sessions[sessionKey(userID, quizDate)]
	if !ok || s.CompletedAt != nil {
		return false, nil
	}
	s.Score = score
	s.HintsUsed = hintsUsed
	s.CorrectRanks = correctRanks
	s.RevealedRanks = revealedRanks
	if resetTurn {
		s.TurnStartedAt = turnStartedAt
	}
	return true, nil
}

func (f *fakeSessionStore) Complete(_ context.Context, userID int, quizDate time.Time, completedAt time.Time) (bool, error) {
	s, ok := f.sessions[sessionKey(userID, quizDate)]
	if !ok || s.CompletedAt != nil {
		return false, nil
	}
	t := completedAt
	s.CompletedAt = &t
	s.Status = model.SessionStatusCompleted
	return true, nil
}

// fakeCatalog serves a single ten-answer quiz at every index.
type fakeCatalog struct{}

func (fakeCatalog) QuizByIndex(int) (*model.QuizDefinition, error) {
	answers := make([]model.Answer, 10)
	hints := make([]string, 10)
	for i := range answers {
		answers[i] = model.Answer{Rank: i + 1, Name: "player", Stat: "0"}
		hints[i] = "hint"
	}
	return &model.QuizDefinition{Answers: answers, Hints: hints}, nil
}

func (fakeCatalog) TodayIndex(time.Time) int { return 0 }

func newTestSessionService(store SessionStore, at time.Time) *SessionService {
	svc := NewSessionService(store, fakeCatalog{}, zerolog.Nop())
	svc.now = func() time.Time { return at }
	return svc
}

var testDate = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestStartOrResumeNewSession(t *testing.T) {
	start := testDate.Add(9 * time.Hour)
	svc := newTestSessionService(newFakeSessionStore(), start)

	state, err := svc.StartOrResume(context.Background(), 1, testDate)
	if err != nil {
		t.Fatalf("StartOrResume: %v", err)
	}
	if state.State != StateStarted {
		t.Errorf("state = %q, want %q", state.State, StateStarted)
	}
	if state.RemainingSeconds != game.TotalSeconds {
		t.Errorf("remaining = %d, want %d", state.RemainingSeconds, game.TotalSeconds)
	}
	if state.RemainingTurnSeconds != game.TurnSeconds {
		t.Errorf("turn remaining = %d, want %d", state.RemainingTurnSeconds, game.TurnSeconds)
	}
}

func TestStartOrResumeExistingSession(t *testing.T) {
	store := newFakeSessionStore()
	start := testDate.Add(9 * time.Hour)

	svc := newTestSessionService(store, start)
	if _, err := svc.StartOrResume(context.Background(), 1, testDate); err != nil {
		t.Fatalf("first start: %v", err)
	}

	// Same user comes back 100 seconds later, still inside the budget.
	svc.now = func() time.Time { return start.Add(100 * time.Second) }
	state, err := svc.StartOrResume(context.Background(), 1, testDate)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if state.State != StateExists {
		t.Errorf("state = %q, want %q", state.State, StateExists)
	}
	if state.RemainingSeconds != game.TotalSeconds-100 {
		t.Errorf("remaining = %d, want %d", state.RemainingSeconds, game.TotalSeconds-100)
	}
}

func TestStartOrResumeExpiry(t *testing.T) {
	store := newFakeSessionStore()
	start := testDate.Add(9 * time.Hour)

	svc := newTestSessionService(store, start)
	if _, err := svc.StartOrResume(context.Background(), 1, testDate); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Come back well past the overall budget.
	svc.now = func() time.Time { return start.Add(game.OverallBudget + time.Minute) }
	state, err := svc.StartOrResume(context.Background(), 1, testDate)
	if err != nil {
		t.Fatalf("expired resume: %v", err)
	}
	if state.State != StateExpired {
		t.Errorf("state = %q, want %q", state.State, StateExpired)
	}
	if state.RemainingSeconds != 0 {
		t.Errorf("remaining = %d, want 0", state.RemainingSeconds)
	}

	// Expiry is reported once; the session is now simply completed.
	state, err = svc.StartOrResume(context.Background(), 1, testDate)
	if err != nil {
		t.Fatalf("second resume: %v", err)
	}
	if state.State != StateAlreadyCompleted {
		t.Errorf("state = %q, want %q", state.State, StateAlreadyCompleted)
	}
}

func TestSaveProgressNoSession(t *testing.T) {
	svc := newTestSessionService(newFakeSessionStore(), testDate)

	err := svc.SaveProgress(context.Background(), 1, testDate, model.SaveProgressRequest{})
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestSaveProgressValidation(t *testing.T) {
	store := newFakeSessionStore()
	start := testDate.Add(9 * time.Hour)

	svc := newTestSessionService(store, start)
	if _, err := svc.StartOrResume(context.Background(), 1, testDate); err != nil {
		t.Fatalf("start: %v", err)
	}

	svc.now = func() time.Time { return start.Add(30 * time.Second) }

	// A legitimate save goes through.
	ok := model.SaveProgressRequest{
		Score:        180,
		CorrectRanks: []int32{1, 5},
	}
	if err := svc.SaveProgress(context.Background(), 1, testDate, ok); err != nil {
		t.Fatalf("valid save: %v", err)
	}

	cases := []struct {
		name string
		req  model.SaveProgressRequest
	}{
		{"score above ceiling", model.SaveProgressRequest{Score: 10*game.MaxAnswerPoints + 1}},
		{"score regression", model.SaveProgressRequest{Score: 100, CorrectRanks: []int32{1, 5}}},
		{"fewer correct ranks", model.SaveProgressRequest{Score: 200, CorrectRanks: []int32{1}}},
		{"rank out of range", model.SaveProgressRequest{Score: 200, CorrectRanks: []int32{1, 5, 11}}},
		{"duplicate rank", model.SaveProgressRequest{Score: 200, CorrectRanks: []int32{1, 5, 5}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SaveProgress(context.Background(), 1, testDate, tc.req)
			if !errors.Is(err, ErrInvalidProgress) {
				t.Errorf("err = %v, want ErrInvalidProgress", err)
			}
		})
	}
}

func TestSaveProgressAfterExpiryCompletes(t *testing.T) {
	store := newFakeSessionStore()
	start := testDate.Add(9 * time.Hour)

	svc := newTestSessionService(store, start)
	if _, err := svc.StartOrResume(context.Background(), 1, testDate); err != nil {
		t.Fatalf("start: %v", err)
	}

	svc.now = func() time.Time { return start.Add(game.OverallBudget + time.Second) }
	err := svc.SaveProgress(context.Background(), 1, testDate, model.SaveProgressRequest{Score: 100})
	if !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("err = %v, want ErrSessionCompleted", err)
	}

	// The expiry check finalized the row as a side effect.
	sess, err := store.GetByUserAndDate(context.Background(), 1, testDate)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.CompletedAt == nil {
		t.Error("session not finalized after expired save")
	}
}

func TestClock(t *testing.T) {
	store := newFakeSessionStore()
	start := testDate.Add(9 * time.Hour)

	svc := newTestSessionService(store, start)
	if _, err := svc.StartOrResume(context.Background(), 1, testDate); err != nil {
		t.Fatalf("start: %v", err)
	}

	svc.now = func() time.Time { return start.Add(10 * time.Second) }
	clock, err := svc.Clock(context.Background(), 1, testDate)
	if err != nil {
		t.Fatalf("Clock: %v", err)
	}
	if clock.Completed {
		t.Error("clock reports completed for open session")
	}
	if clock.RemainingSeconds != game.TotalSeconds-10 {
		t.Errorf("remaining = %d, want %d", clock.RemainingSeconds, game.TotalSeconds-10)
	}
	if clock.RemainingTurnSeconds != game.TurnSeconds-10 {
		t.Errorf("turn remaining = %d, want %d", clock.RemainingTurnSeconds, game.TurnSeconds-10)
	}

	// No session at all is an error, not a zeroed clock.
	if _, err := svc.Clock(context.Background(), 99, testDate); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}
