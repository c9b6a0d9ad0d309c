package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rankten/rankten-backend/internal/content"
	"github.com/rankten/rankten-backend/internal/model"
	"github.com/rs/zerolog"
)

func newTestGuessService(t *testing.T) *GuessService {
	t.Helper()

	store, err := content.NewStore([]model.QuizDefinition{{
		Title: "Top scorers",
		Answers: []model.Answer{
			{Rank: 1, Name: "LeBron James", Stat: "42,184", Aliases: []string{"King James"}},
			{Rank: 2, Name: "Kareem Abdul-Jabbar", Stat: "38,387"},
			{Rank: 3, Name: "Karl Malone", Stat: "36,928"},
		},
		Hints: []string{"still active", "sky hook", "the mailman"},
	}})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	svc := NewGuessService(store, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestToday(t *testing.T) {
	svc := newTestGuessService(t)

	info := svc.Today()
	if info.QuizDate != "2026-08-31" {
		t.Errorf("quiz date = %q", info.QuizDate)
	}
	if info.AnswerCount != 3 {
		t.Errorf("answer count = %d, want 3", info.AnswerCount)
	}
	if info.Title != "Top scorers" {
		t.Errorf("title = %q", info.Title)
	}
}

func TestVerifyGuess(t *testing.T) {
	svc := newTestGuessService(t)

	result, err := svc.VerifyGuess(model.VerifyGuessRequest{Guess: "king james"})
	if err != nil {
		t.Fatalf("VerifyGuess: %v", err)
	}
	if !result.Correct || result.Answer == nil || result.Answer.Rank != 1 {
		t.Fatalf("result = %+v, want rank 1", result)
	}

	// Already-answered ranks are excluded from matching.
	result, err = svc.VerifyGuess(model.VerifyGuessRequest{
		Guess:         "lebron",
		AnsweredRanks: []int32{1},
	})
	if err != nil {
		t.Fatalf("VerifyGuess: %v", err)
	}
	if result.Correct {
		t.Error("answered rank matched again")
	}

	// Unknown quiz index.
	badIdx := 42
	if _, err := svc.VerifyGuess(model.VerifyGuessRequest{Guess: "x y", QuizIndex: &badIdx}); !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestRevealAnswer(t *testing.T) {
	svc := newTestGuessService(t)

	result, err := svc.RevealAnswer(model.RevealRequest{Rank: 3})
	if err != nil {
		t.Fatalf("RevealAnswer: %v", err)
	}
	if result.Answer == nil || result.Answer.Name != "Karl Malone" {
		t.Fatalf("result = %+v", result)
	}

	if _, err := svc.RevealAnswer(model.RevealRequest{Rank: 9}); !errors.Is(err, ErrRankNotFound) {
		t.Errorf("err = %v, want ErrRankNotFound", err)
	}
}

func TestHintForRank(t *testing.T) {
	svc := newTestGuessService(t)

	hint, err := svc.HintForRank(2, nil)
	if err != nil {
		t.Fatalf("HintForRank: %v", err)
	}
	if hint.Hint != "sky hook" {
		t.Errorf("hint = %q", hint.Hint)
	}

	if _, err := svc.HintForRank(4, nil); !errors.Is(err, ErrRankNotFound) {
		t.Errorf("err = %v, want ErrRankNotFound", err)
	}
}
