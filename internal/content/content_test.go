package content

import (
	"testing"
	"time"

	"github.com/rankten/rankten-backend/internal/model"
)

func validQuiz() model.QuizDefinition {
	return model.QuizDefinition{
		Title: "Test",
		Answers: []model.Answer{
			{Rank: 1, Name: "Alpha One", Stat: "10"},
			{Rank: 2, Name: "Beta Two", Stat: "9", Aliases: []string{"BT"}},
		},
		Hints: []string{"first", "second"},
	}
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	store, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Count() == 0 {
		t.Fatal("embedded catalog is empty")
	}
}

func TestNewStoreRejectsInvalidContent(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(q *model.QuizDefinition)
	}{
		{"duplicate rank", func(q *model.QuizDefinition) { q.Answers[1].Rank = 1 }},
		{"rank out of range", func(q *model.QuizDefinition) { q.Answers[1].Rank = 5 }},
		{"hint count mismatch", func(q *model.QuizDefinition) { q.Hints = q.Hints[:1] }},
		{"empty name", func(q *model.QuizDefinition) { q.Answers[0].Name = "!!!" }},
		{"alias shared across ranks", func(q *model.QuizDefinition) {
			q.Answers[0].Aliases = []string{"BT"}
		}},
		{"no answers", func(q *model.QuizDefinition) { q.Answers = nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuiz()
			tc.mutate(&q)
			if _, err := NewStore([]model.QuizDefinition{q}); err == nil {
				t.Error("NewStore accepted invalid content")
			}
		})
	}
}

func TestQuizByIndex(t *testing.T) {
	store, err := NewStore([]model.QuizDefinition{validQuiz()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := store.QuizByIndex(0); err != nil {
		t.Errorf("QuizByIndex(0): %v", err)
	}
	if _, err := store.QuizByIndex(1); err != ErrQuizNotFound {
		t.Errorf("QuizByIndex(1) err = %v, want ErrQuizNotFound", err)
	}
	if _, err := store.QuizByIndex(-1); err != ErrQuizNotFound {
		t.Errorf("QuizByIndex(-1) err = %v, want ErrQuizNotFound", err)
	}
}

func TestTodayIndexRotation(t *testing.T) {
	store, err := NewStore([]model.QuizDefinition{validQuiz(), validQuiz(), validQuiz()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	epoch := time.Date(1970, 1, 1, 12, 0, 0, 0, time.UTC)
	for day := 0; day < 6; day++ {
		now := epoch.AddDate(0, 0, day)
		want := day % 3
		if got := store.TodayIndex(now); got != want {
			t.Errorf("TodayIndex(day %d) = %d, want %d", day, got, want)
		}
	}
}

func TestTodayIndexStableWithinDay(t *testing.T) {
	store, err := NewStore([]model.QuizDefinition{validQuiz(), validQuiz()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	morning := time.Date(2026, 8, 31, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	if store.TodayIndex(morning) != store.TodayIndex(night) {
		t.Error("TodayIndex changed within a single UTC day")
	}
}
