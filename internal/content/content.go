// Package content is the static quiz-content collaborator. Quiz definitions
// are embedded at build time and served read-only; the day's quiz is a pure
// function of the calendar date and the catalog size.
package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rankten/rankten-backend/internal/game"
	"github.com/rankten/rankten-backend/internal/model"
)

//go:embed quizzes.json
var quizzesJSON []byte

// ErrQuizNotFound is returned for an index outside the catalog.
var ErrQuizNotFound = fmt.Errorf("quiz not found")

// Store holds the validated quiz catalog.
type Store struct {
	quizzes []model.QuizDefinition
}

// Load parses and validates the embedded catalog. Invalid content is a
// build artifact problem, so any violation aborts startup.
func Load() (*Store, error) {
	var quizzes []model.QuizDefinition
	if err := json.Unmarshal(quizzesJSON, &quizzes); err != nil {
		return nil, fmt.Errorf("parse quiz content: %w", err)
	}
	if len(quizzes) == 0 {
		return nil, fmt.Errorf("quiz content is empty")
	}

	for i := range quizzes {
		quizzes[i].Index = i
		if err := validate(&quizzes[i]); err != nil {
			return nil, fmt.Errorf("quiz %d (%q): %w", i, quizzes[i].Title, err)
		}
	}
	return &Store{quizzes: quizzes}, nil
}

// NewStore builds a Store from an in-memory catalog. Used by tests.
func NewStore(quizzes []model.QuizDefinition) (*Store, error) {
	for i := range quizzes {
		if err := validate(&quizzes[i]); err != nil {
			return nil, fmt.Errorf("quiz %d: %w", i, err)
		}
	}
	return &Store{quizzes: quizzes}, nil
}

// Count returns the catalog size.
func (s *Store) Count() int { return len(s.quizzes) }

// QuizByIndex returns the quiz at the given index.
func (s *Store) QuizByIndex(index int) (*model.QuizDefinition, error) {
	if index < 0 || index >= len(s.quizzes) {
		return nil, ErrQuizNotFound
	}
	return &s.quizzes[index], nil
}

// TodayIndex maps a wall-clock instant to the day's quiz index:
// days-since-epoch mod catalog size, clamped non-negative.
func (s *Store) TodayIndex(now time.Time) int {
	days := int(now.UTC().Unix() / 86400)
	idx := days % len(s.quizzes)
	if idx < 0 {
		idx = 0
	}
	return idx
}

// validate enforces the content invariants the resolver relies on:
// contiguous ranks 1..N, non-empty normalized names, one hint per rank,
// and alias sets disjoint across answers (an ambiguous guess would
// otherwise silently credit the lower rank).
func validate(q *model.QuizDefinition) error {
	n := len(q.Answers)
	if n == 0 {
		return fmt.Errorf("no answers")
	}
	if len(q.Hints) != n {
		return fmt.Errorf("expected %d hints, got %d", n, len(q.Hints))
	}

	seenRanks := make(map[int]bool, n)
	seenNames := make(map[string]int, n)

	for i := range q.Answers {
		a := &q.Answers[i]
		if a.Rank < 1 || a.Rank > n {
			return fmt.Errorf("rank %d out of range 1..%d", a.Rank, n)
		}
		if seenRanks[a.Rank] {
			return fmt.Errorf("duplicate rank %d", a.Rank)
		}
		seenRanks[a.Rank] = true

		name := game.Normalize(a.Name)
		if name == "" {
			return fmt.Errorf("rank %d: name %q normalizes to empty", a.Rank, a.Name)
		}

		for _, candidate := range append([]string{a.Name}, a.Aliases...) {
			norm := game.Normalize(candidate)
			if norm == "" {
				return fmt.Errorf("rank %d: alias %q normalizes to empty", a.Rank, candidate)
			}
			if other, dup := seenNames[norm]; dup && other != a.Rank {
				return fmt.Errorf("alias %q shared by ranks %d and %d", norm, other, a.Rank)
			}
			seenNames[norm] = a.Rank
		}
	}
	return nil
}
