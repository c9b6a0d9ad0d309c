package service

import (
	"errors"
	"time"

	"github.com/rankten/rankten-backend/internal/content"
	"github.com/rankten/rankten-backend/internal/game"
	"github.com/rankten/rankten-backend/internal/model"
	"github.com/rs/zerolog"
)

// ErrQuizNotFound mirrors the content store's sentinel at the service layer.
var ErrQuizNotFound = content.ErrQuizNotFound

// TodayInfo is the public description of the day's quiz. It exposes counts
// and budgets, never answers.
type TodayInfo struct {
	QuizIndex    int    `json:"quiz_index"`
	QuizDate     string `json:"quiz_date"`
	Title        string `json:"title"`
	AnswerCount  int    `json:"answer_count"`
	TurnSeconds  int    `json:"turn_seconds"`
	TotalSeconds int    `json:"total_seconds"`
}

// Hint pairs a rank with its hint text.
type Hint struct {
	Rank int    `json:"rank"`
	Hint string `json:"hint"`
}

// GuessService evaluates guesses and reveals against the static quiz
// catalog. It is pure per request: no store access, no shared state.
type GuessService struct {
	catalog *content.Store
	now     func() time.Time
	log     zerolog.Logger
}

// NewGuessService creates a new GuessService.
func NewGuessService(catalog *content.Store, log zerolog.Logger) *GuessService {
	return &GuessService{
		catalog: catalog,
		now:     time.Now,
		log:     log.With().Str("component", "guess_service").Logger(),
	}
}

// Today describes the current day's quiz.
func (s *GuessService) Today() TodayInfo {
	now := s.now()
	idx := s.catalog.TodayIndex(now)
	quiz, _ := s.catalog.QuizByIndex(idx) // TodayIndex is always in range.

	return TodayInfo{
		QuizIndex:    idx,
		QuizDate:     now.UTC().Format("2006-01-02"),
		Title:        quiz.Title,
		AnswerCount:  len(quiz.Answers),
		TurnSeconds:  game.TurnSeconds,
		TotalSeconds: game.TotalSeconds,
	}
}

// VerifyGuess resolves a free-text guess against the quiz's answer set,
// excluding ranks the player already has.
func (s *GuessService) VerifyGuess(req model.VerifyGuessRequest) (*model.GuessResult, error) {
	quiz, err := s.quizFor(req.QuizIndex)
	if err != nil {
		return nil, err
	}

	answered := make(map[int]bool, len(req.AnsweredRanks))
	for _, r := range req.AnsweredRanks {
		answered[int(r)] = true
	}

	answer := game.Resolve(req.Guess, quiz, answered)
	if answer == nil {
		return &model.GuessResult{Correct: false}, nil
	}

	return &model.GuessResult{
		Correct: true,
		Answer:  &model.AnswerReveal{Rank: answer.Rank, Name: answer.Name, Stat: answer.Stat},
	}, nil
}

// RevealAnswer returns the answer at an explicit rank without matching.
// Used when a turn timer expires; awards no points by construction.
func (s *GuessService) RevealAnswer(req model.RevealRequest) (*model.GuessResult, error) {
	quiz, err := s.quizFor(req.QuizIndex)
	if err != nil {
		return nil, err
	}

	answer := game.Reveal(quiz, req.Rank)
	if answer == nil {
		return nil, ErrRankNotFound
	}

	return &model.GuessResult{
		Correct: true,
		Answer:  &model.AnswerReveal{Rank: answer.Rank, Name: answer.Name, Stat: answer.Stat},
	}, nil
}

// HintForRank returns the authored hint for a rank.
func (s *GuessService) HintForRank(rank int, quizIndex *int) (*Hint, error) {
	quiz, err := s.quizFor(quizIndex)
	if err != nil {
		return nil, err
	}
	if rank < 1 || rank > len(quiz.Hints) {
		return nil, ErrRankNotFound
	}
	return &Hint{Rank: rank, Hint: quiz.Hints[rank-1]}, nil
}

// quizFor resolves an optional explicit index, defaulting to today's quiz.
func (s *GuessService) quizFor(index *int) (*model.QuizDefinition, error) {
	if index != nil {
		quiz, err := s.catalog.QuizByIndex(*index)
		if err != nil && errors.Is(err, content.ErrQuizNotFound) {
			return nil, ErrQuizNotFound
		}
		return quiz, err
	}
	return s.catalog.QuizByIndex(s.catalog.TodayIndex(s.now()))
}
