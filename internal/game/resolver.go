package game

import "github.com/rankten/rankten-backend/internal/model"

// Resolve matches a raw guess against a quiz's answer set, skipping ranks
// the player already has. Answers are tried in rank order, so a guess that
// could identify two entries credits the lower rank — overlapping alias
// sets across answers are a content-authoring error, not a runtime case.
// Returns nil when nothing matches.
func Resolve(guessText string, quiz *model.QuizDefinition, answeredRanks map[int]bool) *model.Answer {
	guess := Normalize(guessText)
	if guess == "" {
		return nil
	}

	for i := range quiz.Answers {
		a := &quiz.Answers[i]
		if answeredRanks[a.Rank] {
			continue
		}
		if answerMatches(guess, a) {
			return a
		}
	}
	return nil
}

// Reveal bypasses matching and returns the answer at an explicit rank,
// used when a turn timer expires. Returns nil for an unknown rank.
func Reveal(quiz *model.QuizDefinition, rank int) *model.Answer {
	for i := range quiz.Answers {
		if quiz.Answers[i].Rank == rank {
			return &quiz.Answers[i]
		}
	}
	return nil
}

func answerMatches(guess string, a *model.Answer) bool {
	if Matches(guess, Normalize(a.Name)) {
		return true
	}
	for _, alias := range a.Aliases {
		if Matches(guess, Normalize(alias)) {
			return true
		}
	}
	return false
}
