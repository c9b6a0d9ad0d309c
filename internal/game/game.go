// Package game implements the core quiz mechanics: guess normalization,
// the fuzzy matching cascade, and the answer resolver. Everything here is
// pure and CPU-only, safe to run concurrently across requests.
package game

import "time"

// Fixed clocks and scoring caps of the daily game. These are deliberately
// constants, not config: remaining time must be reproducible from stored
// timestamps alone, on any instance.
const (
	// TurnSeconds is the budget to guess one ranked entry before it is
	// auto-revealed without points.
	TurnSeconds = 30

	// TotalSeconds is the overall budget for the whole quiz.
	TotalSeconds = 300

	// MaxAnswerPoints caps the points a single correct guess can award.
	MaxAnswerPoints = 100
)

// TurnBudget and OverallBudget are the duration forms of the clock constants.
var (
	TurnBudget    = TurnSeconds * time.Second
	OverallBudget = TotalSeconds * time.Second
)
