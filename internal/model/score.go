package model

import "time"

// DailyScore is the immutable record of a finished daily attempt. One row
// per (user_id, quiz_date), enforced by a unique constraint; a second
// submission is rejected, never overwritten.
type DailyScore struct {
	ID              int64     `json:"id"`
	UserID          int       `json:"user_id"`
	QuizDate        time.Time `json:"quiz_date"`
	QuizIndex       int       `json:"quiz_index"`
	TotalScore      int       `json:"total_score"`
	CorrectGuesses  int       `json:"correct_guesses"`
	HintsUsed       int       `json:"hints_used"`
	TimeUsedSeconds int       `json:"time_used_seconds"`
	CompletedAt     time.Time `json:"completed_at"`
}

// Streak tracks consecutive play days per user.
type Streak struct {
	UserID        int        `json:"user_id"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastPlayDate  *time.Time `json:"last_play_date,omitempty"`
}

// SubmitScoreRequest is the client's view of the finished attempt. The
// server recomputes every figure from the stored session; these fields are
// only cross-checked, never trusted.
type SubmitScoreRequest struct {
	QuizDate       string `json:"quiz_date" binding:"required,datetime=2006-01-02"`
	QuizIndex      int    `json:"quiz_index" binding:"gte=0"`
	TotalScore     int    `json:"total_score" binding:"gte=0"`
	CorrectGuesses int    `json:"correct_guesses" binding:"gte=0"`
	HintsUsed      int    `json:"hints_used" binding:"gte=0"`
	TimeUsed       int    `json:"time_used" binding:"gte=0"`
}

// SubmitResult is returned after a successful score submission.
type SubmitResult struct {
	Rank          int `json:"rank"`
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}
