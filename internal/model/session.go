package model

import "time"

// SessionStatus enumerates quiz session states.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
)

// QuizSession is a user's single attempt at one day's quiz. One row per
// (user_id, quiz_date). All clocks are derived server-side from StartedAt
// and TurnStartedAt; the row becomes immutable once CompletedAt is set.
type QuizSession struct {
	ID            int64         `json:"id"`
	UserID        int           `json:"user_id"`
	QuizDate      time.Time     `json:"quiz_date"`
	QuizIndex     int           `json:"quiz_index"`
	StartedAt     time.Time     `json:"started_at"`
	TurnStartedAt time.Time     `json:"turn_started_at"`
	Score         int           `json:"score"`
	HintsUsed     int           `json:"hints_used"`
	CorrectRanks  []int32       `json:"correct_ranks"`
	RevealedRanks []int32       `json:"revealed_ranks"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
	Status        SessionStatus `json:"status"`
}

// StartSessionRequest is the payload for starting or resuming a session.
type StartSessionRequest struct {
	QuizDate string `json:"quiz_date" binding:"required,datetime=2006-01-02"`
}

// SaveProgressRequest is the payload for a progress save. The whole update
// is applied atomically or not at all.
type SaveProgressRequest struct {
	QuizDate      string  `json:"quiz_date" binding:"required,datetime=2006-01-02"`
	Score         int     `json:"score" binding:"gte=0"`
	HintsUsed     int     `json:"hints_used" binding:"gte=0"`
	CorrectRanks  []int32 `json:"correct_ranks" binding:"omitempty,dive,gte=1"`
	RevealedRanks []int32 `json:"revealed_ranks" binding:"omitempty,dive,gte=1"`
	ResetTurn     bool    `json:"reset_turn"`
}
