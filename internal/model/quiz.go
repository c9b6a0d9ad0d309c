package model

// Answer is one ranked entry in a quiz: the canonical name, a display stat
// string, and the alternate spellings/nicknames accepted for it.
type Answer struct {
	Rank    int      `json:"rank"`
	Name    string   `json:"name"`
	Stat    string   `json:"stat"`
	Aliases []string `json:"aliases,omitempty"`
}

// QuizDefinition is one day's quiz: a fixed, ordered top-N list plus a
// parallel hint list (hint i belongs to rank i+1). Loaded read-only from
// static content and never mutated.
type QuizDefinition struct {
	Index   int      `json:"index"`
	Title   string   `json:"title"`
	Answers []Answer `json:"answers"`
	Hints   []string `json:"hints"`
}

// VerifyGuessRequest is the payload for a free-text guess check.
// QuizIndex nil means "today's quiz".
type VerifyGuessRequest struct {
	Guess         string  `json:"guess" binding:"required,max=120"`
	QuizIndex     *int    `json:"quiz_index" binding:"omitempty,gte=0"`
	AnsweredRanks []int32 `json:"answered_ranks" binding:"omitempty,dive,gte=1"`
}

// RevealRequest asks for the answer at an explicit rank (turn timeout).
type RevealRequest struct {
	Rank      int  `json:"rank" binding:"required,gte=1"`
	QuizIndex *int `json:"quiz_index" binding:"omitempty,gte=0"`
}

// AnswerReveal is the client-visible slice of an Answer.
type AnswerReveal struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Stat string `json:"stat"`
}

// GuessResult is the outcome of a verify-guess or reveal call.
type GuessResult struct {
	Correct bool          `json:"correct"`
	Answer  *AnswerReveal `json:"answer,omitempty"`
}
