// internal/api/types.go
//
// Wire types shared by the evaluator server and the terminal client.
//
// Endpoints:
//   - POST /reset              ResetRequest  → GameStatus
//   - POST /guess              GuessRequest  → GuessResponse
//   - GET  /status/{session}                  → GameStatus
//
// Failures on any endpoint answer a non-2xx status with ErrorResponse.

package api

// ResetRequest starts (or restarts) a round.
// SessionID is the token being replaced; nil asks for a fresh one.
type ResetRequest struct {
	WordLength int      `json:"word_length"`
	OldWords   []string `json:"old_words"`
	SessionID  *string  `json:"session_id"`
}

// GameStatus describes a session. Returned by /reset and /status.
type GameStatus struct {
	SessionID   string   `json:"session_id"`
	WordLength  int      `json:"word_length,omitempty"`
	Attempts    int      `json:"attempts"`
	MaxAttempts int      `json:"max_attempts,omitempty"`
	Guesses     []string `json:"guesses,omitempty"`
	GuessState  Hint     `json:"guess_state,omitempty"`
	RoundOver   bool     `json:"round_over"`
	RoundWon    bool     `json:"round_won"`
}

// GuessRequest submits one guess for a session.
type GuessRequest struct {
	Guess     string `json:"guess"`
	SessionID string `json:"session_id"`
}

// GuessResponse is the per-letter verdict for a guess.
// Score codes: 0 absent, 1 present elsewhere, 2 correct.
// CurrentWord is only set once the round is over.
type GuessResponse struct {
	Score       []int  `json:"score"`
	Attempts    int    `json:"attempts,omitempty"`
	RoundOver   bool   `json:"round_over,omitempty"`
	RoundWon    bool   `json:"round_won,omitempty"`
	GuessState  Hint   `json:"guess_state,omitempty"`
	CurrentWord string `json:"current_word,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail,omitempty"`
}
