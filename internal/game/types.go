// internal/game/types.go
//
// Core type definitions for the evaluator's round engine.
// Defines:
//   - Score codes: per-letter result of a guess (absent/present/correct).
//   - Game: state for a single in-progress or finished round.

package game

import "time"

// Per-letter score codes, as sent on the wire.
const (
	ScoreAbsent  = 0 // letter is not in the answer (or all copies are used up)
	ScorePresent = 1 // letter is in the answer at another position
	ScoreCorrect = 2 // letter is in the right position
)

// Unknown marks a column of GuessState that has not been solved.
const Unknown = '_'

// Game holds the state of one round for one session.
type Game struct {
	ID          string    `json:"id"`           // session identifier
	Answer      string    `json:"answer"`       // the target word (lowercase)
	WordLength  int       `json:"word_length"`  // letters per word
	MaxAttempts int       `json:"max_attempts"` // WordLength + 1
	Guesses     []string  `json:"guesses"`      // guesses made so far (lowercase)
	GuessState  string    `json:"guess_state"`  // solved letters, Unknown elsewhere
	Over        bool      `json:"round_over"`   // won or out of attempts
	Won         bool      `json:"round_won"`    // guessed the answer
	StartedAt   time.Time `json:"started_at"`
}

// Attempts is the number of guesses made.
func (g *Game) Attempts() int { return len(g.Guesses) }

// RevealedWord is the answer once the round is over, "" before.
func (g *Game) RevealedWord() string {
	if g.Over {
		return g.Answer
	}
	return ""
}
