// internal/game/engine.go
//
// Round engine for one lingo session.
// Responsibilities:
//   - Create rounds of any supported length with WordLength+1 attempts.
//   - Validate and apply guesses (length, alphabetic, optional dictionary).
//   - Score guesses using the two-pass algorithm.
//   - Track the solved-letter hint and the playing → won/lost transition.
package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrFinished = errors.New("round is over, reset to start a new round")
	ErrNotAlpha = errors.New("guess must contain letters only")
	ErrNotWord  = errors.New("not a word")
)

// LengthError is a guess of the wrong length.
type LengthError struct{ Want int }

func (e *LengthError) Error() string { return fmt.Sprintf("guess must be %d letters long", e.Want) }

// Dictionary decides which guesses are real words.
type Dictionary interface {
	Contains(word string) bool
}

// New starts a round for session id with the given answer.
func New(id, answer string) *Game {
	answer = strings.ToLower(answer)
	return &Game{
		ID:          id,
		Answer:      answer,
		WordLength:  len(answer),
		MaxAttempts: len(answer) + 1,
		Guesses:     []string{},
		GuessState:  strings.Repeat(string(Unknown), len(answer)),
		StartedAt:   time.Now().UTC(),
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
// dict may be nil to accept any alphabetic guess of the right length.
//
// State transitions:
//   - guess == answer → Over, Won.
//   - attempts reach MaxAttempts → Over.
func (g *Game) ApplyGuess(guess string, dict Dictionary) ([]int, error) {
	if g.Over {
		return nil, ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len(guess) != g.WordLength {
		return nil, &LengthError{Want: g.WordLength}
	}
	if !isAlpha(guess) {
		return nil, ErrNotAlpha
	}
	if dict != nil && !dict.Contains(guess) {
		return nil, ErrNotWord
	}

	score := Score(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)

	state := []byte(g.GuessState)
	for i, s := range score {
		if s == ScoreCorrect {
			state[i] = g.Answer[i]
		}
	}
	g.GuessState = string(state)

	g.Won = guess == g.Answer
	g.Over = g.Won || len(g.Guesses) >= g.MaxAttempts
	return score, nil
}

// Score compares guess vs. answer:
//
//	Pass 1: mark exact matches and count the remaining answer letters.
//	Pass 2: for non-matches, mark present while unused copies remain.
//
// Repeated letters in the guess only score as many times as the answer
// holds them.
func Score(guess, answer string) []int {
	n := len(answer)
	out := make([]int, n)
	if len(guess) != n {
		return out
	}

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			out[i] = ScoreCorrect
		} else {
			counts[idx(answer[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if out[i] == ScoreCorrect {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			out[i] = ScorePresent
			counts[j]--
		}
	}
	return out
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c) - 'a' }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
