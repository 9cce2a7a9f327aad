// internal/engine/state.go
//
// Client-side state for one running lingo game.
// Holds, in one owned record:
//   - Board: the typed letters, wordLength+1 rows of wordLength cells.
//   - Scores: the per-cell outcome overlay, parallel to Board.
//   - Known: the per-column hint letters revealed by the evaluator.
//   - Keyboard: the best outcome seen per letter, for keyboard colors.
//   - Round: the current row pointer and terminal result.
//
// A State is a snapshot. Transitions (see Apply) never mutate the receiver;
// they copy what they change and return the new snapshot, so a caller can keep
// an old State around and it will not move underneath it.
package engine

import "fmt"

// Outcome is the evaluator's verdict for one cell, or the Invalid marker
// the client paints over a rejected row.
type Outcome int8

const (
	Invalid Outcome = -1 // rejected guess; client-only, never sent by the evaluator
	Neutral Outcome = 0  // absent, or not evaluated yet
	Present Outcome = 1  // letter is in the word elsewhere
	Correct Outcome = 2  // letter is in the right place
)

func (o Outcome) String() string {
	switch o {
	case Invalid:
		return "invalid"
	case Neutral:
		return "neutral"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("outcome(%d)", int8(o))
}

// WordLengths lists the word lengths the selector offers.
var WordLengths = []int{5, 6, 7, 8, 9}

// SupportedLength reports whether n is one of WordLengths.
func SupportedLength(n int) bool {
	for _, l := range WordLengths {
		if l == n {
			return true
		}
	}
	return false
}

// Round is the Round Controller's view of the game.
type Round struct {
	Row  int    // index of the row being attempted; == rows once exhausted
	Over bool   // terminal; only a reset leaves it
	Won  bool   // every cell of the final row scored Correct
	Word string // target word revealed by the evaluator, if any
}

// Status is a coarse summary of a State for presentation.
type Status int

const (
	StatusActive Status = iota
	StatusClosing       // final row accepted, end-of-round presentation pending
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusClosing:
		return "closing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	}
	return "unknown"
}

// State is the whole client-side game. Exported fields are for reading;
// all changes go through Apply.
type State struct {
	WordLength int
	Session    string
	Board      []Row
	Scores     [][]Outcome
	Known      Row
	Keyboard   Keyboard
	Round      Round

	epoch     int
	resetting bool
	inFlight  bool
	closing   bool
	pending   Round
}

// New returns a fresh State for wordLength with no session.
func New(wordLength int) (State, error) {
	if !SupportedLength(wordLength) {
		return State{}, fmt.Errorf("%w: %d", ErrWordLength, wordLength)
	}
	return fresh(wordLength), nil
}

func fresh(wordLength int) State {
	rows := wordLength + 1
	s := State{
		WordLength: wordLength,
		Board:      make([]Row, rows),
		Scores:     make([][]Outcome, rows),
		Known:      make(Row, wordLength),
		Keyboard:   Keyboard{},
	}
	for i := 0; i < rows; i++ {
		s.Board[i] = make(Row, wordLength)
		s.Scores[i] = make([]Outcome, wordLength)
	}
	return s
}

// Rows is the number of attempts the board holds.
func (s State) Rows() int { return len(s.Board) }

// Epoch identifies the current reset generation. Effects carry it and
// result events must echo it back; results from older epochs are dropped.
func (s State) Epoch() int { return s.epoch }

// Resetting reports whether a new session has been requested but not received.
func (s State) Resetting() bool { return s.resetting }

// InFlight reports whether a guess is awaiting evaluation.
func (s State) InFlight() bool { return s.inFlight }

// Exhausted reports whether every row was used without the evaluator closing
// the round.
func (s State) Exhausted() bool {
	return !s.Round.Over && !s.closing && s.Round.Row >= s.Rows()
}

// Status summarises the round. An exhausted board counts as lost.
func (s State) Status() Status {
	switch {
	case s.closing:
		return StatusClosing
	case s.Round.Over && s.Round.Won:
		return StatusWon
	case s.Round.Over, s.Exhausted():
		return StatusLost
	}
	return StatusActive
}

// Protected reports whether the cell at (row, col) holds the revealed
// first letter and must not be overwritten or erased.
func (s State) Protected(row, col int) bool {
	if col != 0 || len(s.Known) == 0 || s.Known[0] == Empty {
		return false
	}
	if row < 0 || row >= len(s.Board) {
		return false
	}
	return s.Board[row][0] == s.Known[0]
}

// RowInvalid reports whether row is painted as a rejected guess.
func (s State) RowInvalid(row int) bool {
	if row < 0 || row >= len(s.Scores) {
		return false
	}
	return allOutcome(s.Scores[row], Invalid)
}

// clone deep-copies everything a transition may write.
func (s State) clone() State {
	out := s
	out.Board = make([]Row, len(s.Board))
	for i, r := range s.Board {
		out.Board[i] = append(Row(nil), r...)
	}
	out.Scores = make([][]Outcome, len(s.Scores))
	for i, r := range s.Scores {
		out.Scores[i] = append([]Outcome(nil), r...)
	}
	out.Known = append(Row(nil), s.Known...)
	out.Keyboard = s.Keyboard.clone()
	return out
}

func allOutcome(row []Outcome, o Outcome) bool {
	if len(row) == 0 {
		return false
	}
	for _, v := range row {
		if v != o {
			return false
		}
	}
	return true
}
