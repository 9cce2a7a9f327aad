// internal/engine/protocol.go
//
// Guess Submission Protocol, response side.
// A response is matched to the outstanding SendGuess by epoch and row;
// anything else is ErrStale. An accepted response is validated in full
// before any of it is applied, then overlay, keyboard aggregate, hint and
// round pointer are committed in one transition.

package engine

import "fmt"

// awaiting reports whether s is waiting on a guess result for (epoch, row).
func (s State) awaiting(epoch, row int) bool {
	return s.inFlight && epoch == s.epoch && row == s.Round.Row
}

func (s State) accepted(ev GuessAccepted) (State, Effect, error) {
	if !s.awaiting(ev.Epoch, ev.Row) {
		return s, nil, ErrStale
	}
	score, err := s.checkScore(ev.Score)
	var known Row
	if err == nil && ev.Hint != "" {
		known, err = parseHint(ev.Hint, s.WordLength)
	}
	if err != nil {
		next := s
		next.inFlight = false
		return next, nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}

	next := s.clone()
	next.inFlight = false
	row := next.Round.Row
	copy(next.Scores[row], score)
	next.Keyboard.fold(next.Board[row], score)

	if known != nil {
		next.Known = known
		if known[0] != Empty && row+1 < next.Rows() {
			next.Board[row+1][0] = known[0]
		}
	}

	if ev.RoundOver {
		next.closing = true
		next.pending = Round{
			Row:  row,
			Over: true,
			Won:  allOutcome(score, Correct),
			Word: ev.Word,
		}
		return next, CloseRound{Epoch: next.epoch, Won: next.pending.Won, Word: ev.Word}, nil
	}
	next.Round.Row++
	return next, nil, nil
}

// checkScore converts a wire score vector, refusing anything that is not
// exactly WordLength codes from {0, 1, 2}.
func (s State) checkScore(raw []int) ([]Outcome, error) {
	if len(raw) != s.WordLength {
		return nil, fmt.Errorf("score has %d entries, want %d", len(raw), s.WordLength)
	}
	out := make([]Outcome, len(raw))
	for i, v := range raw {
		switch o := Outcome(v); o {
		case Neutral, Present, Correct:
			out[i] = o
		default:
			return nil, fmt.Errorf("score[%d] = %d is not an outcome", i, v)
		}
	}
	return out, nil
}

func (s State) rejected(ev GuessRejected) (State, Effect, error) {
	if !s.awaiting(ev.Epoch, ev.Row) {
		return s, nil, ErrStale
	}
	next := s.clone()
	next.inFlight = false
	for i := range next.Scores[ev.Row] {
		next.Scores[ev.Row][i] = Invalid
	}
	return next, nil, &RejectedError{Reason: ev.Reason}
}

func (s State) failed(ev GuessFailed) (State, Effect, error) {
	if !s.awaiting(ev.Epoch, ev.Row) {
		return s, nil, ErrStale
	}
	next := s
	next.inFlight = false
	if ev.Err == nil {
		return next, nil, ErrTransport
	}
	return next, nil, fmt.Errorf("%w: %w", ErrTransport, ev.Err)
}
