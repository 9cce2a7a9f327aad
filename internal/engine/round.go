package engine

import (
	"errors"
	"fmt"
)

// reset discards every structure and the session, and asks for a new one.
// Until SessionStarted or SessionFailed arrives, all input is refused.
func (s State) reset(ev Reset) (State, Effect, error) {
	if !SupportedLength(ev.WordLength) {
		return s, nil, fmt.Errorf("%w: %d", ErrWordLength, ev.WordLength)
	}
	next := fresh(ev.WordLength)
	next.epoch = s.epoch + 1
	next.resetting = true
	return next, RequestSession{
		Epoch:      next.epoch,
		WordLength: ev.WordLength,
		OldWords:   append([]string(nil), ev.OldWords...),
		Session:    s.Session,
	}, nil
}

func (s State) sessionStarted(ev SessionStarted) (State, Effect, error) {
	if !s.resetting || ev.Epoch != s.epoch {
		return s, nil, ErrStale
	}
	var known Row
	var err error
	if ev.Session == "" {
		err = errors.New("no session id")
	} else if ev.Hint != "" {
		known, err = parseHint(ev.Hint, s.WordLength)
	}
	if err != nil {
		next := s
		next.resetting = false
		return next, nil, fmt.Errorf("%w: %v", ErrProtocolViolation, err)
	}

	next := s.clone()
	next.resetting = false
	next.Session = ev.Session
	if known != nil {
		next.Known = known
		if known[0] != Empty {
			next.Board[0][0] = known[0]
		}
	}
	return next, nil, nil
}

func (s State) sessionFailed(ev SessionFailed) (State, Effect, error) {
	if !s.resetting || ev.Epoch != s.epoch {
		return s, nil, ErrStale
	}
	next := s
	next.resetting = false
	if ev.Err == nil {
		return next, nil, ErrTransport
	}
	return next, nil, fmt.Errorf("reset failed: %w", ev.Err)
}

// roundClosed moves a closing round to its terminal result.
func (s State) roundClosed(ev RoundClosed) (State, Effect, error) {
	if !s.closing || ev.Epoch != s.epoch {
		return s, nil, ErrStale
	}
	next := s
	next.closing = false
	next.Round = s.pending
	next.pending = Round{}
	return next, nil, nil
}
