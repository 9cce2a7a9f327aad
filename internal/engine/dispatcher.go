// internal/engine/dispatcher.go
//
// Input Dispatcher: the only code that writes letters into the Board.
// Every key event is checked against round/row legality first; a refused
// event returns the receiver untouched together with an ErrInputRejected.

package engine

// editable reports why the current row cannot be edited, or nil.
func (s State) editable() error {
	switch {
	case s.resetting:
		return ErrAwaitingSession
	case s.Round.Over, s.closing:
		return ErrRoundOver
	case s.Round.Row >= s.Rows():
		return ErrOutOfRows
	case s.inFlight:
		return ErrInFlight
	}
	return nil
}

func (s State) typeLetter(r rune) (State, Effect, error) {
	if err := s.editable(); err != nil {
		return s, nil, err
	}
	ch, ok := upperLetter(r)
	if !ok {
		return s, nil, ErrNotLetter
	}
	row := s.Round.Row
	col := s.Board[row].FirstEmpty()
	if col < 0 {
		return s, nil, ErrRowFull
	}
	if col == 0 && s.Known[0] != Empty {
		return s, nil, ErrProtectedCell
	}

	next := s.clone()
	next.Board[row][col] = ch
	return next, nil, nil
}

func (s State) backspace() (State, Effect, error) {
	if err := s.editable(); err != nil {
		return s, nil, err
	}
	row := s.Round.Row
	if s.Board[row].FirstEmpty() == 0 {
		return s, nil, ErrRowEmpty
	}
	col := s.Board[row].LastFilled()
	if col < 0 {
		return s, nil, ErrRowEmpty
	}
	if s.Protected(row, col) {
		return s, nil, ErrProtectedCell
	}

	next := s.clone()
	next.Board[row][col] = Empty
	// Editing a rejected row clears the rejection so it can be resubmitted.
	if allOutcome(next.Scores[row], Invalid) {
		for i := range next.Scores[row] {
			next.Scores[row][i] = Neutral
		}
	}
	return next, nil, nil
}

func (s State) submit() (State, Effect, error) {
	if err := s.editable(); err != nil {
		return s, nil, err
	}
	row := s.Round.Row
	if !s.Board[row].Full() {
		return s, nil, ErrRowIncomplete
	}
	if s.Session == "" {
		return s, nil, ErrNoSession
	}
	if allOutcome(s.Scores[row], Invalid) {
		return s, nil, ErrEditRequired
	}

	next := s.clone()
	next.inFlight = true
	return next, SendGuess{
		Epoch:   s.epoch,
		Row:     row,
		Session: s.Session,
		Guess:   s.Board[row].Word(),
	}, nil
}
