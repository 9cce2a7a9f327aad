package engine

import "errors"

// Error classes. Every error Apply returns matches exactly one of these
// with errors.Is, except *RejectedError which is matched with errors.As.
var (
	// ErrInputRejected covers key events the current state does not allow.
	// They never reach the network.
	ErrInputRejected = errors.New("input rejected")

	// ErrTransport is a failed round-trip to the evaluator. State is unchanged.
	ErrTransport = errors.New("could not reach the evaluator")

	// ErrProtocolViolation is a success response that does not fit the
	// contract. It is handled like ErrTransport: nothing is applied.
	ErrProtocolViolation = errors.New("malformed evaluator response")

	// ErrStale is a result for a request this state no longer waits on,
	// e.g. a guess answered after a reset. Callers drop it silently.
	ErrStale = errors.New("stale result")

	// ErrWordLength is an unsupported word length.
	ErrWordLength = errors.New("unsupported word length")
)

var (
	ErrRowIncomplete   = rejected("please fill the entire row before submitting")
	ErrNoSession       = rejected("no session, please reset the game first")
	ErrAwaitingSession = rejected("waiting for a new game from the evaluator")
	ErrInFlight        = rejected("a guess is already being evaluated")
	ErrRoundOver       = rejected("round is over, reset to play again")
	ErrOutOfRows       = rejected("no guesses left")
	ErrEditRequired    = rejected("edit the row before submitting it again")
	ErrRowFull         = rejected("row is full")
	ErrRowEmpty        = rejected("nothing to delete")
	ErrProtectedCell   = rejected("the revealed letter cannot be changed")
	ErrNotLetter       = rejected("only letters A-Z can be typed")
)

// inputError reads as its own message but matches ErrInputRejected.
type inputError struct{ msg string }

func (e *inputError) Error() string        { return e.msg }
func (e *inputError) Is(target error) bool { return target == ErrInputRejected }

func rejected(msg string) error { return &inputError{msg: msg} }

// RejectedError is the evaluator refusing a guess (a non-2xx answer).
// The row is painted Invalid and stays editable.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return "guess rejected"
	}
	return "guess rejected: " + e.Reason
}
