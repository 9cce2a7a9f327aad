package engine

import "fmt"

// Event is anything that can move a State: key events from the player and
// results of the I/O a previous transition asked for.
type Event interface{ event() }

// Key events, produced by physical keys and on-screen controls alike.
type (
	TypeLetter struct{ Letter rune }
	Backspace  struct{}
	Submit     struct{}
)

// Reset rebuilds every structure for WordLength and asks for a new session.
// OldWords are targets already played, passed through to the evaluator.
type Reset struct {
	WordLength int
	OldWords   []string
}

// SessionStarted answers RequestSession.
type SessionStarted struct {
	Epoch   int
	Session string
	Hint    string // optional; "" means none
}

// SessionFailed answers RequestSession when no session could be obtained.
type SessionFailed struct {
	Epoch int
	Err   error
}

// GuessAccepted is a 2xx answer to SendGuess.
type GuessAccepted struct {
	Epoch     int
	Row       int
	Score     []int
	Hint      string // optional; "" means none
	RoundOver bool
	Word      string
}

// GuessRejected is a non-2xx answer to SendGuess.
type GuessRejected struct {
	Epoch  int
	Row    int
	Reason string
}

// GuessFailed is a SendGuess that got no usable answer.
type GuessFailed struct {
	Epoch int
	Row   int
	Err   error
}

// RoundClosed ends the display delay requested by CloseRound.
type RoundClosed struct{ Epoch int }

func (TypeLetter) event()     {}
func (Backspace) event()      {}
func (Submit) event()         {}
func (Reset) event()          {}
func (SessionStarted) event() {}
func (SessionFailed) event()  {}
func (GuessAccepted) event()  {}
func (GuessRejected) event()  {}
func (GuessFailed) event()    {}
func (RoundClosed) event()    {}

// Effect is I/O a transition asks the driver to perform. Its result comes
// back as an Event carrying the same Epoch.
type Effect interface{ effect() }

// RequestSession asks the evaluator for a new session (POST /reset).
// Session is the token being replaced, if any.
type RequestSession struct {
	Epoch      int
	WordLength int
	OldWords   []string
	Session    string
}

// SendGuess asks the evaluator to score Guess for Row (POST /guess).
type SendGuess struct {
	Epoch   int
	Row     int
	Session string
	Guess   string
}

// CloseRound asks the driver to wait for the final row to be shown, then
// deliver RoundClosed.
type CloseRound struct {
	Epoch int
	Won   bool
	Word  string
}

func (RequestSession) effect() {}
func (SendGuess) effect()      {}
func (CloseRound) effect()     {}

// Apply is the single transition function. It returns the next State, the
// effect to run (or nil) and an error describing why the event was refused
// or what went wrong. When the error is an input rejection or ErrStale the
// returned State is the receiver unchanged.
func (s State) Apply(ev Event) (State, Effect, error) {
	switch ev := ev.(type) {
	case TypeLetter:
		return s.typeLetter(ev.Letter)
	case Backspace:
		return s.backspace()
	case Submit:
		return s.submit()
	case Reset:
		return s.reset(ev)
	case SessionStarted:
		return s.sessionStarted(ev)
	case SessionFailed:
		return s.sessionFailed(ev)
	case GuessAccepted:
		return s.accepted(ev)
	case GuessRejected:
		return s.rejected(ev)
	case GuessFailed:
		return s.failed(ev)
	case RoundClosed:
		return s.roundClosed(ev)
	}
	return s, nil, fmt.Errorf("engine: unknown event %T", ev)
}
