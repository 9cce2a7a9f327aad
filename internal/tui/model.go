// internal/tui/model.go
//
// Bubble Tea front end for the lingo engine.
// Responsibilities:
//   - Translate keys and mouse clicks into engine events through dispatch.
//   - Run the effects the engine asks for (evaluator calls, reveal delay) as
//     tea.Cmds and feed their results back as events.
//   - Keep the response log, the settings and end-of-round overlays, and the
//     words already played so later rounds avoid them.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/robalobadob/lingo/internal/api"
	"github.com/robalobadob/lingo/internal/engine"
	"github.com/robalobadob/lingo/internal/evaluator"
)

// Evaluator is the part of the evaluator client the model calls.
type Evaluator interface {
	Reset(ctx context.Context, req api.ResetRequest) (*api.GameStatus, error)
	Guess(ctx context.Context, req api.GuessRequest) (*api.GuessResponse, error)
}

// Options configures a Model.
type Options struct {
	WordLength  int
	RevealDelay time.Duration // wait before the end-of-round overlay
	Timeout     time.Duration // per evaluator call
	Logger      zerolog.Logger
}

type overlay int

const (
	overlayNone overlay = iota
	overlaySettings
	overlayEnd
)

// resultMsg carries the result of an effect back into Update.
type resultMsg struct{ ev engine.Event }

// Model is the tea.Model for one game screen.
type Model struct {
	eval  Evaluator
	opts  Options
	log   zerolog.Logger
	state engine.State

	played  []string // revealed words, sent as old_words
	lines   []string // response log
	pane    viewport.Model
	notice  string
	overlay overlay
	choice  int // index into engine.WordLengths while the selector is open

	width    int
	height   int
	initCmd  tea.Cmd
	quitting bool
}

// NewModel builds a model and queues the request for the first session.
func NewModel(eval Evaluator, opts Options) (Model, error) {
	st, err := engine.New(opts.WordLength)
	if err != nil {
		return Model{}, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	m := Model{
		eval:   eval,
		opts:   opts,
		log:    opts.Logger,
		state:  st,
		pane:   viewport.New(60, 6),
		width:  80,
		height: 30,
	}
	m.resizePane()
	var cmd tea.Cmd
	m, cmd = m.dispatch(engine.Reset{WordLength: opts.WordLength})
	m.initCmd = cmd
	return m, nil
}

// State returns the engine snapshot being displayed.
func (m Model) State() engine.State { return m.state }

func (m Model) Init() tea.Cmd { return m.initCmd }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePane()
		return m, nil

	case resultMsg:
		return m.dispatch(msg.ev)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.overlay {
		case overlaySettings:
			return m.updateSettings(msg)
		case overlayEnd:
			return m.updateEnd(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+r":
		return m.dispatch(engine.Reset{WordLength: m.state.WordLength, OldWords: m.played})
	case "ctrl+s", "tab":
		m.openSettings()
		return m, nil
	case "enter":
		return m.dispatch(engine.Submit{})
	case "backspace":
		return m.dispatch(engine.Backspace{})
	case "pgup", "up":
		m.pane.LineUp(1)
		return m, nil
	case "pgdown", "down":
		m.pane.LineDown(1)
		return m, nil
	}
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		return m.dispatch(engine.TypeLetter{Letter: msg.Runes[0]})
	}
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.choice > 0 {
			m.choice--
		}
	case "right", "l":
		if m.choice < len(engine.WordLengths)-1 {
			m.choice++
		}
	case "enter":
		m.overlay = overlayNone
		return m.dispatch(engine.Reset{WordLength: engine.WordLengths[m.choice], OldWords: m.played})
	case "esc", "ctrl+s", "tab":
		m.overlay = overlayNone
	}
	return m, nil
}

func (m Model) updateEnd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "ctrl+r":
		m.overlay = overlayNone
		return m.dispatch(engine.Reset{WordLength: m.state.WordLength, OldWords: m.played})
	case "ctrl+s", "tab":
		m.openSettings()
	case "esc":
		m.overlay = overlayNone
	}
	return m, nil
}

// updateMouse routes left clicks on the on-screen keyboard into dispatch,
// exactly as the matching physical key would.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlay != overlayNone || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	label, ok := keyAt(msg.X, msg.Y-m.keyboardTop())
	if !ok {
		return m, nil
	}
	switch label {
	case keyEnter:
		return m.dispatch(engine.Submit{})
	case keyBackspace:
		return m.dispatch(engine.Backspace{})
	}
	return m.dispatch(engine.TypeLetter{Letter: rune(label[0])})
}

func (m *Model) openSettings() {
	m.overlay = overlaySettings
	m.choice = 0
	for i, n := range engine.WordLengths {
		if n == m.state.WordLength {
			m.choice = i
		}
	}
}

// dispatch is the single entry point into the engine. It applies ev, reports
// any refusal or failure, and turns the resulting effect into a command.
func (m Model) dispatch(ev engine.Event) (Model, tea.Cmd) {
	if isKey(ev) {
		m.notice = ""
	}
	next, eff, err := m.state.Apply(ev)
	if err != nil {
		if errors.Is(err, engine.ErrStale) {
			m.log.Debug().Str("event", fmt.Sprintf("%T", ev)).Msg("dropped stale result")
			return m, nil
		}
		m.report(ev, err)
	}
	rows := m.state.Rows()
	m.state = next
	if next.Rows() != rows {
		m.resizePane()
	}
	m.observe(ev, err)
	return m, m.run(eff)
}

func isKey(ev engine.Event) bool {
	switch ev.(type) {
	case engine.TypeLetter, engine.Backspace, engine.Submit, engine.Reset:
		return true
	}
	return false
}

// report surfaces err: input refusals as a transient notice, evaluator
// problems in the response log as well.
func (m *Model) report(ev engine.Event, err error) {
	var rej *engine.RejectedError
	switch {
	case errors.Is(err, engine.ErrInputRejected), errors.Is(err, engine.ErrWordLength):
		m.notice = err.Error()
	case errors.As(err, &rej):
		m.notice = rej.Error()
		m.appendLog(fmt.Sprintf("rejected: %s", rej.Reason))
	default:
		m.notice = err.Error()
		m.appendLog("error: " + err.Error())
		m.log.Warn().Err(err).Str("event", fmt.Sprintf("%T", ev)).Msg("evaluator exchange failed")
	}
}

// observe logs what a successful transition did and opens the end-of-round
// overlay once the round is decided.
func (m *Model) observe(ev engine.Event, err error) {
	if err != nil {
		return
	}
	switch ev := ev.(type) {
	case engine.SessionStarted:
		m.appendLog(fmt.Sprintf("new game: %d letters, %d guesses", m.state.WordLength, m.state.Rows()))
		m.log.Info().Int("length", m.state.WordLength).Msg("session started")
	case engine.GuessAccepted:
		m.appendLog(fmt.Sprintf("%s %v", m.state.Board[ev.Row].Word(), ev.Score))
		if m.state.Exhausted() {
			m.appendLog("out of guesses")
			m.log.Warn().Int("rows", m.state.Rows()).Msg("evaluator did not end the round after the last row; treating it as lost")
			m.overlay = overlayEnd
		}
	case engine.RoundClosed:
		r := m.state.Round
		if r.Word != "" {
			m.played = append(m.played, strings.ToLower(r.Word))
		}
		m.log.Info().Bool("won", r.Won).Str("word", r.Word).Msg("round over")
		m.overlay = overlayEnd
	}
}

// run turns an engine effect into the command performing it.
func (m Model) run(eff engine.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case engine.RequestSession:
		return m.requestSession(eff)
	case engine.SendGuess:
		return m.sendGuess(eff)
	case engine.CloseRound:
		return tea.Tick(m.opts.RevealDelay, func(time.Time) tea.Msg {
			return resultMsg{engine.RoundClosed{Epoch: eff.Epoch}}
		})
	}
	return nil
}

func (m Model) requestSession(eff engine.RequestSession) tea.Cmd {
	eval, timeout := m.eval, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		req := api.ResetRequest{WordLength: eff.WordLength, OldWords: eff.OldWords}
		if req.OldWords == nil {
			req.OldWords = []string{}
		}
		if eff.Session != "" {
			req.SessionID = &eff.Session
		}
		st, err := eval.Reset(ctx, req)
		if err != nil {
			return resultMsg{engine.SessionFailed{Epoch: eff.Epoch, Err: err}}
		}
		return resultMsg{engine.SessionStarted{Epoch: eff.Epoch, Session: st.SessionID, Hint: string(st.GuessState)}}
	}
}

func (m Model) sendGuess(eff engine.SendGuess) tea.Cmd {
	eval, timeout := m.eval, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := eval.Guess(ctx, api.GuessRequest{Guess: strings.ToLower(eff.Guess), SessionID: eff.Session})
		if rej, ok := evaluator.IsRejected(err); ok {
			return resultMsg{engine.GuessRejected{Epoch: eff.Epoch, Row: eff.Row, Reason: rej.Detail}}
		}
		if err != nil {
			return resultMsg{engine.GuessFailed{Epoch: eff.Epoch, Row: eff.Row, Err: err}}
		}
		return resultMsg{engine.GuessAccepted{
			Epoch:     eff.Epoch,
			Row:       eff.Row,
			Score:     res.Score,
			Hint:      string(res.GuessState),
			RoundOver: res.RoundOver,
			Word:      res.CurrentWord,
		}}
	}
}

func (m *Model) appendLog(line string) {
	m.lines = append(m.lines, line)
	m.pane.SetContent(strings.Join(m.lines, "\n"))
	m.pane.GotoBottom()
}

// resizePane fits the response log below the keyboard so the whole view
// stays within the terminal height.
func (m *Model) resizePane() {
	m.pane.Width = m.width
	h := m.height - m.keyboardTop() - len(keyRows) - 4
	if h < 3 {
		h = 3
	}
	m.pane.Height = h
	m.pane.GotoBottom()
}
