package tui

import (
	"fmt"
	"strings"

	"github.com/robalobadob/lingo/internal/engine"
)

// Screen layout, top to bottom: title, blank, board rows, blank, keyboard
// (or an open overlay), blank, notice, help, response log.
const boardTop = 2

// keyboardTop is the screen row of the first keyboard line.
func (m Model) keyboardTop() int { return boardTop + m.state.Rows() + 1 }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("lingo · %d letters", m.state.WordLength)))
	b.WriteString(" " + dimStyle.Render(m.statusLine()))
	b.WriteString("\n\n")

	for r := range m.state.Board {
		b.WriteString(m.renderRow(r))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	switch m.overlay {
	case overlaySettings:
		b.WriteString(m.renderSettings())
	case overlayEnd:
		b.WriteString(m.renderEnd())
	default:
		b.WriteString(renderKeyboard(m.state.Keyboard))
	}
	b.WriteString("\n\n")

	b.WriteString(noticeStyle.Render(m.notice))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("enter submit · ⌫ erase · ctrl+r new game · tab word length · esc quit"))
	b.WriteByte('\n')
	b.WriteString(m.pane.View())
	return b.String()
}

func (m Model) statusLine() string {
	st := m.state
	switch {
	case st.Resetting():
		return "starting a new game..."
	case st.InFlight():
		return "checking..."
	case st.Session == "":
		return "no game, press ctrl+r"
	}
	return fmt.Sprintf("guess %d/%d", min(st.Round.Row+1, st.Rows()), st.Rows())
}

func (m Model) renderRow(r int) string {
	st := m.state
	cells := make([]string, len(st.Board[r]))
	current := r == st.Round.Row && st.Status() == engine.StatusActive
	for c, ch := range st.Board[r] {
		label := " "
		if ch != engine.Empty {
			label = string(ch)
		}
		style := cellStyle
		switch {
		case st.Scores[r][c] != engine.Neutral || r < st.Round.Row || (r == st.Round.Row && !current):
			style = scoredStyle(cellStyle, st.Scores[r][c])
		case current:
			style = currentRowStyle
		}
		if st.Protected(r, c) {
			style = style.Underline(true)
		}
		cells[c] = style.Render(label)
	}
	return strings.Join(cells, " ")
}

func (m Model) renderSettings() string {
	opts := make([]string, len(engine.WordLengths))
	for i, n := range engine.WordLengths {
		label := fmt.Sprint(n)
		if i == m.choice {
			opts[i] = selectedStyle.Render(label)
		} else {
			opts[i] = " " + label + " "
		}
	}
	return overlayStyle.Render("word length\n\n" + strings.Join(opts, " ") +
		"\n\n" + helpStyle.Render("←/→ choose · enter new game · esc cancel"))
}

func (m Model) renderEnd() string {
	var head string
	switch m.state.Status() {
	case engine.StatusWon:
		head = wonStyle.Render("solved!")
	default:
		head = lostStyle.Render("out of guesses")
	}
	body := head
	if w := m.state.Round.Word; w != "" {
		body += "\n\nthe word was " + strings.ToUpper(w)
	}
	return overlayStyle.Render(body + "\n\n" + helpStyle.Render("enter new game · tab word length · esc close"))
}
