package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/lingo/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("238"))

	currentRowStyle = cellStyle.Background(lipgloss.Color("25"))

	keyStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("25")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	wonStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	lostStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// scoredStyle colors a cell or key by its outcome.
func scoredStyle(base lipgloss.Style, o engine.Outcome) lipgloss.Style {
	switch o {
	case engine.Correct:
		return base.Background(lipgloss.Color("28")).Foreground(lipgloss.Color("255"))
	case engine.Present:
		return base.Background(lipgloss.Color("136")).Foreground(lipgloss.Color("255"))
	case engine.Invalid:
		return base.Background(lipgloss.Color("124")).Foreground(lipgloss.Color("255"))
	}
	return base.Background(lipgloss.Color("240")).Foreground(lipgloss.Color("250"))
}
