package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/lingo/internal/engine"
)

const (
	keyEnter     = "ENTER"
	keyBackspace = "⌫"
	keyGap       = 1 // columns between keys
)

var keyRows = [][]string{
	strings.Split("QWERTYUIOP", ""),
	strings.Split("ASDFGHJKL", ""),
	append(append([]string{keyEnter}, strings.Split("ZXCVBNM", "")...), keyBackspace),
}

// rowIndent is the left offset of each keyboard row, in columns.
var rowIndent = []int{0, 2, 0}

// keySpan is where one on-screen key is drawn, relative to the top-left of
// the keyboard block. x1 is exclusive.
type keySpan struct {
	label  string
	row    int
	x0, x1 int
}

// keyLayout computes the spans of every key. View and mouse hit-testing both
// use it, so a click lands on exactly the key drawn under it.
func keyLayout() []keySpan {
	var out []keySpan
	for r, row := range keyRows {
		x := rowIndent[r]
		for _, label := range row {
			w := lipgloss.Width(label) + keyStyle.GetHorizontalPadding()
			out = append(out, keySpan{label: label, row: r, x0: x, x1: x + w})
			x += w + keyGap
		}
	}
	return out
}

// keyAt returns the label of the key at (x, y) within the keyboard block.
func keyAt(x, y int) (string, bool) {
	for _, k := range keyLayout() {
		if k.row == y && x >= k.x0 && x < k.x1 {
			return k.label, true
		}
	}
	return "", false
}

// renderKeyboard draws the keyboard colored from the aggregate.
func renderKeyboard(kb engine.Keyboard) string {
	lines := make([]string, len(keyRows))
	for r := range keyRows {
		lines[r] = strings.Repeat(" ", rowIndent[r])
	}
	for _, k := range keyLayout() {
		style := keyStyle
		if len(k.label) == 1 {
			if o, ok := kb.Get(k.label[0]); ok {
				style = scoredStyle(keyStyle, o)
			}
		}
		if k.x0 > rowIndent[k.row] {
			lines[k.row] += strings.Repeat(" ", keyGap)
		}
		lines[k.row] += style.Render(k.label)
	}
	return strings.Join(lines, "\n")
}
