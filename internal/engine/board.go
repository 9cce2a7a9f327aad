package engine

import (
	"fmt"
	"strings"
)

// Empty is the marker for a cell with no letter.
const Empty byte = 0

// Placeholder marks an unknown column in a hint string.
const Placeholder = '_'

// Row is one guess attempt: wordLength cells, each Empty or 'A'..'Z'.
type Row []byte

// FirstEmpty returns the index of the first empty cell, or -1 if the row is full.
func (r Row) FirstEmpty() int {
	for i, c := range r {
		if c == Empty {
			return i
		}
	}
	return -1
}

// LastFilled returns the index of the last non-empty cell, or -1.
func (r Row) LastFilled() int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] != Empty {
			return i
		}
	}
	return -1
}

// Full reports whether every cell holds a letter.
func (r Row) Full() bool { return len(r) > 0 && r.FirstEmpty() < 0 }

// Word returns the letters of a full row. Empty cells render as Placeholder.
func (r Row) Word() string {
	var b strings.Builder
	b.Grow(len(r))
	for _, c := range r {
		if c == Empty {
			b.WriteByte(Placeholder)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// upperLetter maps a-z/A-Z to 'A'..'Z'.
func upperLetter(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r - 'a' + 'A'), true
	case r >= 'A' && r <= 'Z':
		return byte(r), true
	}
	return 0, false
}

// parseHint turns a hint string into a Known row. Every column must be a
// letter or the placeholder, and there must be exactly n of them.
func parseHint(hint string, n int) (Row, error) {
	runes := []rune(hint)
	if len(runes) != n {
		return nil, fmt.Errorf("hint has %d columns, want %d", len(runes), n)
	}
	out := make(Row, n)
	for i, r := range runes {
		if r == Placeholder {
			continue
		}
		c, ok := upperLetter(r)
		if !ok {
			return nil, fmt.Errorf("hint column %d is %q", i, r)
		}
		out[i] = c
	}
	return out, nil
}
