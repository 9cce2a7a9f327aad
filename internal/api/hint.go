package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Unknown is the placeholder for a column the hint does not reveal.
const Unknown = "_"

// Hint is the evaluator's guess_state: one character per column, Unknown
// where the letter is not known yet. On the wire it is a string ("c____"),
// but the array form (["c","_","_","_","_"]) is also accepted.
type Hint string

// NewHint builds a Hint from per-column letters, "" meaning unknown.
func NewHint(cols []string) Hint {
	var b strings.Builder
	for _, c := range cols {
		if c == "" {
			c = Unknown
		}
		b.WriteString(c)
	}
	return Hint(b.String())
}

func (h *Hint) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*h = Hint(s)
		return nil
	}
	var cols []string
	if err := json.Unmarshal(data, &cols); err != nil {
		return fmt.Errorf("guess_state: want string or array of strings: %w", err)
	}
	for i, c := range cols {
		if len([]rune(c)) != 1 {
			return fmt.Errorf("guess_state[%d]: want one character, got %q", i, c)
		}
	}
	*h = NewHint(cols)
	return nil
}
