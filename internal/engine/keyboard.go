package engine

// Keyboard is the per-letter aggregate used to color the on-screen keyboard.
// Letters never attempted are absent.
type Keyboard map[byte]Outcome

// Get returns the recorded outcome for letter and whether it was ever attempted.
func (k Keyboard) Get(letter byte) (Outcome, bool) {
	o, ok := k[letter]
	return o, ok
}

// Record folds one (letter, outcome) pair into the aggregate.
//
// A recorded Correct or Present is never lowered; a stale Invalid is
// replaced by the next real outcome.
func (k Keyboard) Record(letter byte, o Outcome) {
	cur, seen := k[letter]
	switch {
	case !seen:
		k[letter] = o
	case o > cur:
		k[letter] = o
	case o == Neutral && cur < Neutral:
		k[letter] = o
	}
}

// fold records every position of row against its own outcome. Repeated
// letters compete only with the aggregate, not with each other.
func (k Keyboard) fold(row Row, score []Outcome) {
	for i, c := range row {
		if c == Empty || i >= len(score) {
			continue
		}
		k.Record(c, score[i])
	}
}

func (k Keyboard) clone() Keyboard {
	out := make(Keyboard, len(k))
	for l, o := range k {
		out[l] = o
	}
	return out
}
