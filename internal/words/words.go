// internal/words/words.go
//
// Word lists for the evaluator, one list per word length.
//
// Responsibilities:
//   - Load lists for every supported length from a directory or fall back to
//     the embedded defaults in assets/.
//   - Keep a lookup set per length for guess validation.
//   - Pick a random target, avoiding words the player has already had.
//
// Word lists:
//   - A list for length n lives in words<n>.txt, one word per line;
//     '#' lines are comments.
//   - Entries that are not exactly n letters a–z are dropped.
//
// A directory does not need every file; missing lengths use the embedded list.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/lingo/assets"
)

// Lengths are the word lengths the evaluator serves.
var Lengths = []int{5, 6, 7, 8, 9}

// ErrUnsupportedLength is returned for a length with no list.
var ErrUnsupportedLength = errors.New("unsupported word length")

// Lists holds the loaded word lists.
type Lists struct {
	byLen map[int][]string
	sets  map[int]map[string]struct{}
}

// Load reads lists for every length. dir may be empty to use only the
// embedded defaults.
func Load(dir string) (*Lists, error) {
	l := &Lists{
		byLen: make(map[int][]string, len(Lengths)),
		sets:  make(map[int]map[string]struct{}, len(Lengths)),
	}
	for _, n := range Lengths {
		raw, src, err := readList(dir, n)
		if err != nil {
			return nil, err
		}
		list := normalize(raw, n)
		if len(list) == 0 {
			return nil, fmt.Errorf("words: list for length %d is empty (%s)", n, src)
		}
		l.byLen[n] = list
		l.sets[n] = toSet(list)
		log.Debug().Int("length", n).Int("words", len(list)).Str("source", src).Msg("word list loaded")
	}
	return l, nil
}

// readList prefers dir/words<n>.txt and falls back to the embedded list.
func readList(dir string, n int) ([]string, string, error) {
	if dir != "" {
		path := filepath.Join(dir, assets.FileName(n))
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			list, err := assets.ReadLines(f)
			if err != nil {
				return nil, path, fmt.Errorf("read %s: %w", path, err)
			}
			return list, path, nil
		case !errors.Is(err, os.ErrNotExist):
			return nil, path, err
		}
	}
	list, err := assets.WordList(n)
	if err != nil {
		return nil, "embedded", fmt.Errorf("embedded list %d: %w", n, err)
	}
	return list, "embedded", nil
}

// normalize lowercases, drops invalid entries and duplicates, keeps order.
func normalize(in []string, n int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.ToLower(strings.TrimSpace(w))
		if len(w) != n || !IsAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// IsAlpha reports whether s is all lowercase ASCII letters.
func IsAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Supports reports whether a list for length n is loaded.
func (l *Lists) Supports(n int) bool {
	_, ok := l.byLen[n]
	return ok
}

// Random returns a cryptographically random word of length n that is not in
// exclude. If every word is excluded the whole list is used again.
func (l *Lists) Random(n int, exclude []string) (string, error) {
	list, ok := l.byLen[n]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedLength, n)
	}
	if len(exclude) > 0 {
		skip := make(map[string]struct{}, len(exclude))
		for _, w := range exclude {
			skip[strings.ToLower(w)] = struct{}{}
		}
		left := make([]string, 0, len(list))
		for _, w := range list {
			if _, ok := skip[w]; !ok {
				left = append(left, w)
			}
		}
		if len(left) > 0 {
			list = left
		}
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", err
	}
	return list[nBig.Int64()], nil
}

// Contains reports whether w is a known word of its length.
func (l *Lists) Contains(w string) bool {
	w = strings.ToLower(w)
	_, ok := l.sets[len(w)][w]
	return ok
}

// Stats returns the number of words per length.
func (l *Lists) Stats() map[int]int {
	out := make(map[int]int, len(l.byLen))
	for n, list := range l.byLen {
		out[n] = len(list)
	}
	return out
}
