package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dict map[string]bool

func (d dict) Contains(w string) bool { return d[w] }

func TestScore(t *testing.T) {
	tests := []struct {
		guess, answer string
		want          []int
	}{
		{"crane", "crane", []int{2, 2, 2, 2, 2}},
		{"apple", "angle", []int{2, 0, 0, 2, 2}},
		{"allee", "apple", []int{2, 1, 0, 0, 2}},
		{"eerie", "there", []int{1, 0, 1, 0, 2}},
		{"speed", "abide", []int{0, 0, 1, 0, 1}},
		{"banana", "ananas", []int{0, 1, 1, 1, 1, 1}},
		{"short", "longer", []int{0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.guess, tt.answer))
		})
	}
}

func TestNew(t *testing.T) {
	g := New("s1", "Planet")
	assert.Equal(t, "planet", g.Answer)
	assert.Equal(t, 6, g.WordLength)
	assert.Equal(t, 7, g.MaxAttempts)
	assert.Equal(t, "______", g.GuessState)
	assert.Equal(t, 0, g.Attempts())
	assert.Equal(t, "", g.RevealedWord())
}

func TestApplyGuess_Validation(t *testing.T) {
	g := New("s1", "crane")

	_, err := g.ApplyGuess("cran", nil)
	var lerr *LengthError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "guess must be 5 letters long", err.Error())

	_, err = g.ApplyGuess("cr4ne", nil)
	assert.ErrorIs(t, err, ErrNotAlpha)

	_, err = g.ApplyGuess("zzzzz", dict{"crane": true})
	assert.ErrorIs(t, err, ErrNotWord)

	assert.Equal(t, 0, g.Attempts(), "rejected guesses do not count")
}

func TestApplyGuess_HintAndWin(t *testing.T) {
	g := New("s1", "crane")

	score, err := g.ApplyGuess("CRISP", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 0, 0, 0}, score)
	assert.Equal(t, "cr___", g.GuessState)
	assert.False(t, g.Over)

	score, err = g.ApplyGuess("trace", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 2, 1, 2}, score)
	assert.Equal(t, "cra_e", g.GuessState)

	score, err = g.ApplyGuess("crane", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2, 2, 2}, score)
	assert.True(t, g.Over)
	assert.True(t, g.Won)
	assert.Equal(t, "crane", g.RevealedWord())

	_, err = g.ApplyGuess("crane", nil)
	assert.ErrorIs(t, err, ErrFinished)
}

func TestApplyGuess_RunsOutOfAttempts(t *testing.T) {
	g := New("s1", "crane")
	for i := 0; i < g.MaxAttempts; i++ {
		require.False(t, g.Over, "attempt %d", i)
		_, err := g.ApplyGuess("light", nil)
		require.NoError(t, err)
	}
	assert.True(t, g.Over)
	assert.False(t, g.Won)
	assert.Equal(t, 6, g.Attempts())
}
