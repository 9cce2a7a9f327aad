package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/lingo/internal/game"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "lingo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

func TestStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			g := game.New("s1", "crane")
			_, err = g.ApplyGuess("crisp", nil)
			require.NoError(t, err)
			require.NoError(t, s.Save(ctx, g))

			got, err := s.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, "crane", got.Answer)
			assert.Equal(t, []string{"crisp"}, got.Guesses)
			assert.Equal(t, "cr___", got.GuessState)
			assert.Equal(t, 6, got.MaxAttempts)

			got.Guesses = append(got.Guesses, "mutated")
			again, err := s.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Len(t, again.Guesses, 1, "stored copy must not alias the caller's")

			_, err = g.ApplyGuess("crane", nil)
			require.NoError(t, err)
			require.NoError(t, s.Save(ctx, g))
			again, err = s.Get(ctx, "s1")
			require.NoError(t, err)
			assert.True(t, again.Over)
			assert.True(t, again.Won)
		})
	}
}

func TestStore_Prune(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, game.New("old", "crane")))

			n, err := s.Prune(ctx, time.Now().Add(-time.Hour))
			require.NoError(t, err)
			assert.Equal(t, 0, n)

			n, err = s.Prune(ctx, time.Now().Add(time.Hour))
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			_, err = s.Get(ctx, "old")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestOpenSQLite_MigratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lingo.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), game.New("s1", "crane")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	var applied int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)

	_, err = s.Get(context.Background(), "s1")
	assert.NoError(t, err)
}
