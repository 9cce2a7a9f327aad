// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// The default backing for evaluator sessions when no database is configured.
//
// Characteristics:
//   - Stores copies of *game.Game keyed by session ID in a map, so a caller
//     mutating a game it fetched never races another request.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/lingo/internal/game"
)

// ErrNotFound is returned by Get for an unknown session.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for evaluator sessions.
type Store interface {
	// Save persists or replaces the game for g.ID.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by session ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Prune removes sessions last saved before cutoff and reports how many.
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

type memEntry struct {
	g       game.Game
	savedAt time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex        // guards games map
	games map[string]memEntry // keyed by Game.ID
	now   func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]memEntry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = memEntry{g: copyGame(g), savedAt: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		g := copyGame(&e.g)
		return &g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.savedAt.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n, nil
}

func copyGame(g *game.Game) game.Game {
	out := *g
	out.Guesses = append([]string(nil), g.Guesses...)
	return out
}
