package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/lingo/internal/api"
	"github.com/robalobadob/lingo/internal/game"
	"github.com/robalobadob/lingo/internal/store"
	"github.com/robalobadob/lingo/internal/token"
	"github.com/robalobadob/lingo/internal/words"
)

// newTestServer serves rounds whose five-letter answer is always "crane".
func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	return newTestServerWith(t, cfg, store.NewMemoryStore())
}

func newTestServerWith(t *testing.T, cfg Config, st store.Store) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words5.txt"), []byte("crane\n"), 0o644))
	wl, err := words.Load(dir)
	require.NoError(t, err)
	iss, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	ts := httptest.NewServer(New(wl, st, iss, cfg).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path string, body any, out any) int {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func reset(t *testing.T, ts *httptest.Server, n int, sid *string) api.GameStatus {
	t.Helper()
	var st api.GameStatus
	code := post(t, ts, "/reset", api.ResetRequest{WordLength: n, OldWords: []string{}, SessionID: sid}, &st)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, st.SessionID)
	return st
}

func TestReset(t *testing.T) {
	ts := newTestServer(t, Config{})

	st := reset(t, ts, 5, nil)
	assert.Equal(t, 5, st.WordLength)
	assert.Equal(t, 6, st.MaxAttempts)
	assert.Equal(t, 0, st.Attempts)
	assert.Equal(t, api.Hint("_____"), st.GuessState)
	assert.False(t, st.RoundOver)

	st7 := reset(t, ts, 7, &st.SessionID)
	assert.Equal(t, 8, st7.MaxAttempts)
	assert.Equal(t, api.Hint("_______"), st7.GuessState)

	var e api.ErrorResponse
	code := post(t, ts, "/reset", api.ResetRequest{WordLength: 4}, &e)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "unsupported word length 4", e.Detail)

	forged := "forged"
	assert.NotEqual(t, forged, reset(t, ts, 5, &forged).SessionID)
}

func TestGuess_RoundToWin(t *testing.T) {
	ts := newTestServer(t, Config{})
	st := reset(t, ts, 5, nil)

	var g api.GuessResponse
	code := post(t, ts, "/guess", api.GuessRequest{Guess: "CRISP", SessionID: st.SessionID}, &g)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int{2, 2, 0, 0, 0}, g.Score)
	assert.Equal(t, api.Hint("cr___"), g.GuessState)
	assert.Equal(t, 1, g.Attempts)
	assert.False(t, g.RoundOver)
	assert.Empty(t, g.CurrentWord)

	code = post(t, ts, "/guess", api.GuessRequest{Guess: "crane", SessionID: st.SessionID}, &g)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []int{2, 2, 2, 2, 2}, g.Score)
	assert.True(t, g.RoundOver)
	assert.True(t, g.RoundWon)
	assert.Equal(t, "crane", g.CurrentWord)

	var e api.ErrorResponse
	code = post(t, ts, "/guess", api.GuessRequest{Guess: "crane", SessionID: st.SessionID}, &e)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, e.Detail, "round is over")

	// the same session can start another round
	again := reset(t, ts, 5, &st.SessionID)
	code = post(t, ts, "/guess", api.GuessRequest{Guess: "light", SessionID: again.SessionID}, &g)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, g.Attempts)
}

// gatedStore holds the next Get open until release is closed.
type gatedStore struct {
	store.Store
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Get(ctx context.Context, id string) (*game.Game, error) {
	out, err := g.Store.Get(ctx, id)
	if g.armed.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.release
	}
	return out, err
}

func TestReset_NotOverwrittenByGuessInFlight(t *testing.T) {
	gs := &gatedStore{Store: store.NewMemoryStore(), entered: make(chan struct{}), release: make(chan struct{})}
	ts := newTestServerWith(t, Config{}, gs)
	st := reset(t, ts, 5, nil)
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, post(t, ts, "/guess", api.GuessRequest{Guess: "light", SessionID: st.SessionID}, nil))
	}

	postAsync := func(path string, body any) <-chan int {
		done := make(chan int, 1)
		b, _ := json.Marshal(body)
		go func() {
			resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(b))
			if err != nil {
				done <- 0
				return
			}
			resp.Body.Close()
			done <- resp.StatusCode
		}()
		return done
	}

	// the last guess of the round loads the round, then stalls
	gs.armed.Store(true)
	guessDone := postAsync("/guess", api.GuessRequest{Guess: "light", SessionID: st.SessionID})
	<-gs.entered

	resetDone := postAsync("/reset", api.ResetRequest{WordLength: 5, OldWords: []string{}, SessionID: &st.SessionID})
	time.Sleep(50 * time.Millisecond)
	close(gs.release)

	assert.Equal(t, http.StatusOK, <-guessDone)
	assert.Equal(t, http.StatusOK, <-resetDone)

	var g api.GuessResponse
	code := post(t, ts, "/guess", api.GuessRequest{Guess: "light", SessionID: st.SessionID}, &g)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, g.Attempts)
	assert.False(t, g.RoundOver)
}

func TestGuess_RunsOut(t *testing.T) {
	ts := newTestServer(t, Config{})
	st := reset(t, ts, 5, nil)

	var g api.GuessResponse
	for i := 0; i < 6; i++ {
		code := post(t, ts, "/guess", api.GuessRequest{Guess: "light", SessionID: st.SessionID}, &g)
		require.Equal(t, http.StatusOK, code)
	}
	assert.True(t, g.RoundOver)
	assert.False(t, g.RoundWon)
	assert.Equal(t, "crane", g.CurrentWord)
}

func TestGuess_Rejections(t *testing.T) {
	ts := newTestServer(t, Config{Strict: true})
	st := reset(t, ts, 5, nil)

	tests := []struct {
		name   string
		req    api.GuessRequest
		detail string
	}{
		{"wrong length", api.GuessRequest{Guess: "cran", SessionID: st.SessionID}, "guess must be 5 letters long"},
		{"not letters", api.GuessRequest{Guess: "cr4ne", SessionID: st.SessionID}, "guess must contain letters only"},
		{"not a word", api.GuessRequest{Guess: "zzzzz", SessionID: st.SessionID}, "not a word"},
		{"no session", api.GuessRequest{Guess: "crane"}, noGame},
		{"bad session", api.GuessRequest{Guess: "crane", SessionID: "nope"}, noGame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e api.ErrorResponse
			code := post(t, ts, "/guess", tt.req, &e)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tt.detail, e.Detail)
		})
	}
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t, Config{})
	st := reset(t, ts, 5, nil)
	post(t, ts, "/guess", api.GuessRequest{Guess: "trace", SessionID: st.SessionID}, nil)

	resp, err := http.Get(ts.URL + "/status/" + st.SessionID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got api.GameStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, []string{"trace"}, got.Guesses)
	assert.Equal(t, api.Hint("_ra_e"), got.GuessState)

	resp, err = http.Get(ts.URL + "/status/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, Config{Origins: []string{"http://localhost:5173"}})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/guess", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.example")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestDiagnostics(t *testing.T) {
	ts := newTestServer(t, Config{})
	for _, p := range []string{"/", "/health", "/debug/words"} {
		resp, err := http.Get(ts.URL + p)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, p)
	}

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
