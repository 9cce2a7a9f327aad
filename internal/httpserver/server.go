// internal/httpserver/server.go
//
// HTTP server wiring for the lingo evaluator.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Round endpoints: POST /reset, POST /guess, GET /status/{session_id}.
//   - Session tokens: the session_id clients hold is a signed token; rounds are
//     stored under the sid inside it.
//
// Notes:
//   - Every failure answers {"detail": "..."} with a 4xx/5xx status.
//   - Resets and guesses run under a server-wide lock so a reset can never be
//     overwritten by a guess that loaded the previous round.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/lingo/internal/api"
	"github.com/robalobadob/lingo/internal/game"
	"github.com/robalobadob/lingo/internal/store"
	"github.com/robalobadob/lingo/internal/token"
	"github.com/robalobadob/lingo/internal/words"
)

// noGame is the detail for any guess or status call without a usable session.
const noGame = "No active game for this session. Please reset first."

// Config holds the server's behavioural switches.
type Config struct {
	Origins        []string      // CORS allow list; "*" allows any origin
	Strict         bool          // reject guesses missing from the word list
	RequestTimeout time.Duration // per-request handler bound; 0 = 10s
}

// Server bundles router, word lists, session store and token issuer.
type Server struct {
	r      *chi.Mux
	words  *words.Lists
	store  store.Store
	tokens *token.Issuer
	cfg    Config

	mu sync.Mutex // serialises round writes (reset, guess)
}

// New constructs a Server, installs middleware, and registers routes.
func New(wl *words.Lists, st store.Store, tokens *token.Issuer, cfg Config) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	s := &Server{r: chi.NewRouter(), words: wl, store: st, tokens: tokens, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                         // one zerolog line per request
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time
	s.r.Use(jsonContentType)                   // default JSON responses
	s.r.Use(cors(cfg.Origins))                 // allow-listed CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"lingo","endpoints":["/health","POST /reset","POST /guess","GET /status/{session_id}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		out := map[string]int{}
		for n, c := range s.words.Stats() {
			out[fmt.Sprint(n)] = c
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	// --- rounds ---
	s.r.Post("/reset", s.handleReset)
	s.r.Post("/guess", s.handleGuess)
	s.r.Get("/status/{session_id}", s.handleStatus)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return s
}

// Handler exposes the router as an http.Handler.
func (s *Server) Handler() http.Handler { return s.r }

// ------------------------------ ROUNDS -------------------------------------

// handleReset starts a new round. A valid presented token keeps its session
// identity; anything else (nil, empty, forged, expired) gets a fresh one.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req api.ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !s.words.Supports(req.WordLength) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported word length %d", req.WordLength))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sid := ""
	if req.SessionID != nil && *req.SessionID != "" {
		if id, err := s.tokens.Parse(*req.SessionID); err == nil {
			sid = id
		} else {
			log.Debug().Err(err).Msg("reset with unusable session; minting a new one")
		}
	}
	var (
		tok string
		err error
	)
	if sid == "" {
		tok, sid, err = s.tokens.New()
	} else {
		tok, err = s.tokens.Sign(sid)
	}
	if err != nil {
		log.Error().Err(err).Msg("sign session")
		writeError(w, http.StatusInternalServerError, "could not issue session")
		return
	}

	answer, err := s.words.Random(req.WordLength, req.OldWords)
	if err != nil {
		log.Error().Err(err).Int("length", req.WordLength).Msg("pick word")
		writeError(w, http.StatusInternalServerError, "could not pick a word")
		return
	}
	g := game.New(sid, answer)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("session", sid).Msg("save round")
		writeError(w, http.StatusInternalServerError, "could not save round")
		return
	}
	log.Info().Str("session", sid).Int("length", g.WordLength).Int("excluded", len(req.OldWords)).Msg("round started")

	writeJSON(w, statusOf(g, tok))
}

// handleGuess scores one guess against the session's round.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req api.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.lookup(w, r, req.SessionID)
	if !ok {
		return
	}

	var dict game.Dictionary
	if s.cfg.Strict {
		dict = s.words
	}
	score, err := g.ApplyGuess(req.Guess, dict)
	if err != nil {
		log.Debug().Err(err).Str("session", g.ID).Str("guess", req.Guess).Msg("guess rejected")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("session", g.ID).Msg("save round")
		writeError(w, http.StatusInternalServerError, "could not save round")
		return
	}
	if g.Over {
		log.Info().Str("session", g.ID).Bool("won", g.Won).Int("attempts", g.Attempts()).Msg("round over")
	}

	writeJSON(w, api.GuessResponse{
		Score:       score,
		Attempts:    g.Attempts(),
		RoundOver:   g.Over,
		RoundWon:    g.Won,
		GuessState:  api.Hint(g.GuessState),
		CurrentWord: g.RevealedWord(),
		SessionID:   req.SessionID,
	})
}

// handleStatus reports a session's round without changing it.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	tok := chi.URLParam(r, "session_id")
	g, ok := s.lookup(w, r, tok)
	if !ok {
		return
	}
	st := statusOf(g, tok)
	st.Guesses = g.Guesses
	writeJSON(w, st)
}

// lookup resolves a session token to its stored round, writing the error
// response itself when it cannot.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request, tok string) (*game.Game, bool) {
	if strings.TrimSpace(tok) == "" {
		writeError(w, http.StatusBadRequest, noGame)
		return nil, false
	}
	sid, err := s.tokens.Parse(tok)
	if err != nil {
		writeError(w, http.StatusBadRequest, noGame)
		return nil, false
	}
	g, err := s.store.Get(r.Context(), sid)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusBadRequest, noGame)
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("session", sid).Msg("load round")
		writeError(w, http.StatusInternalServerError, "could not load round")
		return nil, false
	}
	return g, true
}

func statusOf(g *game.Game, tok string) api.GameStatus {
	return api.GameStatus{
		SessionID:   tok,
		WordLength:  g.WordLength,
		Attempts:    g.Attempts(),
		MaxAttempts: g.MaxAttempts,
		GuessState:  api.Hint(g.GuessState),
		RoundOver:   g.Over,
		RoundWon:    g.Won,
	}
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Detail: detail})
}
