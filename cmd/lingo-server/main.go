// cmd/lingo-server/main.go
//
// Entry point for the lingo reference evaluator.
// Responsibilities:
//   - Load .env, parse flags/env, configure zerolog.
//   - Load word lists and open the session store (memory or SQLite).
//   - Serve HTTP until SIGINT/SIGTERM, then shut down gracefully.
//   - Periodically prune sessions older than the token lifetime.

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/lingo/internal/httpserver"
	"github.com/robalobadob/lingo/internal/store"
	"github.com/robalobadob/lingo/internal/token"
	"github.com/robalobadob/lingo/internal/words"
)

const releaseVersion = "0.1.0"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(ctx))
}

func setupLogging(cfg *Config) {
	lvl, _ := zerolog.ParseLevel(cfg.logLevel)
	zerolog.SetGlobalLevel(lvl)
	var out io.Writer = os.Stderr
	if cfg.pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func openStore(cfg *Config) (store.Store, func() error, error) {
	if cfg.db == "" {
		log.Info().Msg("sessions kept in memory")
		return store.NewMemoryStore(), func() error { return nil }, nil
	}
	db, err := store.OpenSQLite(cfg.db)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("db", cfg.db).Msg("sessions kept in sqlite")
	return db, db.Close, nil
}

func serve(ctx context.Context, cfg *Config) error {
	setupLogging(cfg)
	if cfg.sessionSecret == devSecret {
		log.Warn().Msg("using the development session secret; set --session-secret in production")
	}

	wl, err := words.Load(cfg.wordsDir)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()
	tokens, err := token.NewIssuer(cfg.sessionSecret, cfg.sessionTTL)
	if err != nil {
		return err
	}

	api := httpserver.New(wl, st, tokens, httpserver.Config{
		Origins: cfg.origins,
		Strict:  cfg.strict,
	})
	srv := &http.Server{
		Addr:              cfg.addr(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Bool("strict", cfg.strict).Msg("starting lingo-server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.sessionTTL > 0 {
		g.Go(func() error { return prune(gctx, st, cfg.sessionTTL) })
	}
	return g.Wait()
}

// prune drops sessions idle for longer than ttl until ctx is done.
func prune(ctx context.Context, st store.Store, ttl time.Duration) error {
	every := ttl / 4
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			n, err := st.Prune(ctx, time.Now().Add(-ttl))
			if err != nil {
				log.Warn().Err(err).Msg("prune sessions")
				continue
			}
			if n > 0 {
				log.Info().Int("sessions", n).Msg("pruned idle sessions")
			}
		}
	}
}
