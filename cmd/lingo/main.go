// cmd/lingo/main.go
//
// Terminal client for lingo.
// The screen belongs to the game, so logs only go to --log-file.

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/robalobadob/lingo/internal/evaluator"
	"github.com/robalobadob/lingo/internal/tui"
)

const releaseVersion = "0.1.0"

func main() {
	_ = godotenv.Load()
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

func newLogger(cfg *Config) (zerolog.Logger, func(), error) {
	if cfg.logFile == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	lvl, _ := zerolog.ParseLevel(cfg.logLevel)
	l := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return l, func() { _ = f.Close() }, nil
}

func play(ctx context.Context, cfg *Config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := evaluator.New(cfg.server,
		evaluator.WithTimeout(cfg.timeout),
		evaluator.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	m, err := tui.NewModel(client, tui.Options{
		WordLength:  cfg.length,
		RevealDelay: cfg.revealDelay,
		Timeout:     cfg.timeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	logger.Info().Str("server", cfg.server).Int("length", cfg.length).Msg("starting lingo")
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
