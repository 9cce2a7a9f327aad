package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/robalobadob/lingo/internal/engine"
)

type Config struct {
	server      string
	length      int
	timeout     time.Duration
	revealDelay time.Duration
	logFile     string
	logLevel    string
	version     bool
}

func (c *Config) validate() error {
	if c.server == "" {
		return errors.New("--server must not be empty")
	}
	if !engine.SupportedLength(c.length) {
		return fmt.Errorf("invalid --length %d (must be one of %v)", c.length, engine.WordLengths)
	}
	if c.timeout <= 0 {
		return errors.New("--timeout must be positive")
	}
	if c.revealDelay < 0 {
		return errors.New("--reveal-delay must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.logLevel); err != nil {
		return fmt.Errorf("invalid --log-level %q", c.logLevel)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LINGO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "lingo",
		Short:         "Play lingo in the terminal against an evaluator server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return play(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.server, "server", "s", "http://localhost:8000", "evaluator base URL (env: LINGO_SERVER)")
	fs.IntVarP(&cfg.length, "length", "n", 5, "word length, 5 to 9 (env: LINGO_LENGTH)")
	fs.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "timeout for each evaluator request (env: LINGO_TIMEOUT)")
	fs.DurationVar(&cfg.revealDelay, "reveal-delay", 1500*time.Millisecond, "pause on the final row before the end-of-round screen (env: LINGO_REVEAL_DELAY)")
	fs.StringVar(&cfg.logFile, "log-file", "", "write JSON logs to this file; empty disables logging (env: LINGO_LOG_FILE)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error (env: LINGO_LOG_LEVEL)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: LINGO_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("lingo v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
