package main

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const devSecret = "dev_secret_change_me"

type Config struct {
	bind          string
	port          int
	db            string
	wordsDir      string
	strict        bool
	sessionSecret string
	sessionTTL    time.Duration
	origins       []string
	logLevel      string
	pretty        bool
	version       bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.sessionSecret == "" {
		return errors.New("--session-secret must not be empty")
	}
	if c.sessionTTL < 0 {
		return errors.New("--session-ttl must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.logLevel); err != nil {
		return fmt.Errorf("invalid --log-level %q", c.logLevel)
	}
	return nil
}

func (c *Config) addr() string { return net.JoinHostPort(c.bind, strconv.Itoa(c.port)) }

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("LINGO_SERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "lingo-server",
		Short:         "Reference evaluator for the lingo word game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: LINGO_SERVER_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8000, "port to listen on (env: LINGO_SERVER_PORT)")
	fs.StringVar(&cfg.db, "db", "", "SQLite database path; empty keeps sessions in memory (env: LINGO_SERVER_DB)")
	fs.StringVar(&cfg.wordsDir, "words-dir", "", "directory holding words<N>.txt overrides (env: LINGO_SERVER_WORDS_DIR)")
	fs.BoolVar(&cfg.strict, "strict", false, "reject guesses that are not in the word list (env: LINGO_SERVER_STRICT)")
	fs.StringVar(&cfg.sessionSecret, "session-secret", devSecret, "HMAC secret for session tokens (env: LINGO_SERVER_SESSION_SECRET)")
	fs.DurationVar(&cfg.sessionTTL, "session-ttl", 24*time.Hour, "lifetime of a session token and its stored round; 0 never expires (env: LINGO_SERVER_SESSION_TTL)")
	fs.StringSliceVar(&cfg.origins, "origins", []string{"*"}, "allowed CORS origins (env: LINGO_SERVER_ORIGINS)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn, error (env: LINGO_SERVER_LOG_LEVEL)")
	fs.BoolVar(&cfg.pretty, "pretty", false, "human-readable console logs (env: LINGO_SERVER_PRETTY)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: LINGO_SERVER_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("lingo-server v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
