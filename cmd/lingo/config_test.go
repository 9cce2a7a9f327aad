package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCmd_DefaultsAndEnv(t *testing.T) {
	cfg := &Config{}
	newCmd(cfg)
	require.NoError(t, cfg.validate())
	assert.Equal(t, "http://localhost:8000", cfg.server)
	assert.Equal(t, 5, cfg.length)
	assert.Equal(t, 1500*time.Millisecond, cfg.revealDelay)

	t.Setenv("LINGO_LENGTH", "7")
	t.Setenv("LINGO_SERVER", "http://lingo.example:8080")
	cfg = &Config{}
	newCmd(cfg)
	assert.Equal(t, 7, cfg.length)
	assert.Equal(t, "http://lingo.example:8080", cfg.server)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	newCmd(cfg)
	cfg.length = 4
	assert.Error(t, cfg.validate())

	cfg.length = 9
	cfg.timeout = 0
	assert.Error(t, cfg.validate())
}

func TestNewLogger_Silent(t *testing.T) {
	cfg := &Config{}
	newCmd(cfg)
	_, closeLog, err := newLogger(cfg)
	require.NoError(t, err)
	closeLog()
}
