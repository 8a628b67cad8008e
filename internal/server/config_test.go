package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjackd.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:8080", cfg.ListenAddress())
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "main", cfg.Tables[0].Name)
	assert.Equal(t, 1000, cfg.Tables[0].StartingMoney)
	assert.Equal(t, 30*time.Second, cfg.Tables[0].ActionTimeout())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

table "high-rollers" {
  starting_money    = 5000
  min_bet           = 100
  max_bet           = 2000
  action_timeout_ms = 10000
  seed              = 42
}

table "casual" {
  starting_money = 500
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)

	require.Len(t, cfg.Tables, 2)
	high := cfg.Tables[0]
	assert.Equal(t, "high-rollers", high.Name)
	assert.Equal(t, 5000, high.StartingMoney)
	assert.Equal(t, 100, high.MinBet)
	assert.Equal(t, 2000, high.MaxBet)
	assert.Equal(t, 10*time.Second, high.ActionTimeout())
	assert.Equal(t, int64(42), high.Seed)

	// Unset table fields pick up defaults
	casual := cfg.Tables[1]
	assert.Equal(t, 10, casual.MinBet)
	assert.Equal(t, 250, casual.MaxBet)
	assert.Equal(t, time.Duration(0), casual.ActionTimeout())
}

func TestLoadConfigBadSyntax(t *testing.T) {
	path := writeConfig(t, `table "broken" {`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"port out of range":    func(c *Config) { c.Server.Port = 70000 },
		"no tables":            func(c *Config) { c.Tables = nil },
		"negative money":       func(c *Config) { c.Tables[0].StartingMoney = -1 },
		"zero min bet":         func(c *Config) { c.Tables[0].MinBet = 0 },
		"max bet below min":    func(c *Config) { c.Tables[0].MaxBet = 5 },
		"negative timeout":     func(c *Config) { c.Tables[0].ActionTimeoutMs = -1 },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.Validate())
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
