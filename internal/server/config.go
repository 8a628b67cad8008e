package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig defines a blackjack table
type TableConfig struct {
	Name            string `hcl:"name,label"`
	StartingMoney   int    `hcl:"starting_money,optional"`
	MinBet          int    `hcl:"min_bet,optional"`
	MaxBet          int    `hcl:"max_bet,optional"`
	ActionTimeoutMs int    `hcl:"action_timeout_ms,optional"`
	Seed            int64  `hcl:"seed,optional"` // deterministic shoe, 0 means time-seeded
}

// ActionTimeout returns the playing-phase idle timeout, zero if disabled
func (tc TableConfig) ActionTimeout() time.Duration {
	return time.Duration(tc.ActionTimeoutMs) * time.Millisecond
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Tables: []TableConfig{
			{
				Name:            "main",
				StartingMoney:   1000,
				MinBet:          10,
				MaxBet:          500,
				ActionTimeoutMs: 30000,
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	for i := range config.Tables {
		if config.Tables[i].StartingMoney == 0 {
			config.Tables[i].StartingMoney = 1000
		}
		if config.Tables[i].MinBet == 0 {
			config.Tables[i].MinBet = 10
		}
		if config.Tables[i].MaxBet == 0 {
			config.Tables[i].MaxBet = config.Tables[i].StartingMoney / 2
		}
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	for _, table := range c.Tables {
		if table.StartingMoney <= 0 {
			return fmt.Errorf("table %s: starting money must be positive", table.Name)
		}
		if table.MinBet <= 0 {
			return fmt.Errorf("table %s: min bet must be positive", table.Name)
		}
		if table.MaxBet < table.MinBet {
			return fmt.Errorf("table %s: max bet must be at least min bet", table.Name)
		}
		if table.ActionTimeoutMs < 0 {
			return fmt.Errorf("table %s: action timeout must not be negative", table.Name)
		}
	}
	return nil
}

// ListenAddress returns the full listen address
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
