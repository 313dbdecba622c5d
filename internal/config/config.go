package config

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"holdem-server/internal/util"
	"holdem-server/pkg/holdem"
)

// Config provides configuration for the hold'em server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Table  struct {
		MinUnit         int `yaml:"minUnit" envconfig:"min_unit"`
		SmallBlind      int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind        int `yaml:"bigBlind" envconfig:"big_blind"`
		StartTokens     int `yaml:"startTokens" envconfig:"start_tokens"`
		MaxPlayers      int `yaml:"maxPlayers" envconfig:"max_players"`
		ShowdownDelayMS int `yaml:"showdownDelayMs" envconfig:"showdown_delay_ms"`
		FoldWinDelayMS  int `yaml:"foldWinDelayMs" envconfig:"fold_win_delay_ms"`
	} `yaml:"table"`
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	Metrics struct {
		Namespace string `yaml:"namespace"`
	} `yaml:"metrics"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	opts := holdem.DefaultOptions()

	var cfg Config
	cfg.Addr = ":5000"
	cfg.Table.MinUnit = opts.MinUnit
	cfg.Table.SmallBlind = opts.SmallBlind
	cfg.Table.BigBlind = opts.BigBlind
	cfg.Table.StartTokens = opts.StartTokens
	cfg.Table.MaxPlayers = opts.MaxPlayers
	cfg.Table.ShowdownDelayMS = int(opts.ShowdownDelay / time.Millisecond)
	cfg.Table.FoldWinDelayMS = int(opts.FoldWinDelay / time.Millisecond)
	cfg.Log.Level = "info"
	cfg.Metrics.Namespace = "holdem"

	return cfg
}

// TableOptions converts the table section into room options
func (c Config) TableOptions() holdem.Options {
	return holdem.Options{
		MinUnit:       c.Table.MinUnit,
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		StartTokens:   c.Table.StartTokens,
		MaxPlayers:    c.Table.MaxPlayers,
		ShowdownDelay: time.Duration(c.Table.ShowdownDelayMS) * time.Millisecond,
		FoldWinDelay:  time.Duration(c.Table.FoldWinDelayMS) * time.Millisecond,
	}
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The defaults are overlaid by the YAML file, if there is one, and then by HOLDEM_* environment variables
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	if err := cfg.TableOptions().Validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
