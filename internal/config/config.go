// Package config provides centralized configuration for the GitScape
// backend. Values layer in order: defaults, then an optional TOML file,
// then GITSCAPE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds application-wide configuration.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds.
	ListenAddr string `toml:"listen_addr"`
	// DataRoot is the base directory for persistent data (snapshots etc.)
	DataRoot string `toml:"data_root"`
	// HistoryLimit bounds each session's history, undo and redo stacks.
	HistoryLimit int `toml:"history_limit"`
	// DefaultBranch is the branch a fresh repository starts on.
	DefaultBranch string `toml:"default_branch"`
	// AuthorName and AuthorEmail sign simulated commits.
	AuthorName  string `toml:"author_name"`
	AuthorEmail string `toml:"author_email"`
	// ScenarioDir holds the scenario YAML files.
	ScenarioDir string `toml:"scenario_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr:    ":8080",
		DataRoot:      ".gitscape-data",
		HistoryLimit:  100,
		DefaultBranch: "main",
		AuthorName:    "User",
		AuthorEmail:   "user@example.com",
		ScenarioDir:   "scenarios",
	}
}

// Load builds the effective configuration. path may be empty; a missing
// explicit file is an error, since the caller asked for it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GITSCAPE_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("GITSCAPE_DATA_ROOT"); v != "" {
		c.DataRoot = v
	}
	if v := os.Getenv("GITSCAPE_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.HistoryLimit = n
		}
	}
	if v := os.Getenv("GITSCAPE_DEFAULT_BRANCH"); v != "" {
		c.DefaultBranch = v
	}
	if v := os.Getenv("GITSCAPE_AUTHOR_NAME"); v != "" {
		c.AuthorName = v
	}
	if v := os.Getenv("GITSCAPE_AUTHOR_EMAIL"); v != "" {
		c.AuthorEmail = v
	}
	if v := os.Getenv("GITSCAPE_SCENARIO_DIR"); v != "" {
		c.ScenarioDir = v
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("config: listen_addr must not be empty")
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("config: history_limit must be positive, got %d", c.HistoryLimit)
	}
	if c.DefaultBranch == "" {
		return errors.New("config: default_branch must not be empty")
	}
	return nil
}

// SnapshotsDir returns the directory snapshots are stored in.
func (c *Config) SnapshotsDir() string {
	return filepath.Join(c.DataRoot, "snapshots")
}

// Author renders the configured commit signature.
func (c *Config) Author() string {
	return fmt.Sprintf("%s <%s>", c.AuthorName, c.AuthorEmail)
}
