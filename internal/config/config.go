// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for lumina.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/lumina-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete lumina configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Dictation DictationConfig `toml:"dictation"`
	Lookup    LookupConfig    `toml:"lookup"`
	UI        UIConfig        `toml:"ui"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig describes how to reach the chat backend.
type ServerConfig struct {
	// URL is the backend base URL
	URL string `toml:"url"`
	// TimeoutSecs bounds a whole request; 0 means the default
	TimeoutSecs int `toml:"timeout_secs"`
	// RequestsPerSecond and Burst configure the client-side limiter
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// DictationConfig configures the speech-to-text source.
type DictationConfig struct {
	// Command is an external program printing one finalized utterance per
	// line on stdout. Empty disables dictation.
	Command string `toml:"command"`
	// QuietPeriodMs is how long speech must pause before auto-submit
	QuietPeriodMs int `toml:"quiet_period_ms"`
}

// LookupConfig configures the definition overlay.
type LookupConfig struct {
	OverlayWidth  int `toml:"overlay_width"`
	OverlayHeight int `toml:"overlay_height"`
	// CacheTTLSecs keeps resolved definitions; 0 means the default
	CacheTTLSecs int `toml:"cache_ttl_secs"`
	// AskTemplate must contain exactly one %s for the word
	AskTemplate string `toml:"ask_template"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme"`
	// NarrowWidth is the terminal width below which the sidebar behaves
	// like a mobile navigation panel
	NarrowWidth   int  `toml:"narrow_width"`
	IncludeImages bool `toml:"include_images"`
	ShowSidebar   bool `toml:"show_sidebar"`
}

// LogConfig configures the log file.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// QuietPeriod returns the dictation quiet period as a duration.
func (c *Config) QuietPeriod() time.Duration {
	return time.Duration(c.Dictation.QuietPeriodMs) * time.Millisecond
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// CacheTTL returns the definition cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Lookup.CacheTTLSecs) * time.Second
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	logFile := "lumina.log"
	if dir, err := ConfigDir(); err == nil {
		logFile = filepath.Join(dir, "lumina.log")
	}
	return &Config{
		Server: ServerConfig{
			URL:               "http://localhost:8000",
			TimeoutSecs:       120,
			RequestsPerSecond: 10,
			Burst:             5,
		},
		Dictation: DictationConfig{
			QuietPeriodMs: 1500,
		},
		Lookup: LookupConfig{
			OverlayWidth:  40,
			OverlayHeight: 12,
			CacheTTLSecs:  600,
			AskTemplate:   `What does "%s" mean?`,
		},
		UI: UIConfig{
			Theme:       "auto",
			NarrowWidth: 100,
			ShowSidebar: true,
		},
		Log: LogConfig{
			File:  logFile,
			Level: "info",
		},
	}
}

// fillDefaults fills zero values left by a partial config file.
func fillDefaults(cfg *Config) {
	d := Default()

	if cfg.Server.URL == "" {
		cfg.Server.URL = d.Server.URL
	}
	if cfg.Server.TimeoutSecs == 0 {
		cfg.Server.TimeoutSecs = d.Server.TimeoutSecs
	}
	if cfg.Server.RequestsPerSecond == 0 {
		cfg.Server.RequestsPerSecond = d.Server.RequestsPerSecond
	}
	if cfg.Server.Burst == 0 {
		cfg.Server.Burst = d.Server.Burst
	}
	if cfg.Dictation.QuietPeriodMs == 0 {
		cfg.Dictation.QuietPeriodMs = d.Dictation.QuietPeriodMs
	}
	if cfg.Lookup.OverlayWidth == 0 {
		cfg.Lookup.OverlayWidth = d.Lookup.OverlayWidth
	}
	if cfg.Lookup.OverlayHeight == 0 {
		cfg.Lookup.OverlayHeight = d.Lookup.OverlayHeight
	}
	if cfg.Lookup.CacheTTLSecs == 0 {
		cfg.Lookup.CacheTTLSecs = d.Lookup.CacheTTLSecs
	}
	if cfg.Lookup.AskTemplate == "" {
		cfg.Lookup.AskTemplate = d.Lookup.AskTemplate
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = d.UI.Theme
	}
	if cfg.UI.NarrowWidth == 0 {
		cfg.UI.NarrowWidth = d.UI.NarrowWidth
	}
	if cfg.Log.File == "" {
		cfg.Log.File = d.Log.File
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the lumina configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".lumina"), nil
}

// DefaultPath returns the path to the default config file.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config at path. An empty path means DefaultPath. A missing
// file is not an error: defaults (plus env overrides) are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	path = ExpandHome(path)

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		cfg = &Config{}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		fillDefaults(cfg)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.Log.File = ExpandHome(cfg.Log.File)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg as TOML with owner-only permissions.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# lumina configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(ExpandHome(path), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - LUMINA_SERVER_URL: overrides server.url
//   - LUMINA_DICTATION_CMD: overrides dictation.command
//   - LUMINA_LOG_LEVEL: overrides log.level
//   - LUMINA_LOG_FILE: overrides log.file
//   - LUMINA_INCLUDE_IMAGES: "1"/"true" enables ui.include_images
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("LUMINA_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("LUMINA_DICTATION_CMD"); v != "" {
		c.Dictation.Command = v
	}
	if v := os.Getenv("LUMINA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LUMINA_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("LUMINA_INCLUDE_IMAGES"); v != "" {
		b, err := strconv.ParseBool(v)
		c.UI.IncludeImages = err == nil && b
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Server.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{"server.url", fmt.Sprintf("invalid URL %q, must be http(s)://host[:port]", c.Server.URL)})
	}
	if c.Server.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{"server.timeout_secs", "must not be negative"})
	}
	if c.Server.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{"server.requests_per_second", "must not be negative"})
	}
	if c.Dictation.QuietPeriodMs < 100 || c.Dictation.QuietPeriodMs > 60000 {
		errs = append(errs, ValidationError{"dictation.quiet_period_ms", "must be between 100 and 60000"})
	}
	if c.Lookup.OverlayWidth < 20 || c.Lookup.OverlayHeight < 5 {
		errs = append(errs, ValidationError{"lookup", "overlay must be at least 20x5 cells"})
	}
	if strings.Count(c.Lookup.AskTemplate, "%s") != 1 {
		errs = append(errs, ValidationError{"lookup.ask_template", "must contain exactly one %s"})
	}
	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{"ui.theme", fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme)})
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
