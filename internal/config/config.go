// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/asoscope/asoscope-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete asoscope configuration.
type Config struct {
	// General settings
	Version      string `toml:"version" json:"version"`
	Organization string `toml:"organization" json:"organization"`

	// DataDir is where local state lives: conversation history, sidebar
	// state, and the metrics database. Empty means ~/.asoscope/data.
	DataDir string `toml:"data_dir" json:"data_dir"`

	// Insights service configuration
	Insights InsightsConfig `toml:"insights" json:"insights"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// InsightsConfig contains the hosted insights service configuration.
type InsightsConfig struct {
	// APIKey authenticates against the insights service
	APIKey string `toml:"api_key" json:"api_key"`
	// BaseURL overrides the hosted endpoint (empty = production)
	BaseURL string `toml:"base_url" json:"base_url"`
	// MaxRetries is the attempt count for transient request errors
	MaxRetries int `toml:"max_retries" json:"max_retries"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// SidebarWidth is the docked sidebar width in logical pixels
	SidebarWidth int `toml:"sidebar_width" json:"sidebar_width"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// MouseEnabled enables mouse support (drag resize, wheel scrolling)
	MouseEnabled bool `toml:"mouse_enabled" json:"mouse_enabled"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version:      "1.0.0",
		Organization: "default",

		Insights: InsightsConfig{
			APIKey:     "",
			BaseURL:    "",
			MaxRetries: 3,
		},

		UI: UIConfig{
			Theme:        "dark",
			SidebarWidth: 384,
			CompactMode:  false,
			MouseEnabled: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the asoscope configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".asoscope"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// ensureSecurePermissions fixes permissions on config files. The config
// holds the API key, so it must be owner read/write only.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0o600 {
		if err := os.Chmod(path, 0o600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation and environment overrides.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON config from %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config from %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config from %s: %w", path, err)
		}
	}

	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Organization == "" {
		c.Organization = defaults.Organization
	}
	if c.Insights.MaxRetries == 0 {
		c.Insights.MaxRetries = defaults.Insights.MaxRetries
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = defaults.UI.SidebarWidth
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies ASOSCOPE_* environment variables on top of the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ASOSCOPE_API_KEY"); v != "" {
		c.Insights.APIKey = v
	}
	if v := os.Getenv("ASOSCOPE_BASE_URL"); v != "" {
		c.Insights.BaseURL = v
	}
	if v := os.Getenv("ASOSCOPE_ORG"); v != "" {
		c.Organization = v
	}
	if v := os.Getenv("ASOSCOPE_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("ASOSCOPE_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Organization == "" {
		return errors.New("organization must not be empty")
	}

	if c.Insights.BaseURL != "" {
		u, err := url.Parse(c.Insights.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("insights base_url %q is not a valid http(s) URL", c.Insights.BaseURL)
		}
	}

	if c.Insights.MaxRetries < 1 || c.Insights.MaxRetries > 10 {
		return fmt.Errorf("insights max_retries %d out of range [1, 10]", c.Insights.MaxRetries)
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("unknown theme %q (expected dark, light, or auto)", c.UI.Theme)
	}

	return nil
}

// =============================================================================
// SAVE AND DERIVED PATHS
// =============================================================================

// Save writes the configuration as TOML to the default location.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration as TOML to path. The write is atomic and
// the file is restricted to the owner.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0o600)
}

// ResolveDataDir returns the configured data directory, defaulting to
// ~/.asoscope/data.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// MetricsDBPath returns the snapshot database location under the data dir.
func (c *Config) MetricsDBPath() (string, error) {
	dir, err := c.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "metrics.db"), nil
}
