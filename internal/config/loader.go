// Package config provides configuration management for flowdex.
//
// This file contains config loading functionality including:
// - XDG config path detection
// - TOML file parsing
// - Environment variable overrides
// - Validation
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DetectConfigPath searches for a config file using XDG standard paths.
// Returns the first config file found, or empty string if none exists.
//
// Search order:
// 1. ./flowdex.toml (per-repo config)
// 2. ~/.config/flowdex/config.toml
//
// Returns empty string if no config file is found (caller should use defaults).
func DetectConfigPath() string {
	if _, err := os.Stat("flowdex.toml"); err == nil {
		return "flowdex.toml"
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	configPath := filepath.Join(homeDir, ".config", "flowdex", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return ""
}

// Load loads a config from the specified path.
// If the file doesn't exist, returns an error.
// After loading, applies environment variable overrides and validates.
func Load(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read file contents
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Parse TOML
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand tilde in paths
	expandPath(cfg)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults attempts to load a config from XDG standard paths.
// If no config file is found, returns a config with all default values.
// If a config file is found but fails to load/validate, returns an error.
func LoadWithDefaults() (*Config, error) {
	configPath := DetectConfigPath()
	if configPath == "" {
		// No config file found, return defaults
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		expandPath(cfg)
		return cfg, nil
	}

	return Load(configPath)
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables follow the pattern: FLOWDEX_<SECTION>_<FIELD>
//
// Examples:
// - FLOWDEX_SCAN_ROOT overrides [scan].root
// - FLOWDEX_OUTPUT_DIR overrides [output].dir
// - FLOWDEX_BUILD_WORKERS overrides [build].workers
//
// Boolean fields: use "true"/"false" strings
func applyEnvOverrides(c *Config) {
	// Helper to lookup and apply string override
	applyString := func(key string, target *string) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			*target = val
		}
	}

	// Helper to lookup and apply bool override
	applyBool := func(key string, target *bool) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				*target = true
			case "false", "0", "no", "off":
				*target = false
			}
		}
	}

	// Helper to lookup and apply int override
	applyInt := func(key string, target *int) {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			var i int
			if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
				*target = i
			}
		}
	}

	// Scan section
	applyString("FLOWDEX_SCAN_ROOT", &c.Scan.Root)

	// Output section
	applyString("FLOWDEX_OUTPUT_DIR", &c.Output.Dir)
	applyString("FLOWDEX_OUTPUT_FILE", &c.Output.File)

	// Build section
	applyInt("FLOWDEX_BUILD_WORKERS", &c.Build.Workers)
	applyBool("FLOWDEX_BUILD_QUIET", &c.Build.Quiet)

	// Taxonomy section
	applyString("FLOWDEX_TAXONOMY_PATH", &c.Taxonomy.Path)

	// TUI section
	applyBool("FLOWDEX_TUI_ENABLED", &c.TUI.Enabled)
}

// expandPath expands ~ to the home directory in path-valued fields.
func expandPath(c *Config) {
	expand := func(p string) string {
		if strings.HasPrefix(p, "~/") || p == "~" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				return filepath.Join(homeDir, strings.TrimPrefix(p, "~/"))
			}
		}
		return p
	}

	c.Scan.Root = expand(c.Scan.Root)
	c.Output.Dir = expand(c.Output.Dir)
	c.Taxonomy.Path = expand(c.Taxonomy.Path)
}
