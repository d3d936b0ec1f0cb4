// Package config provides configuration management for flowdex.
//
// The configuration is stored in TOML format and supports validation
// and default values for all fields.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config is the top-level configuration struct for flowdex.
// It contains all configuration sections as embedded structs.
type Config struct {
	Scan     ScanConfig     `toml:"scan"`
	Output   OutputConfig   `toml:"output"`
	Build    BuildConfig    `toml:"build"`
	Taxonomy TaxonomyConfig `toml:"taxonomy"`
	TUI      TUIConfig      `toml:"tui"`
}

// ScanConfig contains file discovery settings.
type ScanConfig struct {
	// Root is the directory tree to scan for workflow JSON files.
	Root string `toml:"root"`

	// ExtraExcludes are path fragments appended to the built-in
	// exclusion list (package manifests, lockfiles, tsconfig,
	// node_modules).
	ExtraExcludes []string `toml:"extra_excludes"`
}

// OutputConfig contains output artifact settings.
type OutputConfig struct {
	// Dir is the output directory, created if absent.
	Dir string `toml:"dir"`

	// File is the index file name written under Dir.
	File string `toml:"file"`
}

// BuildConfig contains pipeline execution settings.
type BuildConfig struct {
	// Workers is the number of concurrent record builders.
	// Zero means one worker per CPU.
	Workers int `toml:"workers"`

	// Quiet suppresses progress reporting on stdout.
	Quiet bool `toml:"quiet"`
}

// TaxonomyConfig contains category classification settings.
type TaxonomyConfig struct {
	// Path is an optional YAML file overriding the built-in
	// category keyword table.
	Path string `toml:"path"`
}

// TUIConfig contains terminal UI settings.
type TUIConfig struct {
	// Enabled controls whether to use the TUI (when false, falls back to CLI).
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns a Config with all default values set.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Root:          ".",
			ExtraExcludes: nil,
		},
		Output: OutputConfig{
			Dir:  "public",
			File: "workflows.json",
		},
		Build: BuildConfig{
			Workers: 0,
			Quiet:   false,
		},
		Taxonomy: TaxonomyConfig{
			Path: "",
		},
		TUI: TUIConfig{
			Enabled: true,
		},
	}
}

// IndexPath returns the full path of the output index file.
func (c *Config) IndexPath() string {
	return filepath.Join(c.Output.Dir, c.Output.File)
}

// Validate checks the configuration for valid values.
// Returns a nil error if the config is valid, or an error describing the problem.
func (c *Config) Validate() error {
	if c.Scan.Root == "" {
		return fmt.Errorf("scan.root cannot be empty")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir cannot be empty")
	}
	if c.Output.File == "" {
		return fmt.Errorf("output.file cannot be empty")
	}
	if strings.ContainsAny(c.Output.File, "/\\") {
		return fmt.Errorf("output.file must be a bare file name; got %q", c.Output.File)
	}

	if c.Build.Workers < 0 {
		return fmt.Errorf("build.workers must be >= 0; got %d", c.Build.Workers)
	}

	for i, fragment := range c.Scan.ExtraExcludes {
		if fragment == "" {
			return fmt.Errorf("scan.extra_excludes[%d] cannot be empty", i)
		}
	}

	return nil
}
