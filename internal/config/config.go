package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// FormatYAML renders the resolved topology as YAML.
	FormatYAML = "yaml"
	// FormatJSON renders the resolved topology as JSON.
	FormatJSON = "json"
)

const defaultFormat = FormatYAML

// Config aggregates runtime configuration for one resolution run.
// Precedence: CLI flags > Environment variables > Defaults
type Config struct {
	// Source is the manifest, project, or solution file to resolve.
	Source string
	// BaseDir is the directory a relative Source resolves against. Loaders
	// receive it explicitly instead of consulting the working directory.
	BaseDir string
	// Format selects the rendering of the resolved topology.
	Format string
	// Verbose enables debug logging of loader and merge decisions.
	Verbose bool
}

// CLIOverrides holds command-line overrides.
type CLIOverrides struct {
	Source  string
	BaseDir *string
	Format  *string
	Verbose *bool
}

// Load extracts configuration with precedence:
// CLI flags > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	workdir, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("determine working directory: %w", err)
	}
	cfg := Config{BaseDir: workdir, Format: defaultFormat}

	applyEnvConfig(&cfg)

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if source := strings.TrimSpace(os.Getenv("TOPO_SOURCE")); source != "" {
		cfg.Source = source
	}

	if baseDir := strings.TrimSpace(os.Getenv("TOPO_BASE_DIR")); baseDir != "" {
		cfg.BaseDir = baseDir
	}

	if format := strings.TrimSpace(os.Getenv("TOPO_FORMAT")); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	if verbose := strings.TrimSpace(os.Getenv("TOPO_VERBOSE")); verbose != "" {
		if value, err := strconv.ParseBool(verbose); err == nil {
			cfg.Verbose = value
		}
	}
}

// applyCLIOverrides applies command-line overrides (highest precedence).
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Source != "" {
		cfg.Source = overrides.Source
	}

	if overrides.BaseDir != nil && *overrides.BaseDir != "" {
		cfg.BaseDir = *overrides.BaseDir
	}

	if overrides.Format != nil && *overrides.Format != "" {
		cfg.Format = strings.ToLower(*overrides.Format)
	}

	if overrides.Verbose != nil {
		cfg.Verbose = *overrides.Verbose
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.Source == "" {
		return fmt.Errorf("a source file must be provided")
	}
	if cfg.Format != FormatYAML && cfg.Format != FormatJSON {
		return fmt.Errorf("format must be %q or %q, got %q", FormatYAML, FormatJSON, cfg.Format)
	}
	return nil
}
