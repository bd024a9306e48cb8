// Package config loads the generator configuration from nodegen.yml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"
)

// Config represents the nodegen configuration
type Config struct {
	ProjectRoot string       `mapstructure:"project_root"`
	APIVersions []string     `mapstructure:"api_versions"`
	Godot       GodotConfig  `mapstructure:"godot"`
	Format      FormatConfig `mapstructure:"format"`
}

// GodotConfig configures the engine-dump collaborator
type GodotConfig struct {
	// Commands is the candidate executable list, tried in order.
	Commands []string `mapstructure:"commands"`
	// VersionManager switches engine versions before a dump ("gdenv").
	// Empty disables switching.
	VersionManager string `mapstructure:"version_manager"`
	// DumpTimeoutSeconds bounds one dump attempt.
	DumpTimeoutSeconds int `mapstructure:"dump_timeout_seconds"`
}

// FormatConfig configures the best-effort source formatter
type FormatConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Command string `mapstructure:"command"`
}

// DefaultAPIVersions mirrors godot-rust's handling of extension API
// differences across engine releases.
var DefaultAPIVersions = []string{"4.2", "4.2.1", "4.2.2", "4.3", "4.4", "4.5"}

func defaultGodotCommands() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"godot",
		"godot4",
		"/usr/local/bin/godot",
		filepath.Join(home, ".local/share/gdenv/bin/godot"),
	}
}

// Load loads the configuration from nodegen.yml or nodegen.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("project_root", ".")
	v.SetDefault("api_versions", DefaultAPIVersions)
	v.SetDefault("godot.commands", defaultGodotCommands())
	v.SetDefault("godot.version_manager", "gdenv")
	v.SetDefault("godot.dump_timeout_seconds", 30)
	v.SetDefault("format.enabled", true)
	v.SetDefault("format.command", "cargo")

	// Set config name and paths
	v.SetConfigName("nodegen")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig checks the loaded configuration for obvious mistakes
func validateConfig(config *Config) error {
	if len(config.APIVersions) == 0 {
		return fmt.Errorf("api_versions must list at least one schema version")
	}
	for _, version := range config.APIVersions {
		if _, err := semver.NewVersion(version); err != nil {
			return fmt.Errorf("invalid api version %q: %w", version, err)
		}
	}
	if len(config.Godot.Commands) == 0 {
		return fmt.Errorf("godot.commands must list at least one candidate executable")
	}
	if config.Godot.DumpTimeoutSeconds <= 0 {
		return fmt.Errorf("godot.dump_timeout_seconds must be positive")
	}
	return nil
}

// LatestVersion returns the highest configured schema version. Its watcher
// artifact becomes the active one after a successful run.
func (c *Config) LatestVersion() (string, error) {
	var latest string
	var latestParsed *semver.Version
	for _, version := range c.APIVersions {
		parsed, err := semver.NewVersion(version)
		if err != nil {
			return "", fmt.Errorf("invalid api version %q: %w", version, err)
		}
		if latestParsed == nil || parsed.GreaterThan(latestParsed) {
			latest = version
			latestParsed = parsed
		}
	}
	return latest, nil
}
