// Package config loads the application configuration from an optional
// YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {

	// DocPath holds the doc storage, either a directory of provider
	// JSON exports or a sqlite file.
	DocPath string `yaml:"docPath"`

	// PatternPath holds the pattern storage, either a JSON file or a
	// sqlite file.
	PatternPath string `yaml:"patternPath"`

	// Format is the default render format.
	Format string `yaml:"format"`

	// RelationVerbs drive the relation scan when the command line
	// gives no verbs.
	RelationVerbs []string `yaml:"relationVerbs"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file (if provided) and applies environment
// variable overrides. It returns a Config populated with defaults for
// any missing values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Format:        "all",
		RelationVerbs: []string{"acquire", "buy", "purchase"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides reads RELEX_* environment variables and overrides
// the corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RELEX_DOC_PATH"); v != "" {
		cfg.DocPath = v
	}
	if v := os.Getenv("RELEX_PATTERN_PATH"); v != "" {
		cfg.PatternPath = v
	}
	if v := os.Getenv("RELEX_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("RELEX_RELATION_VERBS"); v != "" {
		cfg.RelationVerbs = strings.Split(v, ",")
	}
	if v := os.Getenv("RELEX_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RELEX_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
