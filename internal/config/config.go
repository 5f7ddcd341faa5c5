// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultTheme     = "classic"
	DefaultSeed      = SeedDemo
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Seed modes for a new session.
const (
	SeedDemo = "demo"
	SeedNone = "none"
)

// Config holds the full configuration for tada.
type Config struct {
	Theme string `toml:"theme"`
	Group bool   `toml:"group"`

	// Session seeding. Fixtures, when set, wins over Seed.
	Seed     string `toml:"seed"`
	Fixtures string `toml:"fixtures"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
	LogTime   bool   `toml:"log_timestamps"`

	// Path of the file the config was read from, if any.
	Source string `toml:"-"`
}

// Default returns a config with every field at its default.
func Default() *Config {
	return &Config{
		Theme:     DefaultTheme,
		Seed:      DefaultSeed,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load builds the config from, in priority order:
// 1. Defaults
// 2. Config file (TOML): path if non-empty, otherwise the first found
// 3. Environment variables
// Flags are applied by the caller on top of the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.Source = path
		}
	}

	loadFromEnv(cfg)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize lowercases the enumerated values so file, env and flags all
// accept any case.
func (c *Config) Normalize() {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.Seed = strings.ToLower(strings.TrimSpace(c.Seed))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate rejects values no component knows how to handle.
func (c *Config) Validate() error {
	if !oneOf(c.Theme, "classic", "neon", "mono") {
		return fmt.Errorf("theme: unknown value %q (want classic, neon or mono)", c.Theme)
	}
	if !oneOf(c.Seed, SeedDemo, SeedNone) {
		return fmt.Errorf("seed: unknown value %q (want demo or none)", c.Seed)
	}
	if !oneOf(c.LogLevel, "debug", "info", "warn", "warning", "error", "fatal") {
		return fmt.Errorf("log_level: unknown value %q", c.LogLevel)
	}
	if !oneOf(c.LogFormat, "text", "json", "logfmt") {
		return fmt.Errorf("log_format: unknown value %q (want text, json or logfmt)", c.LogFormat)
	}
	return nil
}

// Dir returns ~/.tada.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".tada"), nil
}

// findConfigFile looks in the working directory first, then ~/.tada.
func findConfigFile() string {
	for _, name := range []string{"tada.toml", ".tada.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// loadFromEnv overrides config from TADA_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TADA_GROUP"); v != "" {
		cfg.Group = boolFromString(v)
	}
	if v := os.Getenv("TADA_SEED"); v != "" {
		cfg.Seed = v
	}
	if v := os.Getenv("TADA_FIXTURES"); v != "" {
		cfg.Fixtures = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TADA_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTime = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
