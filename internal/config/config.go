// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MaxWindowDays bounds the birthday report look-ahead. Past a week, birthdays
// from different weeks would share a weekday line.
const MaxWindowDays = 7

// Config holds all addrbook configuration.
type Config struct {
	Log       Log       `yaml:"log"`
	Book      Book      `yaml:"book"`
	Birthdays Birthdays `yaml:"birthdays"`
	UI        UI        `yaml:"ui"`
}

// Log holds logger settings.
type Log struct {
	Env   string `yaml:"env"`   // "dev" | "prod"
	Level string `yaml:"level"` // debug | info | warn | error
}

// Book holds address book storage settings.
type Book struct {
	Snapshot string `yaml:"snapshot"` // JSON snapshot path; empty keeps the book in memory only
	Autosave bool   `yaml:"autosave"` // Save the snapshot when the session ends
}

// Birthdays holds birthday report settings.
type Birthdays struct {
	WindowDays int `yaml:"window_days"`
}

// UI holds interactive session settings.
type UI struct {
	Prompt string `yaml:"prompt"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: Log{
			Env:   "dev",
			Level: "warn",
		},
		Book: Book{
			Autosave: true,
		},
		Birthdays: Birthdays{
			WindowDays: 7,
		},
		UI: UI{
			Prompt: "Enter a command: ",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Log.Env {
	case "dev", "prod":
		// valid
	default:
		return fmt.Errorf("config: log.env must be \"dev\" or \"prod\", got %q", c.Log.Env)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Birthdays.WindowDays < 1 || c.Birthdays.WindowDays > MaxWindowDays {
		return fmt.Errorf("config: birthdays.window_days must be in 1..%d, got %d", MaxWindowDays, c.Birthdays.WindowDays)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRBOOK_LOG_ENV, ADDRBOOK_LOG_LEVEL, ADDRBOOK_SNAPSHOT,
// ADDRBOOK_GREET_WINDOW.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRBOOK_LOG_ENV"); v != "" {
		c.Log.Env = v
	}
	if v := os.Getenv("ADDRBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ADDRBOOK_SNAPSHOT"); v != "" {
		c.Book.Snapshot = v
	}
	if v := os.Getenv("ADDRBOOK_GREET_WINDOW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADDRBOOK_GREET_WINDOW %q: %w", v, err)
		}
		c.Birthdays.WindowDays = n
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Log       *rawLog       `yaml:"log"`
	Book      *rawBook      `yaml:"book"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	UI        *rawUI        `yaml:"ui"`
}

type rawLog struct {
	Env   *string `yaml:"env"`
	Level *string `yaml:"level"`
}

type rawBook struct {
	Snapshot *string `yaml:"snapshot"`
	Autosave *bool   `yaml:"autosave"`
}

type rawBirthdays struct {
	WindowDays *int `yaml:"window_days"`
}

type rawUI struct {
	Prompt *string `yaml:"prompt"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Log != nil {
		if layer.Log.Env != nil {
			c.Log.Env = *layer.Log.Env
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
	if layer.Book != nil {
		if layer.Book.Snapshot != nil {
			c.Book.Snapshot = *layer.Book.Snapshot
		}
		if layer.Book.Autosave != nil {
			c.Book.Autosave = *layer.Book.Autosave
		}
	}
	if layer.Birthdays != nil && layer.Birthdays.WindowDays != nil {
		c.Birthdays.WindowDays = *layer.Birthdays.WindowDays
	}
	if layer.UI != nil && layer.UI.Prompt != nil {
		c.UI.Prompt = *layer.UI.Prompt
	}
}
