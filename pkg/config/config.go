// Package config provides configuration loading for qurandb.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kerbaras/qurandb/pkg/data"
	"gopkg.in/yaml.v3"
)

// Config represents the complete qurandb configuration
type Config struct {
	API        APIConfig        `yaml:"api"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Store      StoreConfig      `yaml:"store"`
	Validation ValidationConfig `yaml:"validation"`
	Export     ExportConfig     `yaml:"export"`
}

// APIConfig configures access to the alquran.cloud API
type APIConfig struct {
	// BaseURL is the API root (default: https://api.alquran.cloud/v1)
	BaseURL string `yaml:"base_url"`
	// Timeout bounds a single request
	Timeout time.Duration `yaml:"timeout"`
	// MaxAttempts is the total number of tries per request, first one included
	MaxAttempts int `yaml:"max_attempts"`
	// RetryDelay is the fixed wait between attempts
	RetryDelay time.Duration `yaml:"retry_delay"`
	// RateLimitDelay is the wait after every page or juz request
	RateLimitDelay time.Duration `yaml:"rate_limit_delay"`
	// CountsTimeout bounds the expected-count lookup made at load time
	CountsTimeout time.Duration `yaml:"counts_timeout"`
	UserAgent     string        `yaml:"user_agent"`
}

// FetchConfig configures the fetch stage
type FetchConfig struct {
	// Output is the intermediate JSON document path
	Output string `yaml:"output"`
	Pages  int    `yaml:"pages"`
	Juz    int    `yaml:"juz"`
}

// StoreConfig configures the relational store
type StoreConfig struct {
	// Driver is one of sqlite3, duckdb, pgx
	Driver string `yaml:"driver"`
	// Path is a database file, or a connection string for pgx
	Path string `yaml:"path"`
}

// ValidationConfig configures the pre-load validation
type ValidationConfig struct {
	// Strict adds an exact per-surah record count check
	Strict bool `yaml:"strict"`
}

// ExportConfig configures the EPUB export
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://api.alquran.cloud/v1",
			Timeout:        30 * time.Second,
			MaxAttempts:    3,
			RetryDelay:     2 * time.Second,
			RateLimitDelay: 200 * time.Millisecond,
			CountsTimeout:  30 * time.Second,
			UserAgent:      "qurandb/1.0",
		},
		Fetch: FetchConfig{
			Output: "quran_data.json",
			Pages:  data.PageCount,
			Juz:    data.JuzCount,
		},
		Store: StoreConfig{
			Driver: "sqlite3",
			Path:   "quran.db",
		},
		Export: ExportConfig{
			Dir:    ".",
			Title:  "The Noble Quran",
			Author: "alquran.cloud",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("api.max_attempts must be at least 1")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.API.RetryDelay < 0 || c.API.RateLimitDelay < 0 {
		return fmt.Errorf("api delays must not be negative")
	}
	if c.Fetch.Output == "" {
		return fmt.Errorf("fetch.output is required")
	}
	if c.Fetch.Pages < 1 || c.Fetch.Juz < 1 {
		return fmt.Errorf("fetch.pages and fetch.juz must be positive")
	}
	if _, err := data.LookupDialect(c.Store.Driver); err != nil {
		return fmt.Errorf("store.driver must be one of %s: %w", strings.Join(data.Drivers(), ", "), err)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
