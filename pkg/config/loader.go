package config

import (
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	// ProjectConfigFile is looked up in the working directory when no
	// explicit config path is given
	ProjectConfigFile = "qurandb.yaml"
	// EnvFile holds optional environment overrides
	EnvFile = ".env"
)

// Environment overrides, applied after the config file.
const (
	EnvBaseURL     = "QURANDB_BASE_URL"
	EnvStoreDriver = "QURANDB_STORE_DRIVER"
	EnvStorePath   = "QURANDB_STORE_PATH"
	EnvOutput      = "QURANDB_OUTPUT"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger  *slog.Logger
	envFile string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, envFile: EnvFile}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. Config file (path, or qurandb.yaml in the working directory)
// 3. .env file
// 4. Environment variables
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", path))
		config = fileConfig
	} else if fileConfig, err := LoadFromFile(ProjectConfigFile); err == nil {
		l.logger.Debug("Loaded project config", slog.String("path", ProjectConfigFile))
		config = fileConfig
	} else if !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Failed to load project config", slog.String("path", ProjectConfigFile), slog.String("error", err.Error()))
	}

	if err := godotenv.Load(l.envFile); err == nil {
		l.logger.Debug("Loaded env file", slog.String("path", l.envFile))
	} else if !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Failed to load env file", slog.String("path", l.envFile), slog.String("error", err.Error()))
	}

	config.applyEnv(os.Getenv)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := getenv(EnvStoreDriver); v != "" {
		c.Store.Driver = v
	}
	if v := getenv(EnvStorePath); v != "" {
		c.Store.Path = v
	}
	if v := getenv(EnvOutput); v != "" {
		c.Fetch.Output = v
	}
}
