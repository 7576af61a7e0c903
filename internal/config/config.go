// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ldary/mediadex/internal/constants"
	apperrors "github.com/ldary/mediadex/internal/errors"
)

const (
	defaultConfigFile   = "config.json"
	defaultDatabasePath = "./cache.db"

	// Keys shorter than this are rejected before a single provider call is
	// made, so a truncated paste fails fast instead of on first request.
	minAPIKeyLength = 8
)

// Config holds the application configuration. It supports loading from
// environment variables and JSON files; environment variables win.
type Config struct {
	// API keys
	TMDBAPIKey string `json:"TMDB_API_KEY"`
	OMDBAPIKey string `json:"OMDB_API_KEY"`

	// Provider selection
	DefaultProvider string `json:"DEFAULT_PROVIDER"`

	// Server settings
	Port     string `json:"PORT"`
	LogLevel string `json:"LOG_LEVEL"`

	// Storage settings
	DatabasePath string        `json:"DATABASE_PATH"`
	CacheSize    int           `json:"CACHE_SIZE"`
	CacheTTL     time.Duration `json:"CACHE_TTL"`
}

// Load reads configuration from environment variables and an optional JSON
// file. Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	cfg := &Config{
		DefaultProvider: constants.ProviderOffline,
		Port:            constants.DefaultPort,
		LogLevel:        constants.DefaultLogLevel,
		CacheSize:       constants.DefaultCacheSize,
		CacheTTL:        time.Duration(constants.DefaultCacheTTL) * time.Hour,
		DatabasePath:    getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
	}

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Environment variables take precedence over file values.
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if key := os.Getenv(constants.EnvTMDBAPIKey); key != "" {
		c.TMDBAPIKey = key
	}
	if key := os.Getenv(constants.EnvOMDBAPIKey); key != "" {
		c.OMDBAPIKey = key
	}
	if provider := os.Getenv("DEFAULT_PROVIDER"); provider != "" {
		c.DefaultProvider = strings.ToLower(provider)
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// Validate checks cross-provider settings. Per-provider key checks live in
// ValidateProvider so a missing TMDB key cannot block an OMDb-only or
// offline deployment.
func (c *Config) Validate() error {
	switch c.DefaultProvider {
	case constants.ProviderTMDB, constants.ProviderOMDB, constants.ProviderOffline:
	default:
		return apperrors.NewConfigurationError(
			fmt.Sprintf("unknown DEFAULT_PROVIDER %q", c.DefaultProvider), nil)
	}
	if c.CacheSize < 0 {
		return apperrors.NewConfigurationError("CACHE_SIZE must not be negative", nil)
	}
	return nil
}

// ValidateProvider checks that the named provider is usable with this
// configuration. The check is provider-scoped: validating one provider never
// inspects another provider's settings.
func (c *Config) ValidateProvider(name string) error {
	switch name {
	case constants.ProviderTMDB:
		return validateAPIKey(name, constants.EnvTMDBAPIKey, c.TMDBAPIKey)
	case constants.ProviderOMDB:
		return validateAPIKey(name, constants.EnvOMDBAPIKey, c.OMDBAPIKey)
	case constants.ProviderOffline:
		return nil
	default:
		return apperrors.NewConfigurationError(fmt.Sprintf("unknown provider %q", name), nil)
	}
}

func validateAPIKey(provider, envVar, key string) error {
	if key == "" {
		return apperrors.NewAPIKeyMissingError(provider, envVar)
	}
	if len(key) < minAPIKeyLength || strings.ContainsAny(key, " \t\n") {
		return apperrors.NewConfigurationError(
			fmt.Sprintf("malformed API key for provider %s: check the %s environment variable", provider, envVar), nil)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
