package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldary/mediadex/internal/constants"
	apperrors "github.com/ldary/mediadex/internal/errors"
)

// clearEnv unsets every variable Load reads so tests start from a known state.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		constants.EnvTMDBAPIKey, constants.EnvOMDBAPIKey,
		"DEFAULT_PROVIDER", "PORT", "LOG_LEVEL", "DATABASE_PATH",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.json"))
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.ProviderOffline, cfg.DefaultProvider)
	assert.Equal(t, constants.DefaultPort, cfg.Port)
	assert.Equal(t, constants.DefaultCacheSize, cfg.CacheSize)
	assert.Empty(t, cfg.TMDBAPIKey)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"TMDB_API_KEY": "file-key-111",
		"DEFAULT_PROVIDER": "tmdb",
		"PORT": "9000"
	}`), 0600))
	t.Setenv("CONFIG_FILE", file)
	t.Setenv(constants.EnvTMDBAPIKey, "env-key-2222")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "env-key-2222", cfg.TMDBAPIKey)
	assert.Equal(t, "tmdb", cfg.DefaultProvider)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEFAULT_PROVIDER", "netflix")

	_, err := Load()
	require.Error(t, err)
}

func TestValidateProvider(t *testing.T) {
	cfg := &Config{TMDBAPIKey: "valid-key-123", OMDBAPIKey: ""}

	// TMDB has a well-formed key.
	require.NoError(t, cfg.ValidateProvider(constants.ProviderTMDB))

	// A missing OMDb key reports which environment variable to set, and does
	// not affect the other providers.
	err := cfg.ValidateProvider(constants.ProviderOMDB)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrorTypeAPIKeyMissing, appErr.Type)
	assert.Contains(t, appErr.Message, constants.EnvOMDBAPIKey)

	// The offline provider needs no configuration at all.
	require.NoError(t, cfg.ValidateProvider(constants.ProviderOffline))

	require.Error(t, cfg.ValidateProvider("netflix"))
}

func TestValidateProviderRejectsMalformedKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"too short", "abc"},
		{"contains whitespace", "key with spaces"},
		{"contains newline", "key\nwith-newline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TMDBAPIKey: tt.key}
			err := cfg.ValidateProvider(constants.ProviderTMDB)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrorTypeConfigurationInvalid, appErr.Type)
		})
	}
}
