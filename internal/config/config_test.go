package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WINDY_API_KEY", "test_api_key_12345")
	t.Setenv("WINDY_API_URL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test_api_key_12345", cfg.APIKey)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MissingKey(t *testing.T) {
	t.Setenv("WINDY_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WINDY_API_KEY")
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("WINDY_API_KEY", "custom-key")
	t.Setenv("WINDY_API_URL", "http://localhost:8080/point-forecast")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "custom-key", cfg.APIKey)
	assert.Equal(t, "http://localhost:8080/point-forecast", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("WINDY_API_KEY", "test_api_key_12345")

	for _, value := range []string{"banana", "-5s", "0"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("REQUEST_TIMEOUT", value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "REQUEST_TIMEOUT")
		})
	}
}
