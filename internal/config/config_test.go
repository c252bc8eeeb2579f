package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	for _, name := range []string{"API_URL", "API_KEY", "WEB_URL", "HTTP_TIMEOUT", "HTTP_ADDRESS", "METRICS_ADDRESS", "LOG_LEVEL"} {
		t.Setenv(EnvPrefix+name, "")
		require.NoError(t, os.Unsetenv(EnvPrefix+name))
	}

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "https://api.vigile.dev", cfg.APIURL)
	assert.Equal(t, "https://vigile.dev", cfg.WebURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.HTTPAddress)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_FromEnv(t *testing.T) {
	t.Setenv("VIGILE_API_URL", "http://localhost:8000")
	t.Setenv("VIGILE_API_KEY", "sk-123")
	t.Setenv("VIGILE_HTTP_TIMEOUT", "5s")
	t.Setenv("VIGILE_HTTP_ADDRESS", ":8080")
	t.Setenv("VIGILE_LOG_LEVEL", "debug")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, "sk-123", cfg.APIKey)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddress)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParse_Invalid(t *testing.T) {
	t.Run("unparsable timeout", func(t *testing.T) {
		t.Setenv("VIGILE_HTTP_TIMEOUT", "soon")
		_, err := Parse()
		assert.Error(t, err)
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		t.Setenv("VIGILE_HTTP_TIMEOUT", "0s")
		_, err := Parse()
		assert.ErrorContains(t, err, "HTTP_TIMEOUT")
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := &Config{LogLevel: "loud"}
		_, err := cfg.SlogLevel()
		assert.ErrorContains(t, err, "LOG_LEVEL")
	})
}

func TestResolveAPIBase(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"empty", "", DefaultAPIURL, false},
		{"https origin", "https://api.vigile.dev", "https://api.vigile.dev", false},
		{"https path stripped", "https://staging.vigile.dev/api/v1?x=1", "https://staging.vigile.dev", false},
		{"https with port", "https://api.example.com:8443/", "https://api.example.com:8443", false},
		{"http localhost", "http://localhost:8000", "http://localhost:8000", false},
		{"http loopback", "http://127.0.0.1:9000/", "http://127.0.0.1:9000", false},
		{"http remote", "http://api.vigile.dev", DefaultAPIURL, true},
		{"ftp", "ftp://files.example.com", DefaultAPIURL, true},
		{"no scheme", "api.vigile.dev", DefaultAPIURL, true},
		{"garbage", "://%%", DefaultAPIURL, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAPIBase(tt.raw)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
