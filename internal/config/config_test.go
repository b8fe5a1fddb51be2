package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/activity-roster/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.RemoteURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Empty(t, cfg.AllowedOrigins)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ROSTER_REMOTE_URL", "https://activities.example.edu")
	t.Setenv("ROSTER_REQUEST_TIMEOUT", "3s")
	t.Setenv("ROSTER_LOG_LEVEL", "debug")
	t.Setenv("ROSTER_ALLOWED_ORIGINS", "https://a.example.edu,https://b.example.edu")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://activities.example.edu", cfg.RemoteURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example.edu", "https://b.example.edu"}, cfg.AllowedOrigins)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"relative remote url", "ROSTER_REMOTE_URL", "/api"},
		{"unparseable timeout", "ROSTER_REQUEST_TIMEOUT", "soon"},
		{"zero timeout", "ROSTER_REQUEST_TIMEOUT", "0s"},
		{"unknown log level", "ROSTER_LOG_LEVEL", "loud"},
		{"negative session ttl", "ROSTER_SESSION_TTL", "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
