package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultFrontendURL, cfg.FrontendURL)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.ConfirmDelete)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://api.example.com/api/\nlog_level: DEBUG\n"), 0600))

	t.Setenv("MEDSHARE_ENV", "production")
	t.Setenv("MEDSHARE_CONFIRM_DELETE", "false")
	t.Setenv("MEDSHARE_FRONTEND_URL", "https://medshare.example.com/")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.APIURL)
	assert.Equal(t, "https://medshare.example.com", cfg.FrontendURL)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.ConfirmDelete)
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: [unterminated"), 0600))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.APIURL = "https://api.example.com"
	require.NoError(t, cfg.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", loaded.APIURL)
}
