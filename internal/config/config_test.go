package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 100*time.Millisecond, cfg.MinInterval)
	assert.Equal(t, 175, cfg.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.TTL)
	assert.Equal(t, 100, cfg.MaxLimit)
	assert.Equal(t, "https://api.scryfall.com", cfg.Search.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, ":8080", cfg.Serve.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CARDSEARCH_PAGE_SIZE", "50")
	t.Setenv("CARDSEARCH_MIN_INTERVAL", "250ms")
	t.Setenv("CARDSEARCH_SEARCH_BASE_URL", "http://localhost:9999")
	t.Setenv("CARDSEARCH_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.MinInterval)
	assert.Equal(t, "http://localhost:9999", cfg.Search.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cardsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ttl: 90s
max_limit: 25
deckvault:
  base_url: http://decks.local
log:
  pretty: true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.TTL)
	assert.Equal(t, 25, cfg.MaxLimit)
	assert.Equal(t, "http://decks.local", cfg.Deckvault.BaseURL)
	assert.True(t, cfg.Log.Pretty)
	// Untouched keys keep their defaults.
	assert.Equal(t, 175, cfg.PageSize)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv("CARDSEARCH_PAGE_SIZE", "0")
	_, err := Load("")
	assert.Error(t, err, "zero page size must be rejected")
}
