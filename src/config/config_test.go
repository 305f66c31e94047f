package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "config.json"))
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.API.Model)
	assert.Equal(t, 8, cfg.Chat.MaxTurns)
	assert.Equal(t, 1500, cfg.Chat.ToolLatencyMs)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api": {"model": "openai/gpt-4o-mini"},
		"chat": {"max_turns": 4},
		"log": {"level": "debug"}
	}`), 0o644))

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.API.Model)
	assert.Equal(t, 4, cfg.Chat.MaxTurns)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 1500, cfg.Chat.ToolLatencyMs)
}

func TestEnvironmentOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api": {"model": "from-file"}}`), 0o644))

	t.Setenv("AUTORETURN_MODEL", "from-env")
	t.Setenv("AUTORETURN_MAX_TURNS", "2")
	t.Setenv("AUTORETURN_API_KEY", "sk-test")

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Model)
	assert.Equal(t, 2, cfg.Chat.MaxTurns)
	assert.Equal(t, "sk-test", cfg.API.APIKey)
}

func TestOpenRouterKeyFallback(t *testing.T) {
	t.Setenv("AUTORETURN_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY", "sk-fallback")

	cfg, err := NewLoader(filepath.Join(t.TempDir(), "config.json")).Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.API.APIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log": {"level": "verbose"}}`), 0o644))

	_, err := NewLoader(path).Load()
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Level", verr.Field)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	loader := NewLoader(path)

	cfg := DefaultConfig()
	cfg.API.Model = "anthropic/claude-sonnet-4"
	require.NoError(t, loader.SaveFile(cfg))

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-sonnet-4", loaded.API.Model)
}
