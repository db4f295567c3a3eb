package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "nexusmena-core", cfg.AppName)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, "gemini-2.5-flash-preview-tts", cfg.AI.SpeechModel)
	assert.Equal(t, "Kore", cfg.AI.SpeechVoice)
	assert.Equal(t, "GEMINI_API_KEY", cfg.AI.CredentialEnv)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	data := []byte("app_name: test\nport: 8080\nenv: production\nai:\n  model: gemini-custom\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.AppName)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "gemini-custom", cfg.AI.Model)
	// unset fields still get defaults
	assert.Equal(t, "Kore", cfg.AI.SpeechVoice)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("no_such_field: 1\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCredentialComesFromEnvOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	t.Setenv(cfg.AI.CredentialEnv, "  sk-test-123  ")
	assert.Equal(t, "sk-test-123", cfg.LoadAICredential())

	t.Setenv(cfg.AI.CredentialEnv, "")
	assert.Empty(t, cfg.LoadAICredential())
}
