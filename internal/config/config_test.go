package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithEnvOnly(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-2024-08-06")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-2024-08-06", cfg.OpenAI.Model)
	assert.Positive(t, cfg.RateLimit.Capacity)
	assert.Positive(t, cfg.RateLimit.RefillRate)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-2024-08-06")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: 9090\nrateLimit:\n  capacity: 5\n  refillRate: 1\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.RateLimit.Capacity)
	assert.Equal(t, 1, cfg.RateLimit.RefillRate)
}

func TestLoad_MissingProviderSettingsFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_MODEL", "gpt-4o-2024-08-06")
	_, err := Load(path)
	require.ErrorContains(t, err, "OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "")
	_, err = Load(path)
	require.ErrorContains(t, err, "OPENAI_MODEL")
}

func TestLoad_MalformedFileFails(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o-2024-08-06")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: a mapping"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
