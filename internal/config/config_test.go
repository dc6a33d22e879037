package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_TIMEOUT_SECONDS", "30")
	t.Setenv("ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, 30, cfg.AITimeoutSeconds)
	assert.Equal(t, "development", cfg.Env)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("MAILFLOW_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("MAILFLOW_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("MAILFLOW_TEST_MISSING", "fallback"))

	t.Setenv("MAILFLOW_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("MAILFLOW_TEST_INT", 7))
	t.Setenv("MAILFLOW_TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetEnvInt("MAILFLOW_TEST_INT", 7))
}

func TestValidate(t *testing.T) {
	cfg := &Config{AIKey: "sk-test", Env: "development"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Env: "development"}
	assert.ErrorContains(t, cfg.Validate(), "AI_API_KEY")

	cfg = &Config{AIKey: "sk-test", Env: "production"}
	assert.ErrorContains(t, cfg.Validate(), "API_TOKEN")

	cfg = &Config{AIKey: "sk-test", Env: "production", APIToken: "token"}
	assert.NoError(t, cfg.Validate())
}
