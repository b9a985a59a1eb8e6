package config

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("JWT_ISSUER")
	os.Unsetenv("HTTP_LISTEN_ADDR")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("CORS_ORIGINS")
	os.Unsetenv("DEV_MODE")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "", cfg.JWTSecret)
	assert.Equal(t, "authd", cfg.JWTIssuer)
	assert.Equal(t, ":8080", cfg.HTTPListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.DevMode)
}

func TestLoad_AllEnvVars(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/authd")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("JWT_ISSUER", "authd-test")
	t.Setenv("HTTP_LISTEN_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/authd", cfg.DatabaseURL)
	assert.Equal(t, strings.Repeat("s", 32), cfg.JWTSecret)
	assert.Equal(t, "authd-test", cfg.JWTIssuer)
	assert.Equal(t, ":9090", cfg.HTTPListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.DevMode)
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/authd",
		JWTSecret:   "too-short",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/authd",
		JWTSecret:   strings.Repeat("s", 32),
	}
	assert.NoError(t, cfg.Validate())
}
