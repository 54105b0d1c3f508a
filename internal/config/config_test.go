package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "8181"
database:
  url: postgres://localhost:5432/signup
jwt:
  secret_key: test-secret
  token_ttl: 1h
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8181", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost:5432/signup", cfg.Database.URL)
	assert.Equal(t, "test-secret", cfg.JWT.SecretKey)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL)

	// Unset values keep their defaults.
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "8181"
database:
  url: postgres://localhost:5432/signup
jwt:
  secret_key: from-file
`)

	t.Setenv("SIGNUP_SERVER__PORT", "9999")
	t.Setenv("SIGNUP_JWT__SECRET_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("SIGNUP_DATABASE__URL", "postgres://localhost:5432/signup")
	t.Setenv("SIGNUP_JWT__SECRET_KEY", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/signup", cfg.Database.URL)
	assert.Equal(t, "env-secret", cfg.JWT.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenTTL)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfigFile(t, `
database:
  url: postgres://localhost:5432/signup
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret_key")
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret_key: test-secret
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
