package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
DB_HOST: db.internal
DB_NAME: recipes
JWT_SECRET: file-secret
ACCESS_TOKEN_TTL: 5m
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.AppPort)

	access, refresh, err := cfg.TokenTTLs()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, access)
	assert.Equal(t, DefaultRefreshTokenTTL, refresh)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "JWT_SECRET: file-secret\nDB_HOST: db.internal\n")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "db.internal", cfg.DBHost)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(writeConfig(t, "DB_HOST: x\n"))
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("REFRESH_TOKEN_TTL", "forever")

	_, err := LoadConfig(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "JWT_SECRET: [unterminated"))
	assert.Error(t, err)
}
