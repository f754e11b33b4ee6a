package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ALGORITHM", "HS256")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DATABASE_DSN", "postgres://localhost/auth")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}

func TestLoadDefaultPort(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.AppPort)
}

func TestLoadMissingSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingAlgorithm(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ALGORITHM", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadBadTTL(t *testing.T) {
	setRequired(t)

	for _, v := range []string{"", "abc", "0", "-5"} {
		t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", v)
		_, err := Load()
		assert.Error(t, err, "value %q", v)
	}
}
