package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", testKey)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 8081, cfg.OpsPort)
	assert.Equal(t, "wisewolf.com.br", cfg.BaseDomain)
	assert.Equal(t, "https://app.wisewolf.com.br", cfg.AppBaseURL)
	assert.Contains(t, cfg.DSN(), "dbname=onboarding")
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", testKey)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_NAME", "onboarding_test")
	t.Setenv("BASE_DOMAIN", "example.edu")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "example.edu", cfg.BaseDomain)
	assert.Contains(t, cfg.DSN(), "dbname=onboarding_test")
}

func TestLoad_RequiresEncryptionKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("ENCRYPTION_KEY", "too-short")
	_, err = Load()
	assert.Error(t, err)
}
