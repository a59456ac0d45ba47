package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsESegredoDoEnv(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET_DATA", "segredo-de-teste")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []byte("segredo-de-teste"), cfg.Auth.JWTSecret)
	assert.Equal(t, 1000, cfg.Audit.BufferSize)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ACLTTL)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadConfig_EnvSobrepoeDefault(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET_DATA", "segredo-de-teste")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_SegredoAusente(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET_DATA", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
