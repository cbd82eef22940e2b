package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://solarsavers.in ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://solarsavers.in"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 3, cfg.Weather.Timeout)
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		Database:    DatabaseConfig{Driver: "memory"},
		JWT:         JWTConfig{SecretKey: defaultJWTSecret, AccessTokenTTL: 24},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.SecretKey = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "mongo"},
		JWT:      JWTConfig{SecretKey: "x", AccessTokenTTL: 24},
	}
	assert.Error(t, cfg.Validate())
}

func TestDSNPrefersURL(t *testing.T) {
	d := DatabaseConfig{URL: "postgres://u:p@db/solar", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@db/solar", d.DSN())

	d.URL = ""
	assert.Contains(t, d.DSN(), "host=ignored")
}
