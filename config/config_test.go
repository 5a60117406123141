package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg := &Config{Env: "production", MaxRequestsPerMin: 10}
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestValidateFillsDevelopmentDefaults(t *testing.T) {
	cfg := &Config{Env: "development", MaxRequestsPerMin: 10}
	require.NoError(t, cfg.Validate())

	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 168, cfg.TokenTTLHours)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.True(t, cfg.DevMode())
	assert.False(t, cfg.IsProduction())
}

func TestAllowedOriginsTrimsEntries(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestLoadUsesEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, "taskhive", cfg.DatabaseName)
}

func TestValidateRejectsUnknownStoreDriver(t *testing.T) {
	cfg := &Config{StoreDriver: "sqlite", MaxRequestsPerMin: 10}
	assert.Error(t, cfg.Validate())

	cfg.StoreDriver = "memory"
	assert.NoError(t, cfg.Validate())
}
