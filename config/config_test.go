package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "rentwheels", cfg.ServiceName)
	assert.Equal(t, 5000, cfg.AppPort)
	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, "desc", cfg.CarsSortOrder)
	assert.Equal(t, 6, cfg.LatestCarsLimit)
	assert.Equal(t, "rentwheels", cfg.JWTIssuer)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CARS_SORT_ORDER", "asc")
	t.Setenv("LATEST_CARS_LIMIT", "10")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, 8080, cfg.AppPort)
	assert.Equal(t, "asc", cfg.CarsSortOrder)
	assert.Equal(t, 10, cfg.LatestCarsLimit)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}
