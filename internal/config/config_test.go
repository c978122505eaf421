package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	os.Clearenv()
	cfg := Load()

	assert.Equal(t, ModeDemo, cfg.Mode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "nearest_to_gate", cfg.Strategy)
	assert.Equal(t, 50, cfg.PriceTwoWheeler)
	assert.Equal(t, 100, cfg.PriceFourWheeler)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "parking-lot-service", cfg.OTelServiceName)
	assert.Equal(t, "http://localhost:4318", cfg.OTelEndpoint)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_MODE", "server")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("PARKING_STRATEGY", "first_available")
	t.Setenv("PRICE_TWO_WHEELER", "20")
	t.Setenv("PRICE_FOUR_WHEELER", "80")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "first_available", cfg.Strategy)
	assert.Equal(t, 20, cfg.PriceTwoWheeler)
	assert.Equal(t, 80, cfg.PriceFourWheeler)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestInvalidValuesFallBackToDefault(t *testing.T) {
	t.Setenv("PRICE_TWO_WHEELER", "cheap")
	t.Setenv("PRICE_FOUR_WHEELER", "-5")
	t.Setenv("OTEL_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 50, cfg.PriceTwoWheeler)
	assert.Equal(t, 100, cfg.PriceFourWheeler)
	assert.True(t, cfg.OTelEnabled)
}

func TestValidMode(t *testing.T) {
	for _, mode := range []string{ModeDemo, ModeCLI, ModeServer, ModeBoth} {
		assert.True(t, ValidMode(mode), mode)
	}
	assert.False(t, ValidMode("daemon"))
}
