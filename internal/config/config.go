package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	ModeDemo   = "demo"
	ModeCLI    = "cli"
	ModeServer = "server"
	ModeBoth   = "both"
)

type Config struct {
	Mode             string
	Port             string
	Environment      string
	LogLevel         string
	Strategy         string
	PriceTwoWheeler  int
	PriceFourWheeler int
	OTelEnabled      bool
	OTelServiceName  string
	OTelEndpoint     string
}

func Load() *Config {
	return &Config{
		Mode:             envOr("APP_MODE", ModeDemo),
		Port:             envOr("APP_PORT", "8080"),
		Environment:      envOr("APP_ENV", "development"),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		Strategy:         envOr("PARKING_STRATEGY", "nearest_to_gate"),
		PriceTwoWheeler:  envOrInt("PRICE_TWO_WHEELER", 50),
		PriceFourWheeler: envOrInt("PRICE_FOUR_WHEELER", 100),
		OTelEnabled:      envOrBool("OTEL_ENABLED", true),
		OTelServiceName:  envOr("OTEL_SERVICE_NAME", "parking-lot-service"),
		OTelEndpoint:     envOr("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}
}

func ValidMode(mode string) bool {
	switch mode {
	case ModeDemo, ModeCLI, ModeServer, ModeBoth:
		return true
	}
	return false
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && i >= 0 {
			return i
		}
	}
	return fallback
}

func envOrBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
