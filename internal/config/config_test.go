package config_test

import (
	"testing"
	"time"

	"taskdesk/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT_SECONDS", "nope")

	cfg := config.Load()

	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://tasks.example.com")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("STORE_DSN", "host=db")
	t.Setenv("PROFILE", "work")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "15")

	cfg := config.Load()

	assert.Equal(t, &config.Config{
		APIBaseURL:  "https://tasks.example.com",
		ServerPort:  "9090",
		StoreDriver: "postgres",
		StoreDSN:    "host=db",
		Profile:     "work",
		LogLevel:    "debug",
		HTTPTimeout: 15 * time.Second,
	}, cfg)
}
