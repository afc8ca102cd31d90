package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	APIBaseURL  string
	ServerPort  string
	StoreDriver string
	StoreDSN    string
	Profile     string
	LogLevel    string
	HTTPTimeout time.Duration
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Debug().Msg("no .env file found, using system environment variables")
	}

	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8000"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", "sqlite"),
		StoreDSN:    getEnv("STORE_DSN", "taskdesk.db"),
		Profile:     getEnv("PROFILE", "default"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 0)) * time.Second,
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		log.Warn().Str("key", key).Str("value", value).Msg("ignoring invalid number")
		return defaultVal
	}
	return n
}
