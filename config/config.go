/*
Package config loads service configuration from the environment.

PURPOSE:
  One place that knows every knob the service reads. A local .env file is
  loaded first when present (development convenience); real environments set
  variables directly and the absence of .env is not an error.

VARIABLES:
  PORT            HTTP listen port                  (default 8080)
  LOG_LEVEL       debug | info | warn | error       (default info)
  DB_PATH         SQLite database path              (default income.db)
  HMRC_API_URL    base URL of the income record API (default http://localhost:8083)
  HMRC_TIMEOUT_S  HMRC request timeout in seconds   (default 30)

  Engine constants (threshold schedule, window sizes) are deliberately NOT
  environment-driven: they are immigration-rule figures owned by the
  validators' constructors.

SEE ALSO:
  - cmd/server/main.go: the only consumer
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server process needs from its environment.
type Config struct {
	Port        int
	LogLevel    string
	DBPath      string
	HmrcBaseURL string
	HmrcTimeout time.Duration
}

// Load reads configuration from the environment, consulting .env first.
func Load() (Config, error) {
	// missing .env is the normal case outside development
	_ = godotenv.Load()

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	timeoutSeconds, err := intEnv("HMRC_TIMEOUT_S", 30)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:        port,
		LogLevel:    stringEnv("LOG_LEVEL", "info"),
		DBPath:      stringEnv("DB_PATH", "income.db"),
		HmrcBaseURL: stringEnv("HMRC_API_URL", "http://localhost:8083"),
		HmrcTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

func stringEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", key, value, err)
	}
	return parsed, nil
}
