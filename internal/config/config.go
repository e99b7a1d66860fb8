package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Client  ClientConfig
	Display DisplayConfig
}

type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RetryOnRefresh bool
}

type ClientConfig struct {
	RequestsPerSecond int
	RequestBurst      int
	UserAgent         string
	LogLevel          slog.Level
}

type DisplayConfig struct {
	Currency   string
	DateLayout string
	CSVComma   rune
}

// Load reads configuration from the environment, after loading an optional
// .env file. Missing or malformed values fall back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{
		API: APIConfig{
			BaseURL:        strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8000/api"), "/"),
			Timeout:        getDurationEnv("API_TIMEOUT", 30*time.Second),
			RetryOnRefresh: getBoolEnv("API_RETRY_ON_REFRESH", true),
		},
		Client: ClientConfig{
			RequestsPerSecond: getIntEnv("CLIENT_REQUESTS_PER_SECOND", 10),
			RequestBurst:      getIntEnv("CLIENT_REQUEST_BURST", 20),
			UserAgent:         getEnv("CLIENT_USER_AGENT", "budgetbook/1.0"),
			LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		},
		Display: DisplayConfig{
			Currency:   getEnv("DISPLAY_CURRENCY", "EUR"),
			DateLayout: getEnv("DISPLAY_DATE_LAYOUT", "02/01/2006"),
			CSVComma:   ';',
		},
	}

	return config
}

func parseLogLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
