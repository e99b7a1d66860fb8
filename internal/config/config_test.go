package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg := Load()

	s.Equal("http://localhost:8000/api", cfg.API.BaseURL)
	s.Equal(30*time.Second, cfg.API.Timeout)
	s.True(cfg.API.RetryOnRefresh)
	s.Equal(10, cfg.Client.RequestsPerSecond)
	s.Equal(20, cfg.Client.RequestBurst)
	s.Equal("budgetbook/1.0", cfg.Client.UserAgent)
	s.Equal(slog.LevelInfo, cfg.Client.LogLevel)
	s.Equal("EUR", cfg.Display.Currency)
	s.Equal("02/01/2006", cfg.Display.DateLayout)
	s.Equal(';', cfg.Display.CSVComma)
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.T().Setenv("API_BASE_URL", "https://api.example.com/v1/")
	s.T().Setenv("API_TIMEOUT", "5s")
	s.T().Setenv("API_RETRY_ON_REFRESH", "false")
	s.T().Setenv("CLIENT_REQUESTS_PER_SECOND", "3")
	s.T().Setenv("LOG_LEVEL", "debug")
	s.T().Setenv("DISPLAY_CURRENCY", "USD")

	cfg := Load()

	// Trailing slashes are trimmed so path joining stays predictable.
	s.Equal("https://api.example.com/v1", cfg.API.BaseURL)
	s.Equal(5*time.Second, cfg.API.Timeout)
	s.False(cfg.API.RetryOnRefresh)
	s.Equal(3, cfg.Client.RequestsPerSecond)
	s.Equal(slog.LevelDebug, cfg.Client.LogLevel)
	s.Equal("USD", cfg.Display.Currency)
}

func (s *ConfigTestSuite) TestMalformedValuesFallBack() {
	s.T().Setenv("API_TIMEOUT", "soon")
	s.T().Setenv("CLIENT_REQUEST_BURST", "lots")
	s.T().Setenv("API_RETRY_ON_REFRESH", "maybe")

	cfg := Load()

	s.Equal(30*time.Second, cfg.API.Timeout)
	s.Equal(20, cfg.Client.RequestBurst)
	s.True(cfg.API.RetryOnRefresh)
}

func (s *ConfigTestSuite) TestParseLogLevel() {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, parseLogLevel(tc.input), "input %q", tc.input)
	}
}
