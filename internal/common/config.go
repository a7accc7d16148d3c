package common

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joseph-ayodele/pdftext/constants"
)

// Config holds all application configuration
type Config struct {
	Extract ExtractConfig
	Poppler PopplerConfig
	Log     LogConfig
}

// ExtractConfig holds extraction-related configuration
type ExtractConfig struct {
	Backend constants.Backend
	Mode    constants.Mode
	Timeout time.Duration // 0 = no limit
}

// PopplerConfig holds the poppler binaries used by the poppler backend
type PopplerConfig struct {
	Pdftotext string
	Pdfinfo   string
}

// LogConfig holds logging configuration. An empty Level disables logging.
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			Backend: constants.Backend(getEnv("PDFTEXT_BACKEND", string(constants.BackendNative))),
			Mode:    constants.Mode(getEnv("PDFTEXT_MODE", string(constants.ModeLayout))),
			Timeout: getEnvAsDuration("PDFTEXT_TIMEOUT", 0),
		},
		Poppler: PopplerConfig{
			Pdftotext: getEnv("PDFTEXT_PDFTOTEXT", "pdftotext"),
			Pdfinfo:   getEnv("PDFTEXT_PDFINFO", "pdfinfo"),
		},
		Log: LogConfig{
			Level: getEnv("PDFTEXT_LOG_LEVEL", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration and normalizes enum values.
func (c *Config) Validate() error {
	backend, ok := constants.ParseBackend(string(c.Extract.Backend))
	if !ok {
		return ConfigError(fmt.Sprintf("unknown PDFTEXT_BACKEND %q (want %s or %s)",
			c.Extract.Backend, constants.BackendNative, constants.BackendPoppler))
	}
	c.Extract.Backend = backend

	mode, ok := constants.ParseMode(string(c.Extract.Mode))
	if !ok {
		return ConfigError(fmt.Sprintf("unknown PDFTEXT_MODE %q (want %s or %s)",
			c.Extract.Mode, constants.ModeLayout, constants.ModePlain))
	}
	c.Extract.Mode = mode

	if c.Extract.Timeout < 0 {
		return ConfigError("PDFTEXT_TIMEOUT must not be negative")
	}
	if c.Log.Level != "" {
		if _, err := ParseLogLevel(c.Log.Level); err != nil {
			return ConfigError(err.Error())
		}
	}
	if c.Extract.Backend == constants.BackendPoppler {
		if c.Poppler.Pdftotext == "" || c.Poppler.Pdfinfo == "" {
			return ConfigError("PDFTEXT_PDFTOTEXT and PDFTEXT_PDFINFO are required for the poppler backend")
		}
	}
	return nil
}

// ParseLogLevel maps a PDFTEXT_LOG_LEVEL value to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown PDFTEXT_LOG_LEVEL %q", s)
	}
	return lvl, nil
}
