package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
)

// Config holds the environment-backed analyzer settings.
// Command line flags take precedence over these values.
type Config struct {
	Environment string
	LogLevel    string

	Margin analysis.MarginAccountConfig
}

// Load reads the configuration from environment variables, falling back to
// the documented margin account defaults.
func Load() *Config {
	return &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		Margin: analysis.MarginAccountConfig{
			InitialCapital:        getEnvFloat("INITIAL_CAPITAL", analysis.DefaultInitialCapital),
			Leverage:              getEnvFloat("LEVERAGE", analysis.DefaultLeverage),
			MaintenanceMarginRate: getEnvFloat("MAINTENANCE_MARGIN_RATE", analysis.DefaultMaintenanceMarginRate),
			AssumeFullExposure:    getEnvBool("ASSUME_FULL_EXPOSURE", true),
		},
	}
}

// DebugLogging reports whether the driver should print resolved settings
func (c *Config) DebugLogging() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
