package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
)

// TestLoad_Defaults tests the documented margin defaults without environment overrides
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("INITIAL_CAPITAL", "")
	t.Setenv("LEVERAGE", "")
	t.Setenv("MAINTENANCE_MARGIN_RATE", "")
	t.Setenv("ASSUME_FULL_EXPOSURE", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, analysis.DefaultInitialCapital, cfg.Margin.InitialCapital)
	assert.Equal(t, analysis.DefaultLeverage, cfg.Margin.Leverage)
	assert.Equal(t, analysis.DefaultMaintenanceMarginRate, cfg.Margin.MaintenanceMarginRate)
	assert.True(t, cfg.Margin.AssumeFullExposure)
}

// TestLoad_EnvironmentOverrides tests environment variables taking effect
func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("INITIAL_CAPITAL", "1500")
	t.Setenv("LEVERAGE", "5")
	t.Setenv("MAINTENANCE_MARGIN_RATE", "0.01")
	t.Setenv("ASSUME_FULL_EXPOSURE", "false")

	cfg := Load()

	assert.Equal(t, 1500.0, cfg.Margin.InitialCapital)
	assert.Equal(t, 5.0, cfg.Margin.Leverage)
	assert.Equal(t, 0.01, cfg.Margin.MaintenanceMarginRate)
	assert.False(t, cfg.Margin.AssumeFullExposure)
}

// TestConfig_DebugLogging tests the case-insensitive log level gate
func TestConfig_DebugLogging(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	assert.True(t, Load().DebugLogging())

	t.Setenv("LOG_LEVEL", "info")
	assert.False(t, Load().DebugLogging())
}

// TestLoad_InvalidValuesFallBack tests that unparseable values keep the defaults
func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("INITIAL_CAPITAL", "a lot")
	t.Setenv("ASSUME_FULL_EXPOSURE", "maybe")

	cfg := Load()

	assert.Equal(t, analysis.DefaultInitialCapital, cfg.Margin.InitialCapital)
	assert.True(t, cfg.Margin.AssumeFullExposure)
}
