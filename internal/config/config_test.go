package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"emoji-zoo/internal/logger"
	"emoji-zoo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, models.DefaultSimulationConfig(), cfg.Simulation)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Empty(t, cfg.Render.FontPath)
	assert.Empty(t, cfg.File)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := `{
		"simulation": { "maxAge": 120, "tickInterval": "50ms", "maxSpeed": 2.5 },
		"log": { "level": "debug", "json": true },
		"render": { "fontPath": "/fonts/emoji.ttf" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Simulation.MaxAge)
	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 2.5, cfg.Simulation.MaxSpeed)
	assert.Equal(t, 490.0, cfg.Simulation.MaxBound, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "/fonts/emoji.ttf", cfg.Render.FontPath)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.File)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ZOO_SIMULATION_MAXAGE", "42")
	t.Setenv("ZOO_LOG_LEVEL", "warn")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Simulation.MaxAge)
	assert.Equal(t, logger.WarnLevel, cfg.LogLevel())
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"simulation":`), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	body := `{"simulation": {"minBound": 500, "maxBound": 10}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644))

	_, err := Load(dir)
	assert.ErrorIs(t, err, models.ErrInvalidConfig)
}

func TestLogLevel_DebugEnvWins(t *testing.T) {
	t.Setenv("DEBUG", "1")
	cfg := &Config{Log: LogConfig{Level: "error"}}
	assert.Equal(t, logger.DebugLevel, cfg.LogLevel())
}
