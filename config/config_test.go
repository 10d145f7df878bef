package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 100, cfg.MaxRequestsPerMin)
	assert.Equal(t, "mock", cfg.VenueSource)
	assert.Equal(t, 8, cfg.MockVenueCount)
	assert.Equal(t, int64(42), cfg.MockSeed)
	assert.InDelta(t, 0.95, cfg.SimulatedSuccessRate, 1e-9)
	assert.Equal(t, 30, cfg.ContextTTLMinutes)
	assert.False(t, cfg.RemindersEnabled)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("VENUE_SOURCE", " Mongo ")
	t.Setenv("SIMULATED_SUCCESS_RATE", "0.5")
	t.Setenv("REMINDERS_ENABLED", "true")

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "mongo", cfg.VenueSource)
	assert.InDelta(t, 0.5, cfg.SimulatedSuccessRate, 1e-9)
	assert.True(t, cfg.RemindersEnabled)
}

func TestLoadRejectsOutOfRangeSuccessRate(t *testing.T) {
	t.Setenv("SIMULATED_SUCCESS_RATE", "3")
	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.InDelta(t, 0.95, cfg.SimulatedSuccessRate, 1e-9)
}
