package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SOURCE_PATH", "./data/players.csv")
	t.Setenv("ENVIRONMENT", "dev")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "./data/players.csv", cfg.SourcePath)
	assert.Equal(t, "dev", cfg.Environment)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8188, cfg.Port)
	assert.Equal(t, 4194304, cfg.BodySizeLimit)
	assert.Equal(t, "prod", cfg.Environment)
}

func TestNewIntervalConfig(t *testing.T) {
	assert.Equal(t, DevIntervalConfig, NewIntervalConfig("dev"))
	assert.Equal(t, TestIntervalConfig, NewIntervalConfig("Test"))
	assert.Equal(t, ProdIntervalConfig, NewIntervalConfig("prod"))
	// Unknown environments fall back to the dev cadence.
	assert.Equal(t, DevIntervalConfig, NewIntervalConfig("staging"))
}
