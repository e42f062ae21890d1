package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://localhost:8443", c.BaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.NotEmpty(t, c.DatabasePath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://localhost:8443", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}
