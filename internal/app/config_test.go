package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig(Config{})
		require.NoError(t, err)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 1, cfg.Iterations)
	})

	t.Run("normalises case", func(t *testing.T) {
		cfg, err := NewConfig(Config{LogFormat: "JSON", LogLevel: "Debug"})
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	invalid := map[string]Config{
		"log format":       {LogFormat: "xml"},
		"log level":        {LogLevel: "trace"},
		"iterations":       {Iterations: -1},
		"workers":          {WorkerCount: -2},
		"healthcheck port": {HealthcheckPort: 70000},
	}
	for name, cfg := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			_, err := NewConfig(cfg)
			assert.Error(t, err)
		})
	}
}
