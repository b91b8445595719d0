package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "perlin2.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv(EnvConfig, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, DefaultScaleX, cfg.Field.ScaleX)
	assert.Equal(t, DefaultScaleY, cfg.Field.ScaleY)
	assert.Equal(t, DefaultThreshold, cfg.Field.Threshold)
	assert.Equal(t, DefaultHostKey, cfg.Server.HostKey)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":3333"
  metrics_addr: ":9100"
field:
  seed: 42
  scale_x: 0.1
  threshold: 0.6
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":3333", cfg.Server.GetAddr())
	assert.Equal(t, ":9100", cfg.Server.MetricsAddr)
	assert.Equal(t, DefaultHostKey, cfg.Server.HostKey)
	assert.Equal(t, int64(42), cfg.Field.Seed)
	assert.Equal(t, 0.1, cfg.Field.ScaleX)
	assert.Equal(t, DefaultScaleY, cfg.Field.ScaleY)
	assert.Equal(t, 0.6, cfg.Field.Threshold)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "field:\n  seed: 7\n")
	t.Setenv(EnvConfig, path)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Field.Seed)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "field: [unclosed"},
		{"negative scale", "field:\n  scale_x: -1\n"},
		{"threshold too high", "field:\n  threshold: 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetAddrFallback(t *testing.T) {
	t.Setenv("PORT", "")
	s := ServerConfig{}
	assert.Equal(t, DefaultAddr, s.GetAddr())

	t.Setenv("PORT", "4444")
	assert.Equal(t, ":4444", s.GetAddr())

	s.Addr = "127.0.0.1:5555"
	assert.Equal(t, "127.0.0.1:5555", s.GetAddr())
}
