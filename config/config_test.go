package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
optimizer:
  algorithm: balanced
  max_hours_per_day: 6
  settings:
    slice_hours: 1.5
holidays:
  - "2026-12-25"
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "balanced", cfg.Optimizer.Algorithm)
	require.Equal(t, 6.0, cfg.Optimizer.MaxHoursPerDay)
	require.Equal(t, []string{"2026-12-25"}, cfg.Holidays)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, "config.json", `{"optimizer":{}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "greedy", cfg.Optimizer.Algorithm)
	require.Equal(t, 8.0, cfg.Optimizer.MaxHoursPerDay)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeFile(t, "config.toml", "x = 1")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadHours(t *testing.T) {
	path := writeFile(t, "config.yaml", "optimizer:\n  max_hours_per_day: -1\n")
	_, err := Load(path)
	require.Error(t, err)
}
