package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rebank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyFile(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "comments only", content: "# nothing set yet\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.content))
			require.NoError(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
lexicon: data/markedup
log_level: debug
log_sections: [grammar]
check:
  workers: 16
metrics:
  enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/markedup", cfg.Lexicon)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, []string{"grammar"}, cfg.LogSections)
	assert.Equal(t, 16, cfg.Check.Workers)
	assert.Equal(t, uint64(1), cfg.Check.Seed, "unset fields keep their defaults")
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "no workers", content: "check:\n  workers: 0\n"},
		{name: "too many workers", content: "check:\n  workers: 65\n"},
		{name: "unknown level", content: "log_level: loud\n"},
		{name: "unknown section", content: "log_sections: [parser]\n"},
		{name: "unknown field", content: "workers: 3\n"},
		{name: "not yaml", content: "check: [\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}
