package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadCustomPathPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelup.yaml")
	data := []byte("defaults:\n  tier: \"1320\"\n  nature: boost\nrepeat:\n  interval_ms: 50\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1320", cfg.Defaults.Tier)
	assert.Equal(t, "boost", cfg.Defaults.Nature)
	assert.Equal(t, 1, cfg.Defaults.StartLevel)
	assert.Equal(t, 500*time.Millisecond, cfg.Repeat.Delay())
	assert.Equal(t, 50*time.Millisecond, cfg.Repeat.Interval())
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	tests := map[string]string{
		"bad yaml":        "defaults: [",
		"bad nature":      "defaults:\n  nature: sleepy\n",
		"zero interval":   "repeat:\n  interval_ms: 0\n",
		"boost above max": "defaults:\n  boost_rate: 12\n",
		"bad log level":   "log:\n  level: loud\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/.levelup/history.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".levelup", "history.db"), got)

	got, err = ExpandHome("/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", got)
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 30*time.Minute, SSHConfig{IdleTimeoutMinutes: 30}.IdleTimeout())
}
