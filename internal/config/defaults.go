package config

import (
	_ "embed"
)

//go:embed defaults/levelup.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Tier:          "600",
			Nature:        "none",
			StartLevel:    1,
			BoostRate:     1,
			DepletionRate: 1,
			TargetLevel:   2,
		},
		Limits: Limits{
			MaxBoostRate:     10,
			MaxDepletionRate: 10,
		},
		Repeat: RepeatConfig{
			DelayMS:    500,
			IntervalMS: 100,
		},
		Storage: StorageConfig{
			DBPath: "~/.levelup/history.db",
		},
		SSH: SSHConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
