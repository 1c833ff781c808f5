// Package config provides YAML-based configuration loading for the
// calculator: form defaults, input limits, repeat timing, storage, SSH and
// logging settings.
package config

import "time"

// Config contains all configuration for levelup.
type Config struct {
	Defaults Defaults      `yaml:"defaults"`
	Limits   Limits        `yaml:"limits"`
	Repeat   RepeatConfig  `yaml:"repeat"`
	Storage  StorageConfig `yaml:"storage"`
	SSH      SSHConfig     `yaml:"ssh"`
	Log      LogConfig     `yaml:"log"`
}

// Defaults are the form values used on start and on reset.
type Defaults struct {
	Tier          string  `yaml:"tier" validate:"required"`
	Nature        string  `yaml:"nature" validate:"oneof=none boost reduction"`
	StartLevel    int     `yaml:"start_level" validate:"gte=1"`
	BoostRate     int     `yaml:"boost_rate" validate:"gte=1"`
	DepletionRate float64 `yaml:"depletion_rate" validate:"gte=1"`
	TargetLevel   int     `yaml:"target_level" validate:"gte=1"`
}

// Limits bound the rate inputs.
type Limits struct {
	MaxBoostRate     int     `yaml:"max_boost_rate" validate:"gte=1"`
	MaxDepletionRate float64 `yaml:"max_depletion_rate" validate:"gte=1"`
}

// RepeatConfig defines press-and-hold timing for repeat buttons.
type RepeatConfig struct {
	DelayMS    int `yaml:"delay_ms" validate:"gt=0"`    // Wait before repeating starts
	IntervalMS int `yaml:"interval_ms" validate:"gt=0"` // Time between repeats
}

// Delay returns the initial hold delay.
func (r RepeatConfig) Delay() time.Duration {
	return time.Duration(r.DelayMS) * time.Millisecond
}

// Interval returns the repeat interval.
func (r RepeatConfig) Interval() time.Duration {
	return time.Duration(r.IntervalMS) * time.Millisecond
}

// StorageConfig configures the history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address" validate:"required"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes" validate:"gte=0"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}
