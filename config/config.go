// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the engine and CLI.
type Config struct {
	Audio   AudioConfig   `mapstructure:"audio"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AudioConfig holds the output device and queue settings. Sample rate and
// buffer size are fixed at startup; they are not renegotiated mid-session.
type AudioConfig struct {
	SampleRate        int `mapstructure:"sample_rate"`
	Channels          int `mapstructure:"channels"`
	BufferMillis      int `mapstructure:"buffer_ms"`
	CommandQueueDepth int `mapstructure:"command_queue_depth"`
	LoaderQueueDepth  int `mapstructure:"loader_queue_depth"`
}

// AssetsConfig holds asset lookup paths.
type AssetsConfig struct {
	SoundDir string `mapstructure:"sound_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // empty logs to stderr
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetDefault("audio.sample_rate", 48000)
	viper.SetDefault("audio.channels", 2)
	viper.SetDefault("audio.buffer_ms", 20)
	viper.SetDefault("audio.command_queue_depth", 64)
	viper.SetDefault("audio.loader_queue_depth", 32)
	viper.SetDefault("assets.sound_dir", "assets/sounds")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.max_size_mb", 10)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age_days", 28)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.cadenza")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CADENZA")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file is fine; defaults and env cover everything.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations the audio device cannot honor.
func (c *Config) Validate() error {
	if c.Audio.SampleRate < 8000 || c.Audio.SampleRate > 192000 {
		return &Error{Field: "audio.sample_rate", Message: "must be between 8000 and 192000"}
	}
	if c.Audio.Channels < 1 || c.Audio.Channels > 2 {
		return &Error{Field: "audio.channels", Message: "must be 1 (mono) or 2 (stereo)"}
	}
	if c.Audio.BufferMillis < 0 {
		return &Error{Field: "audio.buffer_ms", Message: "must not be negative"}
	}
	return nil
}

// Error represents a configuration validation error.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}
