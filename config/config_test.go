// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"testing"
)

func defaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate:        48000,
			Channels:          2,
			BufferMillis:      20,
			CommandQueueDepth: 64,
			LoaderQueueDepth:  32,
		},
		Assets:  AssetsConfig{SoundDir: "assets/sounds"},
		Logging: LoggingConfig{Level: "info"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("sample rate = %d, want 48000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 2 {
		t.Errorf("channels = %d, want 2", cfg.Audio.Channels)
	}
	if cfg.Audio.BufferMillis != 20 {
		t.Errorf("buffer ms = %d, want 20", cfg.Audio.BufferMillis)
	}
	if cfg.Audio.CommandQueueDepth != 64 {
		t.Errorf("command queue depth = %d, want 64", cfg.Audio.CommandQueueDepth)
	}
	if cfg.Audio.LoaderQueueDepth != 32 {
		t.Errorf("loader queue depth = %d, want 32", cfg.Audio.LoaderQueueDepth)
	}
	if cfg.Assets.SoundDir != "assets/sounds" {
		t.Errorf("sound dir = %q, want assets/sounds", cfg.Assets.SoundDir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:      "sample rate too low",
			mutate:    func(c *Config) { c.Audio.SampleRate = 4000 },
			wantField: "audio.sample_rate",
		},
		{
			name:      "sample rate too high",
			mutate:    func(c *Config) { c.Audio.SampleRate = 384000 },
			wantField: "audio.sample_rate",
		},
		{
			name:      "zero channels",
			mutate:    func(c *Config) { c.Audio.Channels = 0 },
			wantField: "audio.channels",
		},
		{
			name:      "surround not supported",
			mutate:    func(c *Config) { c.Audio.Channels = 6 },
			wantField: "audio.channels",
		},
		{
			name:      "negative buffer",
			mutate:    func(c *Config) { c.Audio.BufferMillis = -1 },
			wantField: "audio.buffer_ms",
		},
		{
			name:   "mono is fine",
			mutate: func(c *Config) { c.Audio.Channels = 1 },
		},
		{
			name:   "zero buffer picks the device default",
			mutate: func(c *Config) { c.Audio.BufferMillis = 0 },
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() error = %v, want *config.Error", err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("error field = %q, want %q", cerr.Field, tt.wantField)
			}
		})
	}
}
