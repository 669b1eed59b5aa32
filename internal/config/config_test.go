package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.EqualValues(t, 100*1024*1024, cfg.MaxFileSize)
	assert.NotEmpty(t, cfg.Version)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "default config is valid",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "invalid log level",
			config:  &Config{LogLevel: "trace", MaxFileSize: 1024},
			wantErr: true,
		},
		{
			name:    "empty log level",
			config:  &Config{LogLevel: "", MaxFileSize: 1024},
			wantErr: true,
		},
		{
			name:    "zero max file size",
			config:  &Config{LogLevel: "info", MaxFileSize: 0},
			wantErr: true,
		},
		{
			name:    "negative max file size",
			config:  &Config{LogLevel: "info", MaxFileSize: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigIsDebug(t *testing.T) {
	tests := []struct {
		logLevel string
		want     bool
	}{
		{"debug", true},
		{"info", false},
		{"warn", false},
		{"error", false},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.IsDebug())
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{Version: "9.9.9", LogLevel: "debug", MaxFileSize: 1024}
	result := cfg.String()

	assert.Contains(t, result, "Version: 9.9.9")
	assert.Contains(t, result, "LogLevel: debug")
	assert.Contains(t, result, "MaxFileSize: 1024")
}
