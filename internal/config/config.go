// Package config holds pdftool's runtime knobs, loaded from CLI flags
// with an optional environment-variable layer underneath. Grounded
// on the teacher's internal/config/config.go for the overall
// Default/LoadFromFlags/Validate shape, trimmed of its MCP-server-only
// fields (Mode, Host, Port, PDFDirectory, ServerName — none of which
// describes a local CLI operating on files the caller names directly).
// Unlike the teacher, which declares spf13/pflag and spf13/viper in
// go.mod but never imports them, this package actually wires both.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultLogLevel is used when -loglevel is not given.
	DefaultLogLevel = "info"

	// DefaultMaxFileSize guards Load against absurd inputs before the
	// parser ever runs.
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// EnvPrefix is the environment-variable namespace viper reads
	// under, e.g. PDFTOOL_LOGLEVEL.
	EnvPrefix = "PDFTOOL"
)

// Config holds pdftool's runtime knobs.
type Config struct {
	Version     string
	LogLevel    string
	MaxFileSize int64
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:     "0.1.0",
		LogLevel:    DefaultLogLevel,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// LoadFromFlags defines the CLI flag set with pflag, layers an optional
// PDFTOOL_* environment-variable source beneath it with viper, binds the
// two together, and returns the resulting configuration. args is
// typically os.Args[1:]; passing it explicitly keeps this testable
// without touching the process's real argv.
func LoadFromFlags(args []string) (*Config, error) {
	cfg := DefaultConfig()

	fs := pflag.NewFlagSet("pdftool", pflag.ContinueOnError)
	fs.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	cfg.LogLevel = v.GetString("loglevel")
	cfg.MaxFileSize = v.GetInt64("maxfilesize")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Version: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Version, c.LogLevel, c.MaxFileSize)
}
