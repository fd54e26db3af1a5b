package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/timzifer/interplist/internal/record"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	MaxRecordSize    int    `toml:"max_record_size"   env:"INTERPLIST_MAX_RECORD_SIZE"`
	ReservedHeadroom int    `toml:"reserved_headroom" env:"INTERPLIST_RESERVED_HEADROOM"`
	DebugTrace       bool   `toml:"debug_trace"       env:"INTERPLIST_DEBUG_TRACE"`
	LogLevel         string `toml:"log_level"         env:"INTERPLIST_LOG_LEVEL"`
	LogFormat        string `toml:"log_format"        env:"INTERPLIST_LOG_FORMAT"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		MaxRecordSize:    record.DefaultMaxSize,
		ReservedHeadroom: record.DefaultHeadroom,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// Load reads configuration from a TOML file and overlays the environment.
// If path is empty only defaults and environment are used.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that leave no room for a command frame.
func (c Config) Validate() error {
	if c.MaxRecordSize <= 0 {
		return fmt.Errorf("max_record_size must be positive, got %d", c.MaxRecordSize)
	}
	if c.ReservedHeadroom < record.HeaderSize {
		return fmt.Errorf("reserved_headroom must be at least %d, got %d", record.HeaderSize, c.ReservedHeadroom)
	}
	if c.MaxRecordSize-c.ReservedHeadroom < 4 {
		return errors.New("reserved_headroom leaves no room for a command")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}
