// Package config loads machine and logging settings from a TOML file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sarchlab/blockvm/core"
)

// Config is the top-level configuration.
type Config struct {
	Machine Machine `toml:"machine"`
	Log     Log     `toml:"log"`
}

// Machine configures the execution engine.
type Machine struct {
	EntryLabel int    `toml:"entry-label"`
	HeapLimit  int64  `toml:"heap-limit"`
	EOFValue   int64  `toml:"eof-value"`
	MaxSteps   uint64 `toml:"max-steps"`
}

// Log configures logging.
type Log struct {
	Level string `toml:"level"`
	Trace bool   `toml:"trace"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Machine: Machine{
			EntryLabel: core.DefaultEntryLabel,
			HeapLimit:  core.DefaultHeapLimit,
			EOFValue:   -1,
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads a TOML file. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	return Parse(string(data))
}

// Parse decodes TOML text on top of the defaults and validates the result.
func Parse(text string) (Config, error) {
	c := Default()

	md, err := toml.Decode(text, &c)
	if err != nil {
		return Config{}, fmt.Errorf("parse error: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Machine.HeapLimit <= 0 {
		return fmt.Errorf("heap-limit must be positive, got %d", c.Machine.HeapLimit)
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// SlogLevel returns the configured log level. Trace forces the trace level
// unless a lower level was asked for.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelWarn
	}

	if c.Log.Trace && level > core.LevelTrace {
		level = core.LevelTrace
	}

	return level
}

// Builder returns a machine builder carrying the machine settings.
func (c Config) Builder() core.Builder {
	return core.NewBuilder().
		WithEntryLabel(c.Machine.EntryLabel).
		WithHeapLimit(c.Machine.HeapLimit).
		WithEOFValue(c.Machine.EOFValue).
		WithMaxSteps(c.Machine.MaxSteps)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return core.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
