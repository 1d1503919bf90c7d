// Package config loads ~/.config/logicdraw/config.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	SaveDirectory string  `toml:"save_directory"`
	Database      string  `toml:"database"`
	SnapToLine    bool    `toml:"snap_to_line"`
	PinRadius     float64 `toml:"pin_radius"`
	HitOffset     float64 `toml:"hit_offset"`
	MinZoom       float64 `toml:"min_zoom"`
	MaxZoom       float64 `toml:"max_zoom"`
	LogFile       string  `toml:"log_file"`
	LogLevel      string  `toml:"log_level"`
}

func Default() *Config {
	return &Config{
		PinRadius: 4,
		HitOffset: 2,
		MinZoom:   0.1,
		MaxZoom:   10,
		LogLevel:  "info",
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logicdraw", "config.toml"), nil
}

// Load reads the default config file. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the TOML file at path over the defaults. Unknown keys are
// rejected so that typos do not pass silently.
func LoadFile(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := c.normalize(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) normalize() error {
	c.SaveDirectory = expandPath(c.SaveDirectory)
	c.LogFile = expandPath(c.LogFile)
	if c.Database != ":memory:" {
		c.Database = expandPath(c.Database)
	}

	if c.PinRadius <= 0 {
		return fmt.Errorf("pin_radius must be positive, got %v", c.PinRadius)
	}
	if c.HitOffset < 0 {
		return fmt.Errorf("hit_offset must not be negative, got %v", c.HitOffset)
	}
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom {
		return fmt.Errorf("zoom range [%v, %v] is invalid", c.MinZoom, c.MaxZoom)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// expandPath resolves a leading ~ and makes relative paths absolute.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	return p
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// DatabasePath returns the configured database, defaulting to
// diagrams.db next to the config file.
func (c *Config) DatabasePath() (string, error) {
	if c.Database != "" {
		return c.Database, nil
	}
	path, err := Path()
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "diagrams.db"), nil
}

// GetSavePath resolves a file name against the save directory, creating
// the directory if needed. Absolute names are returned unchanged.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
