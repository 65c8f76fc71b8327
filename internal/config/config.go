// Package config loads the TOML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the whole settings file.
type Config struct {
	Project  string `toml:"project"`
	LogLevel string `toml:"log_level"`
	Canvas   Canvas `toml:"canvas"`
	Tools    Tools  `toml:"tools"`
	Share    Share  `toml:"share"`
}

type Canvas struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
}

type Tools struct {
	Color          string  `toml:"color"`
	Fill           string  `toml:"fill"`
	Thickness      float64 `toml:"thickness"`
	PolygonCorners int     `toml:"polygon_corners"`
	ImmediateErase bool    `toml:"immediate_erase"`
}

// Share controls the read-only live viewer.
type Share struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Project:  "untitled",
		LogLevel: "info",
		Canvas:   Canvas{Width: 800, Height: 600, Background: "#ffffff"},
		Tools:    Tools{Color: "#000000", Thickness: 1, PolygonCorners: 5},
		Share:    Share{Port: 8888, Advertise: true},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("config: canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height)
	case c.Tools.Thickness < 0:
		return fmt.Errorf("config: negative thickness %v", c.Tools.Thickness)
	case c.Share.Port < 0 || c.Share.Port > 65535:
		return fmt.Errorf("config: bad share port %d", c.Share.Port)
	}
	return nil
}

// Save writes c as TOML.
func Save(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
