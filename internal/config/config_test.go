package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
project = "garden"
log_level = "debug"

[canvas]
width = 1024

[tools]
color = "red"
polygon_corners = 8
immediate_erase = true

[share]
enabled = true
port = 9000
`))
	require.NoError(t, err)
	assert.Equal(t, "garden", cfg.Project)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.Canvas.Width)
	assert.Equal(t, 600, cfg.Canvas.Height, "unset keys keep defaults")
	assert.Equal(t, "red", cfg.Tools.Color)
	assert.Equal(t, 8, cfg.Tools.PolygonCorners)
	assert.True(t, cfg.Tools.ImmediateErase)
	assert.True(t, cfg.Share.Enabled)
	assert.True(t, cfg.Share.Advertise)
	assert.Equal(t, 9000, cfg.Share.Port)
}

func TestParseErrors(t *testing.T) {
	for name, in := range map[string]string{
		"syntax":      "project = ",
		"unknown key": "colour = 1",
		"bad size":    "[canvas]\nwidth = 0",
		"bad port":    "[share]\nport = 70000",
		"thickness":   "[tools]\nthickness = -1",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectorboard.toml")
	cfg := Default()
	cfg.Project = "roundtrip"
	cfg.Tools.Fill = "#00ff00"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be read as a file.
	_, err := Load(dir)
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[canvas"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
