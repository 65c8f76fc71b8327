package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":       {A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"red":         {R: 255, A: 255},
	"green":       {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"yellow":      {R: 255, G: 255, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"orange":      {R: 255, G: 165, A: 255},
	"purple":      {R: 128, B: 128, A: 255},
	"transparent": {},
}

// ParseColor reads "#rgb", "#rrggbb", "#rrggbbaa" or a colour name.
// An empty string yields nil, meaning "do not paint".
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("unknown colour %q", s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("bad colour length %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustColor is ParseColor for callers that prefer a fallback to an error.
func MustColor(s string, fallback color.Color) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
