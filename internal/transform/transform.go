// Package transform computes rotated, flipped, scaled and view-mapped copies
// of shapes. No function here mutates its input.
package transform

import (
	"fmt"
	"math"
	"strings"

	"VectorBoard/internal/shape"
)

// mapPoints applies f to every defining point of s. Radii are multiplied
// by k.
func mapPoints(s shape.Shape, f func(shape.Point) shape.Point, k float64) shape.Shape {
	switch v := s.(type) {
	case shape.Line:
		v.Start, v.End = f(v.Start), f(v.End)
		return v
	case shape.Circle:
		v.Center = f(v.Center)
		v.Radius *= k
		return v
	case shape.Ellipse:
		v.Center = f(v.Center)
		v.RX *= k
		v.RY *= k
		return v
	case shape.Curve:
		v.P0, v.P1, v.P2, v.P3 = f(v.P0), f(v.P1), f(v.P2), f(v.P3)
		return v
	case shape.Polygon:
		pts := make([]shape.Point, len(v.Points))
		for i, p := range v.Points {
			pts[i] = f(p)
		}
		v.Points = pts
		return v
	}
	panic(fmt.Sprintf("transform: unknown shape %T", s))
}

// Rotate turns s by degrees around center with the standard rotation
// matrix; positive angles turn clockwise on screen since y points down.
// Circle radii are unchanged. An axis-aligned ellipse keeps its axes, so a
// quarter turn swaps rx and ry and other angles only move its center.
func Rotate(s shape.Shape, center shape.Point, degrees float64) shape.Shape {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	out := mapPoints(s, func(p shape.Point) shape.Point {
		d := p.Sub(center)
		return shape.Point{
			X: center.X + d.X*cos - d.Y*sin,
			Y: center.Y + d.X*sin + d.Y*cos,
		}
	}, 1)
	if e, ok := out.(shape.Ellipse); ok && oddQuarterTurn(degrees) {
		e.RX, e.RY = e.RY, e.RX
		return e
	}
	return out
}

func oddQuarterTurn(degrees float64) bool {
	q := degrees / 90
	r := math.Round(q)
	return math.Abs(q-r) < 1e-9 && int64(r)%2 != 0
}

// Direction is the mirror axis used by Flip.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseDirection accepts "horizontal" or "vertical", in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return 0, fmt.Errorf("unknown flip direction %q", s)
}

// Flip mirrors s about center: Horizontal maps x to 2·center.x − x,
// Vertical maps y to 2·center.y − y.
func Flip(s shape.Shape, center shape.Point, dir Direction) shape.Shape {
	return mapPoints(s, func(p shape.Point) shape.Point {
		if dir == Vertical {
			p.Y = 2*center.Y - p.Y
		} else {
			p.X = 2*center.X - p.X
		}
		return p
	}, 1)
}
