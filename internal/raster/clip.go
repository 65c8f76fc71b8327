package raster

import (
	"image/draw"
	"math"

	"VectorBoard/internal/shape"
)

const (
	// MaxRadius bounds circle and ellipse radii. Larger ones are not painted.
	MaxRadius = 1 << 20
	// MaxWidth caps the stroke width of a single stamp.
	MaxWidth = 256
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finitePoints(pts []shape.Point) bool {
	for _, p := range pts {
		if !finite(p.X, p.Y) {
			return false
		}
	}
	return true
}

func strokeWidth(st Style) int {
	return min(max(st.Width, 1), MaxWidth)
}

// surface returns the pixel centres of dst as a Rect grown by m on every side.
func surface(dst draw.Image, m float64) shape.Rect {
	b := dst.Bounds()
	r := shape.Rect{
		Min: shape.Pt(float64(b.Min.X), float64(b.Min.Y)),
		Max: shape.Pt(float64(b.Max.X-1), float64(b.Max.Y-1)),
	}
	return r.Inset(m)
}

// clipSegment cuts a-b to r (Liang-Barsky). End points already inside r are
// returned unchanged; cut ones are clamped to r against rounding error.
func clipSegment(a, b shape.Point, r shape.Rect) (shape.Point, shape.Point, bool) {
	d := b.Sub(a)
	if !finite(d.X, d.Y) {
		return a, b, false
	}
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-d.X, a.X - r.Min.X},
		{d.X, r.Max.X - a.X},
		{-d.Y, a.Y - r.Min.Y},
		{d.Y, r.Max.Y - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}
	ca, cb := a, b
	if t0 > 0 {
		ca = clampTo(a.Add(d.Mul(t0)), r)
	}
	if t1 < 1 {
		cb = clampTo(a.Add(d.Mul(t1)), r)
	}
	return ca, cb, true
}

func clampTo(p shape.Point, r shape.Rect) shape.Point {
	return shape.Pt(min(max(p.X, r.Min.X), r.Max.X), min(max(p.Y, r.Min.Y), r.Max.Y))
}

type clipEdge struct {
	vertical bool // compares X when set, Y otherwise
	v        float64
	below    bool // keeps coordinates <= v when set
}

func (e clipEdge) coord(p shape.Point) float64 {
	if e.vertical {
		return p.X
	}
	return p.Y
}

func (e clipEdge) inside(p shape.Point) bool {
	if e.below {
		return e.coord(p) <= e.v
	}
	return e.coord(p) >= e.v
}

func (e clipEdge) cross(a, b shape.Point) shape.Point {
	ca, cb := e.coord(a), e.coord(b)
	return a.Add(b.Sub(a).Mul((e.v - ca) / (cb - ca)))
}

// clipPolygon cuts the closed polygon pts to r (Sutherland-Hodgman). The
// input is not modified.
func clipPolygon(pts []shape.Point, r shape.Rect) []shape.Point {
	out := pts
	for _, e := range [4]clipEdge{
		{vertical: true, v: r.Min.X},
		{vertical: true, v: r.Max.X, below: true},
		{v: r.Min.Y},
		{v: r.Max.Y, below: true},
	} {
		in := out
		out = nil
		if len(in) == 0 {
			break
		}
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	for i, p := range out {
		out[i] = clampTo(p, r)
	}
	return out
}
