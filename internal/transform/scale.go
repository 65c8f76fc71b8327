package transform

import (
	"fmt"
	"math"

	"VectorBoard/internal/shape"
)

// MinScale keeps a scaled shape from collapsing or turning inside out.
const MinScale = 0.01

// Handle is one of the eight grips on a selection box.
type Handle int

const (
	TopLeft Handle = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

var handleNames = [...]string{"tl", "tc", "tr", "ml", "mr", "bl", "bc", "br"}

// AllHandles lists the handles in drawing order.
var AllHandles = [...]Handle{TopLeft, TopCenter, TopRight, MiddleLeft, MiddleRight, BottomLeft, BottomCenter, BottomRight}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return fmt.Sprintf("Handle(%d)", int(h))
	}
	return handleNames[h]
}

// ParseHandle reads the two-letter handle names "tl" … "br".
func ParseHandle(s string) (Handle, bool) {
	for i, n := range handleNames {
		if n == s {
			return Handle(i), true
		}
	}
	return 0, false
}

// frac is the handle position as a fraction of the box width and height.
func (h Handle) frac() (fx, fy float64) {
	switch h {
	case TopLeft:
		return 0, 0
	case TopCenter:
		return 0.5, 0
	case TopRight:
		return 1, 0
	case MiddleLeft:
		return 0, 0.5
	case MiddleRight:
		return 1, 0.5
	case BottomLeft:
		return 0, 1
	case BottomCenter:
		return 0.5, 1
	default:
		return 1, 1
	}
}

// Point is the handle's position on r.
func (h Handle) Point(r shape.Rect) shape.Point {
	fx, fy := h.frac()
	return shape.Point{X: r.Min.X + r.Dx()*fx, Y: r.Min.Y + r.Dy()*fy}
}

// Opposite is the handle across the box; it stays fixed while h is dragged.
func (h Handle) Opposite() Handle {
	return AllHandles[len(AllHandles)-1-int(h)]
}

// HandleAt returns the handle of r whose centre is within radius of p.
func HandleAt(r shape.Rect, p shape.Point, radius float64) (Handle, bool) {
	for _, h := range AllHandles {
		if h.Point(r).Dist(p) <= radius {
			return h, true
		}
	}
	return 0, false
}

// Factors derives scaleX and scaleY from dragging h by delta on a box of
// the size of bounds. Edges of zero length do not scale.
func Factors(h Handle, delta shape.Point, bounds shape.Rect) (sx, sy float64) {
	fx, fy := h.frac()
	sx, sy = 1, 1
	if w := bounds.Dx(); w > 0 {
		switch fx {
		case 0:
			sx = (w - delta.X) / w
		case 1:
			sx = (w + delta.X) / w
		}
	}
	if hgt := bounds.Dy(); hgt > 0 {
		switch fy {
		case 0:
			sy = (hgt - delta.Y) / hgt
		case 1:
			sy = (hgt + delta.Y) / hgt
		}
	}
	return math.Max(sx, MinScale), math.Max(sy, MinScale)
}

// Scale resizes s as if handle h of bounds were dragged by delta. bounds is
// the box before the drag started; the opposite handle is the fixed origin.
func Scale(s shape.Shape, h Handle, delta shape.Point, bounds shape.Rect) shape.Shape {
	sx, sy := Factors(h, delta, bounds)
	return ScaleAbout(s, h.Opposite().Point(bounds), sx, sy)
}

// ScaleAbout maps every defining point p to origin + (p − origin)·(sx, sy).
// Circles have a single radius and scale uniformly by max(sx, sy); ellipse
// radii scale independently.
func ScaleAbout(s shape.Shape, origin shape.Point, sx, sy float64) shape.Shape {
	sx, sy = math.Max(sx, MinScale), math.Max(sy, MinScale)
	if c, ok := s.(shape.Circle); ok {
		k := math.Max(sx, sy)
		c.Center = origin.Add(c.Center.Sub(origin).Mul(k))
		c.Radius *= k
		return c
	}
	out := mapPoints(s, func(p shape.Point) shape.Point {
		return shape.Point{
			X: origin.X + (p.X-origin.X)*sx,
			Y: origin.Y + (p.Y-origin.Y)*sy,
		}
	}, 1)
	if e, ok := out.(shape.Ellipse); ok {
		e.RX *= sx
		e.RY *= sy
		return e
	}
	return out
}
