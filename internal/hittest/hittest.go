// Package hittest maps a canvas position to the topmost visible shape.
package hittest

import (
	"math"

	"VectorBoard/internal/shape"
)

const (
	// Threshold is the pixel distance within which a stroke counts as hit.
	Threshold = 5.0
	// EllipseTolerance is the allowed deviation of the normalised ellipse
	// equation from 1. It is measured in normalised space, not pixels.
	EllipseTolerance = 0.1
	// CurveSegments is the number of chords a curve is sampled into.
	CurveSegments = 50
)

// Result identifies a hit. Index is the shape's position in its collection
// at query time and goes stale on the next mutation.
type Result struct {
	LayerID string
	Index   int
	Kind    shape.Kind
}

// Hit reports whether r names a shape.
func (r Result) Hit() bool { return r.LayerID != "" }

// Mode selects the per-type predicates.
type Mode int

const (
	// Outline is used by the tools: strokes and circle/ellipse borders must
	// be near the point, polygons are hit inside or near a vertex.
	Outline Mode = iota
	// Area is "click anywhere inside": circles and ellipses by interior,
	// polygons by bounding box.
	Area
)

// Find returns the topmost shape under p with Outline semantics.
func Find(d *shape.Drawing, p shape.Point) Result { return Lookup(d, p, Outline) }

// FindArea returns the topmost shape under p with Area semantics.
func FindArea(d *shape.Drawing, p shape.Point) Result { return Lookup(d, p, Area) }

// Lookup scans lines, circles, ellipses, curves and polygons in that order,
// newest first within each kind, and returns the first visible match.
func Lookup(d *shape.Drawing, p shape.Point, mode Mode) Result {
	visible := func(id string) bool {
		l := d.Layer(id)
		return l != nil && l.Visible
	}
	for i := len(d.Lines) - 1; i >= 0; i-- {
		v := d.Lines[i]
		if visible(v.LayerID) && NearSegment(v.Start, v.End, p, Threshold) {
			return Result{v.LayerID, i, shape.KindLine}
		}
	}
	for i := len(d.Circles) - 1; i >= 0; i-- {
		v := d.Circles[i]
		hit := NearCircleBorder(v, p, Threshold)
		if mode == Area {
			hit = InsideCircle(v, p)
		}
		if visible(v.LayerID) && hit {
			return Result{v.LayerID, i, shape.KindCircle}
		}
	}
	for i := len(d.Ellipses) - 1; i >= 0; i-- {
		v := d.Ellipses[i]
		hit := NearEllipseBorder(v, p, EllipseTolerance)
		if mode == Area {
			hit = InsideEllipse(v, p)
		}
		if visible(v.LayerID) && hit {
			return Result{v.LayerID, i, shape.KindEllipse}
		}
	}
	for i := len(d.Curves) - 1; i >= 0; i-- {
		v := d.Curves[i]
		if visible(v.LayerID) && NearCurve(v, p, Threshold) {
			return Result{v.LayerID, i, shape.KindCurve}
		}
	}
	for i := len(d.Polygons) - 1; i >= 0; i-- {
		v := d.Polygons[i]
		var hit bool
		if mode == Area {
			hit = InsideBounds(v, p)
		} else {
			hit = InsidePolygon(v, p) || NearPolygonVertex(v, p, Threshold)
		}
		if visible(v.LayerID) && hit {
			return Result{v.LayerID, i, shape.KindPolygon}
		}
	}
	return Result{Index: -1}
}

// SegmentDistance is the distance from p to the segment a-b, using the
// projection of p clamped to the segment.
func SegmentDistance(a, b, p shape.Point) float64 {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(d.Mul(t)))
}

// NearSegment reports whether p is within threshold of the segment a-b.
func NearSegment(a, b, p shape.Point, threshold float64) bool {
	return SegmentDistance(a, b, p) <= threshold
}

// NearCircleBorder tests the ring around the circle's border.
func NearCircleBorder(c shape.Circle, p shape.Point, threshold float64) bool {
	return math.Abs(p.Dist(c.Center)-c.Radius) < threshold
}

// InsideCircle tests the filled disc.
func InsideCircle(c shape.Circle, p shape.Point) bool {
	return p.Dist(c.Center) <= c.Radius
}

// ellipseValue evaluates ((x-cx)/rx)² + ((y-cy)/ry)². A zero radius makes
// the ellipse degenerate and the value infinite unless p is on its axis.
func ellipseValue(e shape.Ellipse, p shape.Point) float64 {
	term := func(d, r float64) float64 {
		if r == 0 {
			if d == 0 {
				return 0
			}
			return math.Inf(1)
		}
		return (d / r) * (d / r)
	}
	return term(p.X-e.Center.X, e.RX) + term(p.Y-e.Center.Y, e.RY)
}

// NearEllipseBorder tests |value - 1| < tolerance in normalised space.
func NearEllipseBorder(e shape.Ellipse, p shape.Point, tolerance float64) bool {
	return math.Abs(ellipseValue(e, p)-1) < tolerance
}

// InsideEllipse tests the filled ellipse.
func InsideEllipse(e shape.Ellipse, p shape.Point) bool {
	return ellipseValue(e, p) <= 1
}

// NearCurve samples c into CurveSegments chords and tests each one. Points
// outside the padded control box are rejected before sampling.
func NearCurve(c shape.Curve, p shape.Point, threshold float64) bool {
	if !c.Bounds().Inset(threshold).Contains(p) {
		return false
	}
	pts := c.Sample(CurveSegments)
	for i := 1; i < len(pts); i++ {
		if NearSegment(pts[i-1], pts[i], p, threshold) {
			return true
		}
	}
	return false
}

// NearPolygonVertex reports whether p is within threshold of any vertex.
func NearPolygonVertex(poly shape.Polygon, p shape.Point, threshold float64) bool {
	for _, v := range poly.Points {
		if p.Dist(v) <= threshold {
			return true
		}
	}
	return false
}

// InsidePolygon is the even-odd ray casting test.
func InsidePolygon(poly shape.Polygon, p shape.Point) bool {
	pts := poly.Points
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// InsideBounds tests the polygon's bounding box.
func InsideBounds(poly shape.Polygon, p shape.Point) bool {
	if len(poly.Points) == 0 {
		return false
	}
	return poly.Bounds().Contains(p)
}
