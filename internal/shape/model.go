// Package shape defines the drawing primitives, their layers and the
// collections a drawing is made of.
package shape

import "math"

// Point is a position in canvas pixel space. The origin is the top-left
// corner, x grows to the right and y grows downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point    { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point    { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point  { return Point{p.X * k, p.Y * k} }
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Lerp interpolates linearly between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Kind discriminates the five primitive types.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindEllipse
	KindCurve
	KindPolygon
)

var kindNames = [...]string{"line", "circle", "ellipse", "curve", "polygon"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Shape is implemented by Line, Circle, Ellipse, Curve and Polygon only.
type Shape interface {
	Kind() Kind
	// ID is the id of the layer the shape is bound to.
	ID() string
	// Anchor is the reference point used when dragging the shape.
	Anchor() Point
	// Pivot is the default center for rotating and flipping the shape.
	Pivot() Point
	Bounds() Rect
	Translate(d Point) Shape
	WithID(id string) Shape

	sealed()
}

type Line struct {
	Start   Point  `json:"start"`
	End     Point  `json:"end"`
	LayerID string `json:"layerId"`
}

type Circle struct {
	Center  Point   `json:"center"`
	Radius  float64 `json:"radius"`
	LayerID string  `json:"layerId"`
}

type Ellipse struct {
	Center  Point   `json:"center"`
	RX      float64 `json:"rx"`
	RY      float64 `json:"ry"`
	LayerID string  `json:"layerId"`
}

// Curve is a cubic Bézier. P0 and P3 are the end points, P1 and P2 the
// control points.
type Curve struct {
	P0      Point  `json:"p0"`
	P1      Point  `json:"p1"`
	P2      Point  `json:"p2"`
	P3      Point  `json:"p3"`
	LayerID string `json:"layerId"`
}

// Polygon is closed implicitly: the last vertex connects back to the first.
type Polygon struct {
	Points  []Point `json:"points"`
	LayerID string  `json:"layerId"`
}

func (Line) Kind() Kind    { return KindLine }
func (Circle) Kind() Kind  { return KindCircle }
func (Ellipse) Kind() Kind { return KindEllipse }
func (Curve) Kind() Kind   { return KindCurve }
func (Polygon) Kind() Kind { return KindPolygon }

func (l Line) ID() string    { return l.LayerID }
func (c Circle) ID() string  { return c.LayerID }
func (e Ellipse) ID() string { return e.LayerID }
func (c Curve) ID() string   { return c.LayerID }
func (p Polygon) ID() string { return p.LayerID }

func (Line) sealed()    {}
func (Circle) sealed()  {}
func (Ellipse) sealed() {}
func (Curve) sealed()   {}
func (Polygon) sealed() {}

func (l Line) WithID(id string) Shape    { l.LayerID = id; return l }
func (c Circle) WithID(id string) Shape  { c.LayerID = id; return c }
func (e Ellipse) WithID(id string) Shape { e.LayerID = id; return e }
func (c Curve) WithID(id string) Shape   { c.LayerID = id; return c }
func (p Polygon) WithID(id string) Shape {
	p.Points = clonePoints(p.Points)
	p.LayerID = id
	return p
}

func (l Line) Anchor() Point    { return l.Start }
func (c Circle) Anchor() Point  { return c.Center }
func (e Ellipse) Anchor() Point { return e.Center }
func (c Curve) Anchor() Point   { return c.P0 }
func (p Polygon) Anchor() Point {
	if len(p.Points) == 0 {
		return Point{}
	}
	return p.Points[0]
}

func (l Line) Pivot() Point    { return l.Start.Lerp(l.End, 0.5) }
func (c Circle) Pivot() Point  { return c.Center }
func (e Ellipse) Pivot() Point { return e.Center }
func (c Curve) Pivot() Point   { return CurveCenter(c) }
func (p Polygon) Pivot() Point {
	if len(p.Points) == 0 {
		return Point{}
	}
	var sum Point
	for _, v := range p.Points {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(p.Points)))
}

// CurveCenter is the pivot used for rotating and flipping a curve. It is the
// first end point, not the geometric centroid of the curve.
func CurveCenter(c Curve) Point { return c.P0 }

// At evaluates the curve at parameter t in [0, 1].
func (c Curve) At(t float64) Point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Point{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Sample returns n+1 points evenly spaced in t along the curve.
func (c Curve) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, n+1)
	for i := range pts {
		pts[i] = c.At(float64(i) / float64(n))
	}
	return pts
}

func (l Line) Bounds() Rect { return BoundsOf(l.Start, l.End) }

func (c Circle) Bounds() Rect {
	r := Point{c.Radius, c.Radius}
	return Rect{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

func (e Ellipse) Bounds() Rect {
	r := Point{e.RX, e.RY}
	return Rect{Min: e.Center.Sub(r), Max: e.Center.Add(r)}
}

// Bounds of a curve is the box around its control polygon, which always
// contains the curve itself.
func (c Curve) Bounds() Rect   { return BoundsOf(c.P0, c.P1, c.P2, c.P3) }
func (p Polygon) Bounds() Rect { return BoundsOf(p.Points...) }

func (l Line) Translate(d Point) Shape {
	l.Start, l.End = l.Start.Add(d), l.End.Add(d)
	return l
}

func (c Circle) Translate(d Point) Shape {
	c.Center = c.Center.Add(d)
	return c
}

func (e Ellipse) Translate(d Point) Shape {
	e.Center = e.Center.Add(d)
	return e
}

func (c Curve) Translate(d Point) Shape {
	c.P0, c.P1, c.P2, c.P3 = c.P0.Add(d), c.P1.Add(d), c.P2.Add(d), c.P3.Add(d)
	return c
}

func (p Polygon) Translate(d Point) Shape {
	pts := make([]Point, len(p.Points))
	for i, v := range p.Points {
		pts[i] = v.Add(d)
	}
	p.Points = pts
	return p
}

// RegularPolygon returns n vertices on the circle of the given radius around
// center, vertex i at angle 2πi/n starting from the positive x axis.
func RegularPolygon(center Point, radius float64, n int) []Point {
	pts := make([]Point, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Point{center.X + radius*math.Cos(a), center.Y + radius*math.Sin(a)}
	}
	return pts
}

func clonePoints(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}
