package shape

import "math"

// Rect is an axis-aligned box. Min is the top-left corner.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// BoundsOf returns the smallest Rect containing every point.
// It returns the zero Rect for no points.
func BoundsOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Inset grows r by d on every side; a negative d shrinks it.
func (r Rect) Inset(d float64) Rect {
	return Rect{Min: Point{r.Min.X - d, r.Min.Y - d}, Max: Point{r.Max.X + d, r.Max.Y + d}}
}

// Overlaps reports whether r and o share at least one point.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Max.X < o.Min.X || o.Max.X < r.Min.X ||
		r.Max.Y < o.Min.Y || o.Max.Y < r.Min.Y)
}
