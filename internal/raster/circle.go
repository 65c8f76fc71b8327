package raster

import (
	"image/draw"

	"VectorBoard/internal/shape"
)

// MidpointCircle walks one octant of the circle of radius r around the
// origin and reports each (x, y) with 0 <= x <= y.
func MidpointCircle(r int, visit func(x, y int)) {
	if r < 0 {
		return
	}
	x, y := 0, r
	d := 1 - r
	for x <= y {
		visit(x, y)
		x++
		if d < 0 {
			d += 2*x + 1
		} else {
			y--
			d += 2*(x-y) + 1
		}
	}
}

// Circle paints c. The fill pass runs first when st.Fill is set; the border
// is a separate pass plotted with 8-way symmetry. Circles that miss dst or
// exceed MaxRadius paint nothing.
func Circle(dst draw.Image, c shape.Circle, st Style) {
	if !finite(c.Center.X, c.Center.Y, c.Radius) || c.Radius > MaxRadius ||
		!c.Bounds().Inset(float64(strokeWidth(st))).Overlaps(surface(dst, 0)) {
		return
	}
	cx, cy, r := round(c.Center.X), round(c.Center.Y), round(c.Radius)
	if st.Fill != nil {
		MidpointCircle(r, func(x, y int) {
			hspan(dst, cx-x, cx+x, cy+y, st.Fill)
			hspan(dst, cx-x, cx+x, cy-y, st.Fill)
			hspan(dst, cx-y, cx+y, cy+x, st.Fill)
			hspan(dst, cx-y, cx+y, cy-x, st.Fill)
		})
	}
	if st.Stroke == nil {
		return
	}
	MidpointCircle(r, func(x, y int) {
		for _, p := range [8][2]int{
			{cx + x, cy + y}, {cx - x, cy + y}, {cx + x, cy - y}, {cx - x, cy - y},
			{cx + y, cy + x}, {cx - y, cy + x}, {cx + y, cy - x}, {cx - y, cy - x},
		} {
			stamp(dst, p[0], p[1], st.Width, st.Stroke)
		}
	})
}

// Marker paints the small filled disc shown on construction points.
func Marker(dst draw.Image, p shape.Point, st Style) {
	fill := st.Fill
	if fill == nil {
		fill = st.Stroke
	}
	Circle(dst, shape.Circle{Center: p, Radius: MarkerRadius}, Style{Stroke: st.Stroke, Fill: fill, Width: 1})
}

// MarkerRadius is the radius of construction point markers.
const MarkerRadius = 3
