package raster

import (
	"image/draw"

	"VectorBoard/internal/shape"
)

// Bresenham calls plot for every pixel of the integer line from (x0, y0) to
// (x1, y1), end points included. A degenerate line plots once.
func Bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Line strokes the segment a-b. The segment is clipped to dst, then its end
// points are rounded to pixels before stepping; wide strokes stamp a square
// block at every step.
func Line(dst draw.Image, a, b shape.Point, st Style) {
	if st.Stroke == nil || !finite(a.X, a.Y, b.X, b.Y) {
		return
	}
	a, b, ok := clipSegment(a, b, surface(dst, float64(strokeWidth(st))/2+1))
	if !ok {
		return
	}
	Bresenham(round(a.X), round(a.Y), round(b.X), round(b.Y), func(x, y int) {
		stamp(dst, x, y, st.Width, st.Stroke)
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
