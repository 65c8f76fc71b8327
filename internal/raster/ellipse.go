package raster

import (
	"image/draw"

	"VectorBoard/internal/shape"
)

// MidpointEllipse walks the first quadrant of the axis-aligned ellipse with
// radii rx, ry around the origin. Region 1 covers the arc where the slope is
// above -1, region 2 the rest down to y = 0.
func MidpointEllipse(rx, ry int, visit func(x, y int)) {
	if rx < 0 || ry < 0 {
		return
	}
	if ry == 0 {
		for x := 0; x <= rx; x++ {
			visit(x, 0)
		}
		return
	}
	rx2, ry2 := float64(rx*rx), float64(ry*ry)
	x, y := 0, ry
	dx, dy := 0.0, 2*rx2*float64(y)

	d1 := ry2 - rx2*float64(ry) + 0.25*rx2
	for dx < dy {
		visit(x, y)
		x++
		dx += 2 * ry2
		if d1 < 0 {
			d1 += dx + ry2
		} else {
			y--
			dy -= 2 * rx2
			d1 += dx - dy + ry2
		}
	}

	fx, fy := float64(x)+0.5, float64(y-1)
	d2 := ry2*fx*fx + rx2*fy*fy - rx2*ry2
	for y >= 0 {
		visit(x, y)
		y--
		dy -= 2 * rx2
		if d2 > 0 {
			d2 += rx2 - dy
		} else {
			x++
			dx += 2 * ry2
			d2 += dx - dy + rx2
		}
	}
}

// Ellipse strokes the border of e with 4-way symmetry. It never fills; see
// FillEllipse. Ellipses that miss dst or exceed MaxRadius paint nothing.
func Ellipse(dst draw.Image, e shape.Ellipse, st Style) {
	if st.Stroke == nil || !onSurface(dst, e, float64(strokeWidth(st))) {
		return
	}
	cx, cy := round(e.Center.X), round(e.Center.Y)
	MidpointEllipse(round(e.RX), round(e.RY), func(x, y int) {
		stamp(dst, cx+x, cy+y, st.Width, st.Stroke)
		stamp(dst, cx-x, cy+y, st.Width, st.Stroke)
		stamp(dst, cx+x, cy-y, st.Width, st.Stroke)
		stamp(dst, cx-x, cy-y, st.Width, st.Stroke)
	})
}

func onSurface(dst draw.Image, e shape.Ellipse, margin float64) bool {
	return finite(e.Center.X, e.Center.Y, e.RX, e.RY) &&
		e.RX <= MaxRadius && e.RY <= MaxRadius &&
		e.Bounds().Inset(margin).Overlaps(surface(dst, 0))
}
