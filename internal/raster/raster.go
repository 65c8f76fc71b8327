// Package raster scan-converts shapes onto an image. Lines use Bresenham's
// algorithm, circles and ellipses the midpoint algorithms; curves and
// polygon fills go through a path rasterizer.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Style is the paint applied to a shape. A nil colour paints nothing.
// Width is the stroke width in pixels; values below 1 count as 1.
type Style struct {
	Stroke color.Color
	Fill   color.Color
	Width  int
}

// round matches the usual pixel rounding: halves go up.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// stamp paints the w×w block centred on (x, y), or one pixel when w <= 1.
// The block is clipped to dst and w is capped at MaxWidth.
func stamp(dst draw.Image, x, y, w int, c color.Color) {
	b := dst.Bounds()
	if w <= 1 {
		if (image.Point{x, y}).In(b) {
			dst.Set(x, y, c)
		}
		return
	}
	w = min(w, MaxWidth)
	x0, y0 := x-w/2, y-w/2
	r := image.Rect(x0, y0, x0+w, y0+w).Intersect(b)
	for j := r.Min.Y; j < r.Max.Y; j++ {
		for i := r.Min.X; i < r.Max.X; i++ {
			dst.Set(i, j, c)
		}
	}
}

func hspan(dst draw.Image, x0, x1, y int, c color.Color) {
	b := dst.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := max(x0, b.Min.X); x <= min(x1, b.Max.X-1); x++ {
		dst.Set(x, y, c)
	}
}

// Clear fills the whole surface with c.
func Clear(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect paints r with c.
func FillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}
