package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"VectorBoard/internal/shape"
)

// kappa places cubic control points for a quarter ellipse arc.
const kappa = 0.5522847498307936

func newPath(dst draw.Image) *vector.Rasterizer {
	b := dst.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

func paintPath(dst draw.Image, z *vector.Rasterizer, c color.Color) {
	b := dst.Bounds()
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// pathPoint converts p to rasterizer space, whose origin is dst.Bounds().Min.
func pathPoint(dst draw.Image, p shape.Point) (float32, float32) {
	m := dst.Bounds().Min
	return float32(p.X - float64(m.X)), float32(p.Y - float64(m.Y))
}

// curveSegments picks a flattening resolution from the control polygon length.
func curveSegments(c shape.Curve) int {
	n := int((c.P0.Dist(c.P1) + c.P1.Dist(c.P2) + c.P2.Dist(c.P3)) / 4)
	return min(max(n, 16), 256)
}

// Curve strokes the cubic Bézier c. It is evaluated along its path and
// painted by the path rasterizer rather than stepped pixel by pixel.
func Curve(dst draw.Image, c shape.Curve, st Style) {
	if st.Stroke == nil || !finitePoints([]shape.Point{c.P0, c.P1, c.P2, c.P3}) {
		return
	}
	Polyline(dst, c.Sample(curveSegments(c)), st)
}

// Polyline strokes the open path through pts with the path rasterizer.
// Every segment becomes a quad of the stroke width, extended by half the
// width at both ends so consecutive quads overlap at the joints. Quads are
// clipped to dst before they reach the rasterizer.
func Polyline(dst draw.Image, pts []shape.Point, st Style) {
	if st.Stroke == nil || len(pts) == 0 || !finitePoints(pts) {
		return
	}
	hw := float64(strokeWidth(st)) / 2
	clip := surface(dst, 2)
	z := newPath(dst)
	segments, drawn := 0, false
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		l := a.Dist(b)
		if l == 0 {
			continue
		}
		segments++
		u := b.Sub(a).Mul(1 / l)
		n := shape.Pt(-u.Y*hw, u.X*hw)
		a, b = a.Sub(u.Mul(hw)), b.Add(u.Mul(hw))
		quad := clipPolygon([]shape.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, clip)
		if len(quad) < 3 {
			continue
		}
		tracePath(dst, z, quad)
		drawn = true
	}
	if segments == 0 {
		stamp(dst, round(pts[0].X), round(pts[0].Y), st.Width, st.Stroke)
		return
	}
	if drawn {
		paintPath(dst, z, st.Stroke)
	}
}

// tracePath adds the closed polygon pts to z.
func tracePath(dst draw.Image, z *vector.Rasterizer, pts []shape.Point) {
	x, y := pathPoint(dst, pts[0])
	z.MoveTo(x, y)
	for _, q := range pts[1:] {
		x, y = pathPoint(dst, q)
		z.LineTo(x, y)
	}
	z.ClosePath()
}

// Polygon paints p: the fill through the path rasterizer first (three or
// more points and a fill colour), then one Bresenham line per edge,
// including the closing edge from the last point to the first. Fewer than
// two points paint nothing.
func Polygon(dst draw.Image, p shape.Polygon, st Style) {
	n := len(p.Points)
	if n < 2 || !finitePoints(p.Points) {
		return
	}
	if st.Fill != nil && n >= 3 {
		if pts := clipPolygon(p.Points, surface(dst, 2)); len(pts) >= 3 {
			z := newPath(dst)
			tracePath(dst, z, pts)
			paintPath(dst, z, st.Fill)
		}
	}
	for i := range n {
		Line(dst, p.Points[i], p.Points[(i+1)%n], st)
	}
}

// FillEllipse paints the interior of e through the path rasterizer, built
// from four cubic quarter arcs. An ellipse reaching past dst is filled row
// by row instead.
func FillEllipse(dst draw.Image, e shape.Ellipse, c color.Color) {
	if c == nil || e.RX <= 0 || e.RY <= 0 || !onSurface(dst, e, 1) {
		return
	}
	if b, clip := e.Bounds(), surface(dst, 2); !clip.Contains(b.Min) || !clip.Contains(b.Max) {
		fillEllipseRows(dst, e, c)
		return
	}
	cx, cy, rx, ry := e.Center.X, e.Center.Y, e.RX, e.RY
	kx, ky := rx*kappa, ry*kappa
	z := newPath(dst)
	move := func(p shape.Point) {
		x, y := pathPoint(dst, p)
		z.MoveTo(x, y)
	}
	cube := func(p1, p2, p3 shape.Point) {
		x1, y1 := pathPoint(dst, p1)
		x2, y2 := pathPoint(dst, p2)
		x3, y3 := pathPoint(dst, p3)
		z.CubeTo(x1, y1, x2, y2, x3, y3)
	}
	move(shape.Pt(cx+rx, cy))
	cube(shape.Pt(cx+rx, cy+ky), shape.Pt(cx+kx, cy+ry), shape.Pt(cx, cy+ry))
	cube(shape.Pt(cx-kx, cy+ry), shape.Pt(cx-rx, cy+ky), shape.Pt(cx-rx, cy))
	cube(shape.Pt(cx-rx, cy-ky), shape.Pt(cx-kx, cy-ry), shape.Pt(cx, cy-ry))
	cube(shape.Pt(cx+kx, cy-ry), shape.Pt(cx+rx, cy-ky), shape.Pt(cx+rx, cy))
	z.ClosePath()
	paintPath(dst, z, c)
}

// fillEllipseRows paints every pixel of dst whose centre lies inside e.
func fillEllipseRows(dst draw.Image, e shape.Ellipse, c color.Color) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dy := (float64(y) + 0.5 - e.Center.Y) / e.RY
		if dy < -1 || dy > 1 {
			continue
		}
		hw := e.RX * math.Sqrt(1-dy*dy)
		lo := max(e.Center.X-hw-0.5, float64(b.Min.X)-1)
		hi := min(e.Center.X+hw-0.5, float64(b.Max.X))
		if x0, x1 := int(math.Ceil(lo)), int(math.Floor(hi)); x0 <= x1 {
			hspan(dst, x0, x1, y, c)
		}
	}
}

// Rectangle strokes the outline of r with single-pixel lines.
func Rectangle(dst draw.Image, r shape.Rect, c color.Color) {
	st := Style{Stroke: c, Width: 1}
	tl, br := r.Min, r.Max
	tr, bl := shape.Pt(br.X, tl.Y), shape.Pt(tl.X, br.Y)
	Line(dst, tl, tr, st)
	Line(dst, tr, br, st)
	Line(dst, br, bl, st)
	Line(dst, bl, tl, st)
}

// Handle paints a filled square of the given size centred on p.
func Handle(dst draw.Image, p shape.Point, size int, c color.Color) {
	x, y := round(p.X)-size/2, round(p.Y)-size/2
	FillRect(dst, image.Rect(x, y, x+size, y+size), c)
}
