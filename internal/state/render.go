package state

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"VectorBoard/internal/raster"
	"VectorBoard/internal/shape"
	"VectorBoard/internal/tool"
	"VectorBoard/internal/transform"
)

const (
	// HandleSize is the side of the scale handle squares in pixels.
	HandleSize = 8
)

var selectionColor = color.NRGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xff}

// Image renders the session onto a new canvas-sized image.
func (s *Session) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	s.renderLocked(img, s.view, true)
	return img
}

// Render clears dst to the background and draws the session through the
// current view: construction markers, then lines, circles, curves,
// ellipses and polygons, then the live preview and the selection box.
func (s *Session) Render(dst draw.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked(dst, s.view, true)
}

func (s *Session) renderLocked(dst draw.Image, v transform.View, overlays bool) {
	raster.Clear(dst, s.bg)
	stroke := raster.MustColor(s.color, color.Black)

	if overlays {
		for _, p := range s.machine.Markers() {
			raster.Marker(dst, v.ToScreen(p), raster.Style{Stroke: stroke})
		}
	}

	d := &s.drawing
	for _, sh := range d.Lines {
		s.paint(dst, v, sh)
	}
	for _, sh := range d.Circles {
		s.paint(dst, v, sh)
	}
	for _, sh := range d.Curves {
		s.paint(dst, v, sh)
	}
	for _, sh := range d.Ellipses {
		s.paint(dst, v, sh)
	}
	for _, sh := range d.Polygons {
		s.paint(dst, v, sh)
	}

	if !overlays {
		return
	}
	if p := s.machine.Preview(); p != nil {
		st := raster.Style{
			Stroke: stroke,
			Fill:   raster.MustColor(s.fill, nil),
			Width:  scaledWidth(s.thickness, v.Zoom),
		}
		paintShape(dst, v.Apply(p), st)
	}
	s.paintSelection(dst, v)
}

// paint draws sh with its layer's style, skipping hidden and orphaned
// shapes.
func (s *Session) paint(dst draw.Image, v transform.View, sh shape.Shape) {
	l := s.drawing.Layer(sh.ID())
	if l == nil || !l.Visible {
		return
	}
	st := raster.Style{
		Stroke: raster.MustColor(l.Border(), color.Black),
		Fill:   raster.MustColor(l.BackgroundColor, nil),
		Width:  scaledWidth(float64(l.StrokeWidth()), v.Zoom),
	}
	paintShape(dst, v.Apply(sh), st)
}

func paintShape(dst draw.Image, sh shape.Shape, st raster.Style) {
	switch sh := sh.(type) {
	case shape.Line:
		raster.Line(dst, sh.Start, sh.End, st)
	case shape.Circle:
		raster.Circle(dst, sh, st)
	case shape.Ellipse:
		raster.FillEllipse(dst, sh, st.Fill)
		raster.Ellipse(dst, sh, st)
	case shape.Curve:
		raster.Curve(dst, sh, st)
	case shape.Polygon:
		raster.Polygon(dst, sh, st)
	}
}

func scaledWidth(w, zoom float64) int {
	if zoom <= 0 {
		zoom = 1
	}
	return max(1, int(math.Round(w*zoom)))
}

// paintSelection outlines the selected shape, or the scale preview while a
// handle is dragged, and adds the handles when the Scale tool has a target.
func (s *Session) paintSelection(dst draw.Image, v transform.View) {
	var sel shape.Shape
	if p := s.machine.Preview(); p != nil && s.machine.Tool() == tool.Scale {
		sel = p
	} else if id := s.drawing.Selected(); id != "" {
		if l := s.drawing.Layer(id); l == nil || !l.Visible {
			return
		}
		sel, _, _ = s.drawing.Find(id)
	}
	if sel == nil {
		return
	}
	b := sel.Bounds()
	box := shape.Rect{Min: v.ToScreen(b.Min), Max: v.ToScreen(b.Max)}
	raster.Rectangle(dst, box, selectionColor)
	if s.machine.Tool() != tool.Scale || s.machine.Target() == "" {
		return
	}
	for _, h := range transform.AllHandles {
		raster.Handle(dst, h.Point(box), HandleSize, selectionColor)
	}
}
