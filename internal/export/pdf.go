// Package export writes drawings to PDF with gofpdf. One canvas pixel maps
// to one PDF point so the page has the canvas size.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/raster"
	"VectorBoard/internal/shape"
)

var ErrEmptyCanvas = errors.New("export: canvas has no area")

// Options tune the exported page.
type Options struct {
	// Background fills the page first when set.
	Background string
	Title      string
}

// PDF writes the visible shapes of d to w.
func PDF(w io.Writer, d *shape.Drawing, width, height int, opts Options) error {
	p, err := build(d, width, height, opts)
	if err != nil {
		return err
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	logging.For("export").Info("pdf written", "shapes", d.Len(), "width", width, "height", height)
	return nil
}

func build(d *shape.Drawing, width, height int, opts Options) (*gofpdf.Fpdf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyCanvas
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	if opts.Title != "" {
		p.SetTitle(opts.Title, true)
	}
	p.AddPage()

	if bg, ok := rgb(opts.Background); ok {
		p.SetFillColor(bg.R, bg.G, bg.B)
		p.Rect(0, 0, float64(width), float64(height), "F")
	}

	for _, s := range d.Shapes() {
		l := d.Layer(s.ID())
		if l == nil || !l.Visible {
			continue
		}
		paint(p, s, *l)
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("building pdf: %w", err)
	}
	return p, nil
}

type rgb8 struct{ R, G, B int }

// rgb converts a colour string; transparent and empty colours report false.
func rgb(s string) (rgb8, bool) {
	c, err := raster.ParseColor(s)
	if err != nil || c == nil {
		return rgb8{}, false
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0 {
		return rgb8{}, false
	}
	return rgb8{int(n.R), int(n.G), int(n.B)}, true
}

func paint(p *gofpdf.Fpdf, s shape.Shape, l shape.Layer) {
	border, stroke := rgb(l.Border())
	fill, filled := rgb(l.BackgroundColor)
	p.SetLineWidth(float64(l.StrokeWidth()))
	p.SetLineCapStyle("round")
	p.SetDrawColor(border.R, border.G, border.B)
	if filled {
		p.SetFillColor(fill.R, fill.G, fill.B)
	}

	style := func(closed bool) string {
		switch {
		case closed && filled && stroke:
			return "FD"
		case closed && filled:
			return "F"
		default:
			return "D"
		}
	}
	if !stroke && !(filled && isClosed(s)) {
		return
	}

	switch s := s.(type) {
	case shape.Line:
		p.Line(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
	case shape.Circle:
		p.Circle(s.Center.X, s.Center.Y, s.Radius, style(true))
	case shape.Ellipse:
		p.Ellipse(s.Center.X, s.Center.Y, s.RX, s.RY, 0, style(true))
	case shape.Curve:
		p.CurveBezierCubic(s.P0.X, s.P0.Y, s.P1.X, s.P1.Y, s.P2.X, s.P2.Y, s.P3.X, s.P3.Y, "D")
	case shape.Polygon:
		if len(s.Points) < 2 {
			return
		}
		pts := make([]gofpdf.PointType, len(s.Points))
		for i, v := range s.Points {
			pts[i] = gofpdf.PointType{X: v.X, Y: v.Y}
		}
		p.Polygon(pts, style(len(pts) >= 3))
	}
}

func isClosed(s shape.Shape) bool {
	switch s.(type) {
	case shape.Circle, shape.Ellipse, shape.Polygon:
		return true
	}
	return false
}
