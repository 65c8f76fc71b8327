package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/raster"
	"VectorBoard/internal/shape"
	"VectorBoard/internal/state"
	"VectorBoard/internal/tool"
)

// palette is offered as swatches for the stroke colour.
var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},
	color.NRGBA{G: 255, A: 255},
	color.NRGBA{B: 255, A: 255},
	color.NRGBA{R: 255, G: 255, A: 255},
	color.NRGBA{R: 255, G: 165, A: 255},
	color.NRGBA{R: 128, B: 128, A: 255},
}

// fills are the background choices for closed shapes.
var fills = []string{"none", "white", "gray", "red", "green", "blue", "yellow"}

// swatch is a tappable colour chip for the stroke colour. The chip matching
// the session colour is outlined.
type swatch struct {
	widget.BaseWidget
	hex    string
	fill   color.Color
	active bool
	onPick func(hex string)
}

func newSwatch(c color.Color, pick func(string)) *swatch {
	s := &swatch{hex: raster.Hex(c), fill: c, onPick: pick}
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) setActive(on bool) {
	if s.active == on {
		return
	}
	s.active = on
	s.Refresh()
}

func (s *swatch) Tapped(*fyne.PointEvent) {
	if s.onPick != nil {
		s.onPick(s.hex)
	}
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	r := &swatchRenderer{
		swatch:  s,
		chip:    canvas.NewRectangle(s.fill),
		outline: canvas.NewRectangle(color.Transparent),
	}
	r.Refresh()
	return r
}

type swatchRenderer struct {
	swatch  *swatch
	chip    *canvas.Rectangle
	outline *canvas.Rectangle
}

func (r *swatchRenderer) Layout(size fyne.Size) {
	r.chip.Resize(size)
	r.outline.Resize(size)
}

func (r *swatchRenderer) MinSize() fyne.Size { return fyne.NewSize(24, 24) }

func (r *swatchRenderer) Refresh() {
	r.outline.StrokeColor, r.outline.StrokeWidth = color.Gray{Y: 150}, 1
	if r.swatch.active {
		r.outline.StrokeColor, r.outline.StrokeWidth = theme.Color(theme.ColorNamePrimary), 3
	}
	r.outline.Refresh()
}

func (r *swatchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.chip, r.outline}
}

func (r *swatchRenderer) Destroy() {}

// Toolbar holds the tool controls. Its widgets are fields so the app can
// wire actions and tests can drive them.
type Toolbar struct {
	session *state.Session

	Tools   *widget.Select
	Shapes  *widget.Select
	Corners *widget.Slider
	Stroke  *widget.Slider
	Fill    *widget.Select
	Swatch  *fyne.Container
	Actions *widget.Toolbar

	cornersLabel *widget.Label
}

// ToolbarActions are the file and project commands the toolbar triggers.
type ToolbarActions struct {
	Import, Export, ExportPDF, Save, Projects, Clear func()
}

func NewToolbar(s *state.Session, actions ToolbarActions) *Toolbar {
	t := &Toolbar{session: s}

	names := make([]string, 0, len(tool.Tools()))
	for _, tl := range tool.Tools() {
		names = append(names, tl.String())
	}
	t.Tools = widget.NewSelect(names, func(v string) {
		if tl, ok := tool.ParseTool(v); ok {
			s.SetTool(tl)
		}
	})
	t.Tools.SetSelected(s.Tool().String())

	kinds := []string{}
	for _, k := range []shape.Kind{shape.KindLine, shape.KindCircle, shape.KindEllipse, shape.KindCurve, shape.KindPolygon} {
		kinds = append(kinds, k.String())
	}
	t.Shapes = widget.NewSelect(kinds, func(v string) {
		if k, ok := shape.ParseKind(v); ok {
			s.SetShapeMode(k)
		}
	})
	t.Shapes.SetSelected(s.ShapeMode().String())

	t.cornersLabel = widget.NewLabel("")
	t.Corners = widget.NewSlider(tool.MinCorners, tool.MaxCorners)
	t.Corners.Step = 1
	t.Corners.OnChanged = func(v float64) {
		s.SetPolygonCorners(int(v))
		t.cornersLabel.SetText(fmt.Sprintf("%d corners", s.PolygonCorners()))
	}
	t.Corners.SetValue(float64(s.PolygonCorners()))
	t.cornersLabel.SetText(fmt.Sprintf("%d corners", s.PolygonCorners()))

	t.Stroke = widget.NewSlider(1, 50)
	t.Stroke.SetValue(s.Thickness())
	t.Stroke.OnChanged = func(v float64) { s.SetThickness(v) }

	t.Fill = widget.NewSelect(fills, func(v string) {
		if v == "none" {
			v = ""
		}
		s.SetFill(v)
	})
	if f := s.Fill(); f != "" {
		t.Fill.SetSelected(f)
	} else {
		t.Fill.SetSelected("none")
	}

	chips := make([]*swatch, len(palette))
	mark := func() {
		current := raster.Hex(raster.MustColor(s.Color(), color.Black))
		for _, c := range chips {
			c.setActive(c.hex == current)
		}
	}
	objects := make([]fyne.CanvasObject, len(palette))
	for i, c := range palette {
		chips[i] = newSwatch(c, func(hex string) {
			s.SetColor(hex)
			mark()
		})
		objects[i] = chips[i]
	}
	mark()
	t.Swatch = container.NewHBox(objects...)

	t.Actions = widget.NewToolbar(
		widget.NewToolbarAction(theme.ZoomInIcon(), s.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), s.ZoomOut),
		widget.NewToolbarAction(theme.ZoomFitIcon(), s.ResetView),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), call(actions.Import)),
		widget.NewToolbarAction(theme.DownloadIcon(), call(actions.Export)),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), call(actions.ExportPDF)),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), call(actions.Save)),
		widget.NewToolbarAction(theme.StorageIcon(), call(actions.Projects)),
		widget.NewToolbarAction(theme.DeleteIcon(), call(actions.Clear)),
	)
	return t
}

func call(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}

// Object lays the toolbar out in one row.
func (t *Toolbar) Object() fyne.CanvasObject {
	slider := func(s *widget.Slider) fyne.CanvasObject {
		return container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), s)
	}
	return container.NewHBox(
		widget.NewLabel("Tool:"), t.Tools,
		widget.NewLabel("Shape:"), t.Shapes,
		slider(t.Corners), t.cornersLabel,
		widget.NewSeparator(),
		widget.NewLabel("Color:"), t.Swatch,
		widget.NewLabel("Fill:"), t.Fill,
		widget.NewLabel("Size:"), slider(t.Stroke),
		layout.NewSpacer(),
		t.Actions,
	)
}
