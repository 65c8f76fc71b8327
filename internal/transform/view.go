package transform

import "VectorBoard/internal/shape"

const (
	MinZoom  = 0.3
	MaxZoom  = 3.0
	ZoomStep = 1.2
)

// View is the pan and zoom applied when a drawing is put on screen:
// screen = pan + zoom·canvas.
type View struct {
	Pan  shape.Point `json:"pan"`
	Zoom float64     `json:"zoom"`
}

// NewView returns the identity view.
func NewView() View { return View{Zoom: 1} }

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

func (v View) ToScreen(p shape.Point) shape.Point { return v.Pan.Add(p.Mul(v.zoom())) }

// ToCanvas maps a pointer position back into canvas space.
func (v View) ToCanvas(p shape.Point) shape.Point { return p.Sub(v.Pan).Mul(1 / v.zoom()) }

// Apply returns s in screen space.
func (v View) Apply(s shape.Shape) shape.Shape {
	return mapPoints(s, v.ToScreen, v.zoom())
}

func (v *View) ZoomIn()  { v.setZoom(v.zoom() * ZoomStep) }
func (v *View) ZoomOut() { v.setZoom(v.zoom() / ZoomStep) }

func (v *View) setZoom(z float64) {
	v.Zoom = min(max(z, MinZoom), MaxZoom)
}

func (v *View) PanBy(d shape.Point) { v.Pan = v.Pan.Add(d) }

func (v *View) Reset() { *v = NewView() }
