package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/shape"
	"VectorBoard/internal/state"
	"VectorBoard/internal/tool"
)

// BoardWidget shows a session and forwards pointer input to it. It keeps no
// drawing state of its own.
type BoardWidget struct {
	widget.BaseWidget
	session *state.Session

	// OnPending is called after a gesture that opened a confirmation.
	OnPending func(tool.Pending)
	// ReadOnly boards ignore input; used for remote viewers.
	ReadOnly bool

	pressed bool
	// atPress is the confirmation state when the button went down; a
	// gesture reports at most one change from it.
	atPress   pendingState
	announced bool
}

type pendingState struct {
	kind   tool.Pending
	target string
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(s *state.Session) *BoardWidget {
	b := &BoardWidget{session: s}
	b.ExtendBaseWidget(b)
	return b
}

func toPoint(p fyne.Position) shape.Point {
	return shape.Pt(float64(p.X), float64(p.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if b.ReadOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.pressed = true
	b.announced = false
	b.atPress = b.pending()
	b.session.PointerDown(toPoint(e.Position))
	b.checkPending()
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if b.ReadOnly || e.Button != desktop.MouseButtonPrimary || !b.pressed {
		return
	}
	b.session.PointerUp(toPoint(e.Position))
	b.checkPending()
	b.pressed = false
}

func (b *BoardWidget) pending() pendingState {
	return pendingState{b.session.Pending(), b.session.Target()}
}

// checkPending reports a confirmation opened since the button went down.
func (b *BoardWidget) checkPending() {
	now := b.pending()
	if b.announced || now.kind == tool.None || now.kind == tool.PendingScale || now == b.atPress {
		return
	}
	b.announced = true
	logging.For("ui").Debug("confirmation pending", "kind", now.kind, "target", now.target)
	if b.OnPending != nil {
		b.OnPending(now.kind)
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.ReadOnly {
		return
	}
	b.session.PointerMove(toPoint(e.Position))
}

func (b *BoardWidget) MouseOut() {
	if b.ReadOnly {
		return
	}
	b.session.PointerLeave()
}

// Dragged carries pointer motion while the button is held, which is when
// the eraser and scale handles need it.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.ReadOnly {
		b.session.PanBy(shape.Pt(float64(e.Dragged.DX), float64(e.Dragged.DY)))
		return
	}
	b.session.PointerMove(toPoint(e.Position))
	if b.pressed {
		b.checkPending()
	}
}

func (b *BoardWidget) DragEnd() {}

// Scrolled zooms with the wheel and pans with horizontal scrolling.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	switch {
	case e.Scrolled.DY > 0:
		b.session.ZoomIn()
	case e.Scrolled.DY < 0:
		b.session.ZoomOut()
	case e.Scrolled.DX != 0:
		b.session.PanBy(shape.Pt(float64(e.Scrolled.DX), 0))
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(func(w, h int) image.Image {
		return b.session.Image()
	})
	r.raster.ScaleMode = canvas.ImageScalePixels
	r.border = canvas.NewRectangle(color.Transparent)
	r.border.StrokeColor = color.Gray{Y: 150}
	r.border.StrokeWidth = 1
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
	border *canvas.Rectangle
}

func (r *boardWidgetRenderer) canvasSize() fyne.Size {
	w, h := r.board.session.CanvasSize()
	return fyne.NewSize(float32(w), float32(h))
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster, r.border}
}

func (r *boardWidgetRenderer) Layout(fyne.Size) {
	size := r.canvasSize()
	r.raster.Resize(size)
	r.border.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size { return r.canvasSize() }

func (r *boardWidgetRenderer) Refresh() {
	r.Layout(r.board.Size())
	r.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
