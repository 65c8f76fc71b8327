package state

import (
	"fmt"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/raster"
	"VectorBoard/internal/shape"
	"VectorBoard/internal/tool"
)

// LayerStyle is the editable paint of a layer. Empty colours and zero
// thickness mean "unset".
type LayerStyle struct {
	Thickness       float64
	BorderColor     string
	BackgroundColor string
}

// AddShape stores sh on a new layer styled with the current colour, fill and
// thickness, selects it and returns its id.
func (s *Session) AddShape(sh shape.Shape) string {
	var id string
	s.update(func() { id = s.addLocked(sh) })
	return id
}

func (s *Session) addLocked(sh shape.Shape) string {
	id := newID()
	l := shape.Layer{
		ID:          id,
		Name:        layerName(s.clock.Tick()),
		Visible:     true,
		Thickness:   s.thickness,
		BorderColor: s.color,
	}
	switch sh.(type) {
	case shape.Circle, shape.Ellipse, shape.Polygon:
		l.BackgroundColor = s.fill
	}
	s.drawing.Add(sh, l)
	s.drawing.Select(id)
	s.revision++
	logging.For("session").Debug("shape added", "id", id, "kind", sh.Kind(), "layer", l.Name)
	return id
}

// TransformShape replaces the shape id with fn applied to it. fn must keep
// the shape kind.
func (s *Session) TransformShape(id string, fn func(shape.Shape) shape.Shape) error {
	var err error
	s.update(func() {
		sh, _, ok := s.drawing.Find(id)
		if !ok {
			err = fmt.Errorf("%w: %s", ErrNotFound, id)
			return
		}
		out := fn(sh)
		if out == nil || out.Kind() != sh.Kind() {
			err = ErrKindChanged
			return
		}
		s.drawing.Replace(out.WithID(id))
		s.revision++
	})
	return err
}

// DeleteShape removes the shape and its layer.
func (s *Session) DeleteShape(id string) bool {
	var ok bool
	s.update(func() { ok = s.deleteLocked(id) })
	return ok
}

func (s *Session) deleteLocked(id string) bool {
	if !s.drawing.Remove(id) {
		return false
	}
	s.revision++
	logging.For("session").Debug("shape deleted", "id", id)
	return true
}

// Select makes id the only selected layer; "" deselects all.
func (s *Session) Select(id string) {
	s.update(func() { s.drawing.Select(id) })
}

func (s *Session) editLayer(id string, fn func(l *shape.Layer)) error {
	var err error
	s.update(func() {
		l := s.drawing.Layer(id)
		if l == nil {
			err = fmt.Errorf("%w: %s", ErrNotFound, id)
			return
		}
		fn(l)
		s.revision++
	})
	return err
}

// SetLayerVisible shows or hides a layer.
func (s *Session) SetLayerVisible(id string, visible bool) error {
	return s.editLayer(id, func(l *shape.Layer) { l.Visible = visible })
}

// SetLayerStyle replaces the paint of a layer after checking its colours.
func (s *Session) SetLayerStyle(id string, st LayerStyle) error {
	for _, c := range []string{st.BorderColor, st.BackgroundColor} {
		if _, err := raster.ParseColor(c); err != nil {
			return err
		}
	}
	if st.Thickness < 0 {
		return fmt.Errorf("state: negative thickness %v", st.Thickness)
	}
	return s.editLayer(id, func(l *shape.Layer) {
		l.Thickness = st.Thickness
		l.BorderColor = st.BorderColor
		l.BackgroundColor = st.BackgroundColor
	})
}

// RenameLayer changes the display name of a layer.
func (s *Session) RenameLayer(id, name string) error {
	return s.editLayer(id, func(l *shape.Layer) { l.Name = name })
}

// Tool settings.

func (s *Session) Tool() tool.Tool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Tool()
}

// SetTool switches tools, dropping any gesture in progress.
func (s *Session) SetTool(t tool.Tool) {
	s.update(func() { s.machine.SetTool(t) })
}

func (s *Session) ShapeMode() shape.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Mode()
}

// SetShapeMode picks what the Draw tool draws, dropping placed points.
func (s *Session) SetShapeMode(k shape.Kind) {
	s.update(func() { s.machine.SetMode(k) })
}

func (s *Session) PolygonCorners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Corners()
}

// SetPolygonCorners sets the polygon side count, clamped to 3..16.
func (s *Session) SetPolygonCorners(n int) {
	s.update(func() { s.machine.SetCorners(n) })
}

// SetImmediateErase makes the eraser delete without confirmation.
func (s *Session) SetImmediateErase(on bool) {
	s.update(func() {
		s.machine.ImmediateErase = on
		s.machine.Reset()
	})
}

// Color is the border colour given to new shapes.
func (s *Session) Color() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

func (s *Session) SetColor(c string) error {
	if _, err := raster.ParseColor(c); err != nil {
		return err
	}
	if c == "" {
		c = DefaultColor
	}
	s.update(func() { s.color = c })
	return nil
}

// Fill is the background colour given to new closed shapes; "" for none.
func (s *Session) Fill() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fill
}

func (s *Session) SetFill(c string) error {
	if _, err := raster.ParseColor(c); err != nil {
		return err
	}
	s.update(func() { s.fill = c })
	return nil
}

func (s *Session) Thickness() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thickness
}

// SetThickness sets the stroke width of new shapes, at least 1.
func (s *Session) SetThickness(w float64) {
	s.update(func() { s.thickness = max(w, 1) })
}

// Pointer events arrive in screen space and are mapped through the view.

func (s *Session) PointerDown(p shape.Point) {
	s.update(func() { s.machine.PointerDown(document{s}, s.view.ToCanvas(p)) })
}

func (s *Session) PointerMove(p shape.Point) {
	s.update(func() { s.machine.PointerMove(document{s}, s.view.ToCanvas(p)) })
}

func (s *Session) PointerUp(p shape.Point) {
	s.update(func() { s.machine.PointerUp(document{s}, s.view.ToCanvas(p)) })
}

func (s *Session) PointerLeave() {
	s.update(func() { s.machine.Leave() })
}

// Pending reports the confirmation the UI should ask for.
func (s *Session) Pending() tool.Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Pending()
}

// Target is the shape awaiting confirmation, or "".
func (s *Session) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Target()
}

// Markers are the construction points placed so far, in canvas space.
func (s *Session) Markers() []shape.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Markers()
}

func (s *Session) confirm(fn func(doc tool.Document) error) error {
	var err error
	s.update(func() { err = fn(document{s}) })
	return err
}

// ConfirmRotate rotates the pending target by angle degrees.
func (s *Session) ConfirmRotate(angle string) error {
	return s.confirm(func(doc tool.Document) error { return s.machine.ConfirmRotate(doc, angle) })
}

// ConfirmFlip mirrors the pending target; direction is "horizontal" or
// "vertical".
func (s *Session) ConfirmFlip(direction string) error {
	return s.confirm(func(doc tool.Document) error { return s.machine.ConfirmFlip(doc, direction) })
}

// ConfirmErase deletes the shape staged by the eraser.
func (s *Session) ConfirmErase() error {
	return s.confirm(s.machine.ConfirmErase)
}

// Cancel drops the pending confirmation or gesture.
func (s *Session) Cancel() {
	s.update(func() { s.machine.Cancel() })
}

// View.

func (s *Session) ZoomIn()  { s.update(func() { s.view.ZoomIn() }) }
func (s *Session) ZoomOut() { s.update(func() { s.view.ZoomOut() }) }

func (s *Session) PanBy(d shape.Point) {
	s.update(func() { s.view.PanBy(d) })
}

func (s *Session) ResetView() { s.update(func() { s.view.Reset() }) }

func (s *Session) Zoom() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Zoom
}
