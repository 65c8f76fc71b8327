package state

import (
	"VectorBoard/internal/hittest"
	"VectorBoard/internal/shape"
	"VectorBoard/internal/tool"
)

// document gives the tool machine access to the session's drawing. Its
// methods run with the session lock already held.
type document struct {
	s *Session
}

var _ tool.Document = document{}

func (d document) HitTest(p shape.Point) hittest.Result {
	return hittest.Find(&d.s.drawing, p)
}

func (d document) HitTestArea(p shape.Point) hittest.Result {
	return hittest.FindArea(&d.s.drawing, p)
}

func (d document) Shape(id string) (shape.Shape, bool) {
	sh, _, ok := d.s.drawing.Find(id)
	return sh, ok
}

func (d document) AddShape(sh shape.Shape) string {
	return d.s.addLocked(sh)
}

func (d document) ReplaceShape(sh shape.Shape) bool {
	if !d.s.drawing.Replace(sh) {
		return false
	}
	d.s.revision++
	return true
}

func (d document) DeleteShape(id string) bool {
	return d.s.deleteLocked(id)
}

func (d document) Select(id string) {
	d.s.drawing.Select(id)
}
