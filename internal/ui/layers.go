package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/shape"
	"VectorBoard/internal/state"
)

// LayerList shows one row per layer with a visibility toggle. Selecting a
// row selects the shape on the board.
type LayerList struct {
	List    *widget.List
	session *state.Session
	layers  []shape.Layer
}

func NewLayerList(s *state.Session) *LayerList {
	l := &LayerList{session: s}
	l.List = widget.NewList(
		func() int { return len(l.layers) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewCheck("", nil), widget.NewLabel("Layer 000"))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(l.layers) {
				return
			}
			layer := l.layers[id]
			row := o.(*fyne.Container)
			check := row.Objects[0].(*widget.Check)
			check.OnChanged = nil
			check.SetChecked(layer.Visible)
			check.OnChanged = func(v bool) { s.SetLayerVisible(layer.ID, v) }
			label := row.Objects[1].(*widget.Label)
			label.SetText(layer.Name)
			if layer.Selected {
				label.TextStyle = fyne.TextStyle{Bold: true}
			} else {
				label.TextStyle = fyne.TextStyle{}
			}
			label.Refresh()
		},
	)
	l.List.OnSelected = func(id widget.ListItemID) {
		if id < len(l.layers) {
			s.Select(l.layers[id].ID)
		}
	}
	l.Reload()
	return l
}

// Reload re-reads the layers from the session.
func (l *LayerList) Reload() {
	l.layers = l.session.Layers()
	l.List.Refresh()
}

// Len is the number of rows.
func (l *LayerList) Len() int { return len(l.layers) }
