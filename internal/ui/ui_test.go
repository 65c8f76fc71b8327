package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/shape"
	"VectorBoard/internal/state"
	"VectorBoard/internal/store"
	"VectorBoard/internal/tool"
)

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func clickBoard(b *BoardWidget, x, y float32) {
	b.MouseDown(press(x, y))
	b.MouseUp(press(x, y))
}

func newSession() *state.Session {
	return state.New(state.Options{Width: 300, Height: 200, Store: store.NewMemory(), Project: "ui"})
}

func TestBoardDrawsThroughSession(t *testing.T) {
	test.NewApp()
	s := newSession()
	b := NewBoardWidget(s)

	clickBoard(b, 10, 10)
	b.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 10)}})
	clickBoard(b, 60, 10)

	d := s.Drawing()
	require.Len(t, d.Lines, 1)
	assert.Equal(t, shape.Pt(10, 10), d.Lines[0].Start)
	assert.Equal(t, shape.Pt(60, 10), d.Lines[0].End)

	r := test.WidgetRenderer(b)
	assert.Equal(t, fyne.NewSize(300, 200), r.MinSize())
}

func TestBoardIgnoresSecondaryButton(t *testing.T) {
	test.NewApp()
	s := newSession()
	b := NewBoardWidget(s)
	ev := press(10, 10)
	ev.Button = desktop.MouseButtonSecondary
	b.MouseDown(ev)
	assert.Empty(t, s.Markers())
}

func TestBoardReportsPending(t *testing.T) {
	test.NewApp()
	s := newSession()
	s.AddShape(shape.Line{Start: shape.Pt(0, 50), End: shape.Pt(100, 50)})
	b := NewBoardWidget(s)

	var got []tool.Pending
	b.OnPending = func(p tool.Pending) { got = append(got, p) }

	s.SetTool(tool.Rotate)
	clickBoard(b, 50, 50)
	assert.Equal(t, []tool.Pending{tool.PendingRotate}, got)

	s.SetTool(tool.Scale)
	clickBoard(b, 50, 50)
	assert.Len(t, got, 1, "scale uses handles, not a dialog")
}

func TestBoardReportsEraseStagedMidDrag(t *testing.T) {
	test.NewApp()
	s := newSession()
	id := s.AddShape(shape.Line{Start: shape.Pt(0, 50), End: shape.Pt(100, 50)})
	b := NewBoardWidget(s)

	var got []tool.Pending
	b.OnPending = func(p tool.Pending) { got = append(got, p) }

	s.SetTool(tool.Eraser)
	drag := func() {
		b.MouseDown(press(50, 10))
		b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(50, 50)}})
		b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(52, 50)}})
		b.MouseUp(press(52, 50))
	}
	drag()
	require.Equal(t, tool.PendingErase, s.Pending())
	assert.Equal(t, id, s.Target())
	assert.Equal(t, []tool.Pending{tool.PendingErase}, got, "one prompt per gesture")

	s.Cancel()
	drag()
	assert.Equal(t, []tool.Pending{tool.PendingErase, tool.PendingErase}, got)
}

func TestReadOnlyBoard(t *testing.T) {
	test.NewApp()
	s := newSession()
	b := NewBoardWidget(s)
	b.ReadOnly = true
	clickBoard(b, 10, 10)
	clickBoard(b, 50, 10)
	assert.Zero(t, s.Drawing().Len())

	b.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, 1)})
	assert.Greater(t, s.Zoom(), 1.0)
	b.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -1)})
	assert.InDelta(t, 1.0, s.Zoom(), 1e-9)
}

func TestToolbarDrivesSession(t *testing.T) {
	test.NewApp()
	s := newSession()
	tb := NewToolbar(s, ToolbarActions{})

	tb.Tools.SetSelected("eraser")
	assert.Equal(t, tool.Eraser, s.Tool())

	tb.Shapes.SetSelected("polygon")
	assert.Equal(t, shape.KindPolygon, s.ShapeMode())

	tb.Corners.SetValue(8)
	assert.Equal(t, 8, s.PolygonCorners())

	tb.Stroke.SetValue(6)
	assert.Equal(t, 6.0, s.Thickness())

	tb.Fill.SetSelected("red")
	assert.Equal(t, "red", s.Fill())
	tb.Fill.SetSelected("none")
	assert.Empty(t, s.Fill())

	first, red := tb.Swatch.Objects[0].(*swatch), tb.Swatch.Objects[1].(*swatch)
	assert.True(t, first.active, "session colour starts outlined")
	test.Tap(red)
	assert.Equal(t, "#ff0000", s.Color())
	assert.True(t, red.active)
	assert.False(t, first.active)
}

func TestLayerList(t *testing.T) {
	test.NewApp()
	s := newSession()
	a := s.AddShape(shape.Line{End: shape.Pt(5, 5)})
	s.AddShape(shape.Circle{Center: shape.Pt(50, 50), Radius: 5})

	l := NewLayerList(s)
	assert.Equal(t, 2, l.Len())

	l.List.Select(0)
	assert.Equal(t, a, s.Selected())
}

type closingBuffer struct {
	bytes.Buffer
	closed bool
}

func (c *closingBuffer) Close() error {
	c.closed = true
	return nil
}

func TestAppImportExport(t *testing.T) {
	a := test.NewApp()
	s := newSession()
	ui := NewApp(a, s, "")

	ui.ImportFrom(io.NopCloser(strings.NewReader("CANVAS,120,90\nLINE,0,0,10,10,red\nCIRCLE,5,5,2,blue\n")))
	assert.Eventually(t, func() bool { return s.Drawing().Len() == 2 && !s.Importing() }, 5*time.Second, 10*time.Millisecond)
	w, h := s.CanvasSize()
	assert.Equal(t, 120, w)
	assert.Equal(t, 90, h)

	var out closingBuffer
	require.NoError(t, ui.ExportTo(&out))
	assert.True(t, out.closed)
	assert.Equal(t, "CANVAS,120,90\nLINE,0,0,10,10,red\nCIRCLE,5,5,2,blue\n", out.String())

	var pdf closingBuffer
	require.NoError(t, ui.ExportPDFTo(&pdf))
	assert.True(t, strings.HasPrefix(pdf.String(), "%PDF-"))
}

func TestAppSwitchProject(t *testing.T) {
	a := test.NewApp()
	s := newSession()
	ui := NewApp(a, s, "")
	s.AddShape(shape.Line{End: shape.Pt(5, 5)})

	assert.Error(t, ui.SwitchProject("  "))
	require.NoError(t, ui.SwitchProject("other"))
	assert.Equal(t, "other", s.Project())
	assert.Equal(t, "VectorBoard - other", ui.Window.Title())
	assert.Contains(t, s.Projects(), "ui")
}
