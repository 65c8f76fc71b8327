package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/shape"
)

const tol = 1e-6

func assertPoint(t *testing.T, want, got shape.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
}

func samples() []shape.Shape {
	return []shape.Shape{
		shape.Line{Start: shape.Pt(10, 10), End: shape.Pt(50, 30), LayerID: "l"},
		shape.Circle{Center: shape.Pt(40, 40), Radius: 12, LayerID: "c"},
		shape.Ellipse{Center: shape.Pt(70, 20), RX: 30, RY: 10, LayerID: "e"},
		shape.Curve{P0: shape.Pt(0, 0), P1: shape.Pt(10, 40), P2: shape.Pt(30, 40), P3: shape.Pt(40, 0), LayerID: "cu"},
		shape.Polygon{Points: []shape.Point{shape.Pt(0, 0), shape.Pt(20, 3), shape.Pt(7, 19)}, LayerID: "p"},
	}
}

func definingPoints(s shape.Shape) []shape.Point {
	switch v := s.(type) {
	case shape.Line:
		return []shape.Point{v.Start, v.End}
	case shape.Circle:
		return []shape.Point{v.Center, {X: v.Radius}}
	case shape.Ellipse:
		return []shape.Point{v.Center, {X: v.RX, Y: v.RY}}
	case shape.Curve:
		return []shape.Point{v.P0, v.P1, v.P2, v.P3}
	case shape.Polygon:
		return v.Points
	}
	return nil
}

func TestRotateComposition(t *testing.T) {
	center := shape.Pt(33, -7)
	for _, s := range samples() {
		for _, deg := range []float64{17, 90, -45, 180, 270, 1234.5} {
			back := Rotate(Rotate(s, center, deg), center, -deg)
			want, got := definingPoints(s), definingPoints(back)
			require.Len(t, got, len(want))
			for i := range want {
				assertPoint(t, want[i], got[i])
			}
			assert.Equal(t, s.ID(), back.ID())
		}
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	l := Rotate(shape.Line{Start: shape.Pt(10, 0), End: shape.Pt(20, 0)}, shape.Pt(0, 0), 90).(shape.Line)
	assertPoint(t, shape.Pt(0, 10), l.Start)
	assertPoint(t, shape.Pt(0, 20), l.End)

	e := Rotate(shape.Ellipse{Center: shape.Pt(5, 5), RX: 30, RY: 10}, shape.Pt(5, 5), 90).(shape.Ellipse)
	assert.Equal(t, 10.0, e.RX)
	assert.Equal(t, 30.0, e.RY)
	e = Rotate(shape.Ellipse{Center: shape.Pt(5, 5), RX: 30, RY: 10}, shape.Pt(5, 5), 180).(shape.Ellipse)
	assert.Equal(t, 30.0, e.RX)
}

func TestRotateCircleAboutOwnCenter(t *testing.T) {
	c := shape.Circle{Center: shape.Pt(40, 40), Radius: 12}
	got := Rotate(c, c.Center, 73).(shape.Circle)
	assert.Equal(t, c, got)

	moved := Rotate(c, shape.Pt(0, 40), 180).(shape.Circle)
	assertPoint(t, shape.Pt(-40, 40), moved.Center)
	assert.Equal(t, 12.0, moved.Radius)
}

func TestRotateDoesNotMutate(t *testing.T) {
	p := shape.Polygon{Points: []shape.Point{shape.Pt(1, 0), shape.Pt(2, 0)}}
	Rotate(p, shape.Pt(0, 0), 90)
	assert.Equal(t, shape.Pt(1, 0), p.Points[0])
}

func TestFlipInvolution(t *testing.T) {
	center := shape.Pt(12.5, 45.25)
	for _, s := range samples() {
		for _, dir := range []Direction{Horizontal, Vertical} {
			back := Flip(Flip(s, center, dir), center, dir)
			assert.Equal(t, definingPoints(s), definingPoints(back), "%s %s", s.Kind(), dir)
		}
	}
}

func TestFlip(t *testing.T) {
	l := shape.Line{Start: shape.Pt(0, 0), End: shape.Pt(10, 5)}
	h := Flip(l, shape.Pt(5, 0), Horizontal).(shape.Line)
	assert.Equal(t, shape.Pt(10, 0), h.Start)
	assert.Equal(t, shape.Pt(0, 5), h.End)
	v := Flip(l, shape.Pt(0, 10), Vertical).(shape.Line)
	assert.Equal(t, shape.Pt(0, 20), v.Start)
	assert.Equal(t, shape.Pt(10, 15), v.End)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Vertical")
	require.NoError(t, err)
	assert.Equal(t, Vertical, d)
	d, err = ParseDirection("horizontal")
	require.NoError(t, err)
	assert.Equal(t, Horizontal, d)
	_, err = ParseDirection("diagonal")
	assert.Error(t, err)
}

func TestHandles(t *testing.T) {
	r := shape.Rect{Min: shape.Pt(0, 0), Max: shape.Pt(100, 50)}
	assert.Equal(t, shape.Pt(50, 0), TopCenter.Point(r))
	assert.Equal(t, shape.Pt(100, 25), MiddleRight.Point(r))
	assert.Equal(t, shape.Pt(100, 50), BottomRight.Point(r))

	pairs := map[Handle]Handle{TopLeft: BottomRight, TopCenter: BottomCenter, TopRight: BottomLeft, MiddleLeft: MiddleRight}
	for h, o := range pairs {
		assert.Equal(t, o, h.Opposite())
		assert.Equal(t, h, o.Opposite())
	}

	h, ok := HandleAt(r, shape.Pt(98, 27), 4)
	require.True(t, ok)
	assert.Equal(t, MiddleRight, h)
	_, ok = HandleAt(r, shape.Pt(50, 25), 4)
	assert.False(t, ok)

	for _, h := range AllHandles {
		got, ok := ParseHandle(h.String())
		require.True(t, ok)
		assert.Equal(t, h, got)
	}
	_, ok = ParseHandle("xx")
	assert.False(t, ok)
}

func TestFactors(t *testing.T) {
	r := shape.Rect{Min: shape.Pt(0, 0), Max: shape.Pt(100, 50)}
	tests := []struct {
		h      Handle
		delta  shape.Point
		sx, sy float64
	}{
		{BottomRight, shape.Pt(100, 50), 2, 2},
		{TopLeft, shape.Pt(50, 25), 0.5, 0.5},
		{MiddleRight, shape.Pt(-50, 999), 0.5, 1},
		{TopCenter, shape.Pt(999, -50), 1, 2},
		{BottomLeft, shape.Pt(500, 0), MinScale, 1},
	}
	for _, tt := range tests {
		sx, sy := Factors(tt.h, tt.delta, r)
		assert.InDelta(t, tt.sx, sx, tol, tt.h.String())
		assert.InDelta(t, tt.sy, sy, tol, tt.h.String())
	}

	sx, sy := Factors(BottomRight, shape.Pt(10, 10), shape.Rect{Min: shape.Pt(5, 0), Max: shape.Pt(5, 20)})
	assert.Equal(t, 1.0, sx, "zero width does not scale")
	assert.InDelta(t, 1.5, sy, tol)
}

func TestScaleKeepsOppositeHandleFixed(t *testing.T) {
	l := shape.Line{Start: shape.Pt(0, 0), End: shape.Pt(100, 50)}
	got := Scale(l, BottomRight, shape.Pt(100, 50), l.Bounds()).(shape.Line)
	assert.Equal(t, shape.Pt(0, 0), got.Start)
	assert.Equal(t, shape.Pt(200, 100), got.End)

	got = Scale(l, TopLeft, shape.Pt(50, 25), l.Bounds()).(shape.Line)
	assert.Equal(t, shape.Pt(50, 25), got.Start)
	assert.Equal(t, shape.Pt(100, 50), got.End)
}

func TestScaleCircleAndEllipse(t *testing.T) {
	c := shape.Circle{Center: shape.Pt(10, 10), Radius: 10}
	got := ScaleAbout(c, shape.Pt(0, 0), 2, 3).(shape.Circle)
	assert.Equal(t, 30.0, got.Radius, "uniform by the larger factor")
	assert.Equal(t, shape.Pt(30, 30), got.Center)

	e := shape.Ellipse{Center: shape.Pt(10, 10), RX: 10, RY: 5}
	ge := ScaleAbout(e, shape.Pt(0, 0), 2, 3).(shape.Ellipse)
	assert.Equal(t, shape.Pt(20, 30), ge.Center)
	assert.Equal(t, 20.0, ge.RX)
	assert.Equal(t, 15.0, ge.RY)

	tiny := ScaleAbout(e, shape.Pt(0, 0), -4, 0).(shape.Ellipse)
	assert.InDelta(t, 10*MinScale, tiny.RX, tol)
	assert.InDelta(t, 5*MinScale, tiny.RY, tol)
}

func TestView(t *testing.T) {
	v := NewView()
	v.PanBy(shape.Pt(10, 20))
	v.ZoomIn()
	assert.InDelta(t, 1.2, v.Zoom, tol)

	p := shape.Pt(5, 5)
	assertPoint(t, p, v.ToCanvas(v.ToScreen(p)))
	assertPoint(t, shape.Pt(16, 26), v.ToScreen(p))

	c := v.Apply(shape.Circle{Center: p, Radius: 10}).(shape.Circle)
	assertPoint(t, shape.Pt(16, 26), c.Center)
	assert.InDelta(t, 12, c.Radius, tol)

	for range 20 {
		v.ZoomIn()
	}
	assert.Equal(t, MaxZoom, v.Zoom)
	for range 40 {
		v.ZoomOut()
	}
	assert.Equal(t, MinZoom, v.Zoom)

	v.Reset()
	assert.Equal(t, NewView(), v)
	assert.Equal(t, p, View{}.ToScreen(p), "zero zoom acts as identity")
}
