package hittest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/shape"
)

func layer(id string) shape.Layer {
	return shape.Layer{ID: id, Name: id, Visible: true}
}

func TestLineBoundary(t *testing.T) {
	var d shape.Drawing
	d.Add(shape.Line{Start: shape.Pt(0, 0), End: shape.Pt(100, 0)}, layer("l"))

	assert.True(t, Find(&d, shape.Pt(50, 4)).Hit())
	assert.False(t, Find(&d, shape.Pt(50, 6)).Hit())
	assert.True(t, Find(&d, shape.Pt(103, 0)).Hit(), "projection is clamped to the end point")
	assert.False(t, Find(&d, shape.Pt(106, 0)).Hit())
}

func TestSegmentDistance(t *testing.T) {
	assert.InDelta(t, 5.0, SegmentDistance(shape.Pt(0, 0), shape.Pt(0, 0), shape.Pt(3, 4)), 1e-12)
	assert.InDelta(t, 2.0, SegmentDistance(shape.Pt(0, 0), shape.Pt(10, 0), shape.Pt(5, -2)), 1e-12)
	assert.InDelta(t, 5.0, SegmentDistance(shape.Pt(0, 0), shape.Pt(10, 0), shape.Pt(13, 4)), 1e-12)
}

func TestCirclePredicates(t *testing.T) {
	c := shape.Circle{Center: shape.Pt(50, 50), Radius: 20}
	assert.True(t, NearCircleBorder(c, shape.Pt(70, 50), Threshold))
	assert.True(t, NearCircleBorder(c, shape.Pt(74, 50), Threshold))
	assert.False(t, NearCircleBorder(c, shape.Pt(75, 50), Threshold), "strict inequality")
	assert.False(t, NearCircleBorder(c, shape.Pt(50, 50), Threshold))
	assert.True(t, InsideCircle(c, shape.Pt(50, 50)))
	assert.True(t, InsideCircle(c, shape.Pt(70, 50)))
	assert.False(t, InsideCircle(c, shape.Pt(71, 50)))
}

func TestEllipsePredicates(t *testing.T) {
	e := shape.Ellipse{Center: shape.Pt(0, 0), RX: 100, RY: 10}
	assert.True(t, NearEllipseBorder(e, shape.Pt(100, 0), EllipseTolerance))
	assert.True(t, NearEllipseBorder(e, shape.Pt(104, 0), EllipseTolerance), "1.0816 is within 0.1")
	assert.False(t, NearEllipseBorder(e, shape.Pt(106, 0), EllipseTolerance))
	assert.False(t, NearEllipseBorder(e, shape.Pt(0, 0), EllipseTolerance))
	assert.True(t, InsideEllipse(e, shape.Pt(0, 0)))
	assert.False(t, InsideEllipse(e, shape.Pt(0, 11)))

	flat := shape.Ellipse{Center: shape.Pt(0, 0), RX: 10, RY: 0}
	assert.True(t, NearEllipseBorder(flat, shape.Pt(10, 0), EllipseTolerance))
	assert.False(t, NearEllipseBorder(flat, shape.Pt(10, 1), EllipseTolerance))
}

func TestNearCurve(t *testing.T) {
	c := shape.Curve{P0: shape.Pt(0, 0), P1: shape.Pt(0, 100), P2: shape.Pt(100, 100), P3: shape.Pt(100, 0)}
	mid := c.At(0.5)
	assert.True(t, NearCurve(c, mid, Threshold))
	assert.True(t, NearCurve(c, mid.Add(shape.Pt(0, 4)), Threshold))
	assert.False(t, NearCurve(c, shape.Pt(50, 40), Threshold))
	assert.False(t, NearCurve(c, shape.Pt(500, 500), Threshold), "outside the control box")
}

func TestPolygonPredicatesStayDistinct(t *testing.T) {
	tri := shape.Polygon{Points: []shape.Point{shape.Pt(0, 0), shape.Pt(100, 0), shape.Pt(0, 100)}}

	assert.True(t, InsidePolygon(tri, shape.Pt(10, 10)))
	assert.False(t, InsidePolygon(tri, shape.Pt(80, 80)))
	assert.True(t, InsideBounds(tri, shape.Pt(80, 80)), "bounding box covers the empty corner")
	assert.True(t, NearPolygonVertex(tri, shape.Pt(103, 3), Threshold))
	assert.False(t, InsidePolygon(tri, shape.Pt(103, 3)))
	assert.False(t, NearPolygonVertex(tri, shape.Pt(10, 10), Threshold))
	assert.False(t, InsideBounds(shape.Polygon{}, shape.Pt(0, 0)))
}

func TestLookupModes(t *testing.T) {
	var d shape.Drawing
	d.Add(shape.Circle{Center: shape.Pt(50, 50), Radius: 20}, layer("c"))
	d.Add(shape.Polygon{Points: []shape.Point{shape.Pt(200, 200), shape.Pt(300, 200), shape.Pt(200, 300)}}, layer("p"))

	assert.False(t, Find(&d, shape.Pt(50, 50)).Hit(), "outline mode ignores the circle interior")
	r := FindArea(&d, shape.Pt(50, 50))
	assert.Equal(t, "c", r.LayerID)
	assert.Equal(t, shape.KindCircle, r.Kind)

	assert.False(t, Find(&d, shape.Pt(280, 280)).Hit())
	assert.Equal(t, "p", FindArea(&d, shape.Pt(280, 280)).LayerID)
}

func TestLookupPrecedence(t *testing.T) {
	var d shape.Drawing
	d.Add(shape.Polygon{Points: []shape.Point{shape.Pt(0, -10), shape.Pt(20, -10), shape.Pt(20, 10), shape.Pt(0, 10)}}, layer("poly"))
	d.Add(shape.Circle{Center: shape.Pt(10, 0), Radius: 10}, layer("circle"))
	d.Add(shape.Line{Start: shape.Pt(0, 0), End: shape.Pt(20, 0)}, layer("old"))
	d.Add(shape.Line{Start: shape.Pt(0, 0), End: shape.Pt(20, 0)}, layer("new"))

	r := Find(&d, shape.Pt(19, 0))
	require.True(t, r.Hit())
	assert.Equal(t, "new", r.LayerID, "lines come first, newest wins")
	assert.Equal(t, 1, r.Index)
	assert.Equal(t, shape.KindLine, r.Kind)

	d.Layer("new").Visible = false
	d.Layer("old").Visible = false
	assert.Equal(t, "circle", Find(&d, shape.Pt(19, 0)).LayerID)

	d.Layer("circle").Visible = false
	assert.Equal(t, "poly", Find(&d, shape.Pt(19, 0)).LayerID)
}

func TestLookupSkipsShapesWithoutLayer(t *testing.T) {
	d := shape.Drawing{Lines: []shape.Line{{Start: shape.Pt(0, 0), End: shape.Pt(10, 0), LayerID: "orphan"}}}
	r := Find(&d, shape.Pt(5, 0))
	assert.False(t, r.Hit())
	assert.Equal(t, -1, r.Index)
}
