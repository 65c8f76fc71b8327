package interchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/shape"
)

const sample = `CANVAS,800,600
LINE,10,20,30,40,#ff0000
circle,50,50,25,blue,#00ff00
ELLIPSE,100,100,40,20,black
CURVE,0,0,10,20,30,20,40,0,#123456
POLYGON,3,0,0,10,0,5,8,red,yellow
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 800, doc.Width)
	assert.Equal(t, 600, doc.Height)
	assert.Zero(t, doc.Skipped)
	d := doc.Drawing
	require.Len(t, d.Lines, 1)
	require.Len(t, d.Circles, 1)
	require.Len(t, d.Ellipses, 1)
	require.Len(t, d.Curves, 1)
	require.Len(t, d.Polygons, 1)
	require.Len(t, d.Layers, 5)

	assert.Equal(t, shape.Pt(10, 20), d.Lines[0].Start)
	assert.Equal(t, "layer-1", d.Lines[0].LayerID)
	assert.Equal(t, "#ff0000", d.Layer("layer-1").BorderColor)
	assert.Equal(t, "Layer 1", d.Layer("layer-1").Name)
	assert.True(t, d.Layer("layer-1").Visible)

	assert.Equal(t, 25.0, d.Circles[0].Radius)
	assert.Equal(t, "#00ff00", d.Layer(d.Circles[0].LayerID).BackgroundColor)

	assert.Equal(t, 40.0, d.Ellipses[0].RX)
	assert.Empty(t, d.Layer(d.Ellipses[0].LayerID).BackgroundColor)

	assert.Equal(t, shape.Pt(40, 0), d.Curves[0].P3)
	assert.Equal(t, []shape.Point{{0, 0}, {10, 0}, {5, 8}}, d.Polygons[0].Points)
	assert.Equal(t, "yellow", d.Layer(d.Polygons[0].LayerID).BackgroundColor)
}

func TestParseSkipsBadLines(t *testing.T) {
	in := `CANVAS,100,100

LINE,1,2,3,#000000
LINE,a,2,3,4,#000000
CIRCLE,1,1,-3,black
TRIANGLE,1,2,3
POLYGON,3,0,0,1,1,black
LINE,0,0,5,5,black
`
	doc, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 5, doc.Skipped)
	require.Len(t, doc.Drawing.Lines, 1)
	assert.Equal(t, "layer-1", doc.Drawing.Lines[0].LayerID)
}

func TestParseRejectsNonFiniteAndOversized(t *testing.T) {
	in := `CANVAS,100000,100
LINE,NaN,0,10,0,black
LINE,0,0,+Inf,0,black
CIRCLE,5,5,-inf,black
POLYGON,3,0,0,nan,1,2,2,red
LINE,0,0,1e13,0,black
`
	doc, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 5, doc.Skipped)
	assert.Zero(t, doc.Width, "oversized canvas is dropped")
	require.Len(t, doc.Drawing.Lines, 1)
	assert.Equal(t, 1e13, doc.Drawing.Lines[0].End.X)
	assert.Empty(t, doc.Drawing.Circles)
	assert.Empty(t, doc.Drawing.Polygons)
}

func TestParseWithoutHeader(t *testing.T) {
	doc, err := Parse(strings.NewReader("LINE,0,0,1,1,black\n"))
	require.NoError(t, err)
	assert.Zero(t, doc.Width)
	assert.Zero(t, doc.Height)
	assert.Len(t, doc.Drawing.Lines, 1)
}

func TestFormat(t *testing.T) {
	var d shape.Drawing
	d.Add(shape.Line{Start: shape.Pt(1.5, 2), End: shape.Pt(3, 4)}, shape.Layer{ID: "a", BorderColor: "#ff0000"})
	d.Add(shape.Circle{Center: shape.Pt(5, 5), Radius: 2}, shape.Layer{ID: "b", BackgroundColor: "#00ff00"})
	d.Add(shape.Polygon{Points: []shape.Point{{0, 0}, {4, 0}, {2, 3}}}, shape.Layer{ID: "c", BorderColor: "red"})

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, 320, 240, &d))
	assert.Equal(t, "CANVAS,320,240\n"+
		"LINE,1.5,2,3,4,#ff0000\n"+
		"CIRCLE,5,5,2,,#00ff00\n"+
		"POLYGON,3,0,0,4,0,2,3,red\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	doc, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, doc.Width, doc.Height, &doc.Drawing))

	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Width, again.Width)
	assert.Equal(t, doc.Height, again.Height)
	assert.Equal(t, doc.Drawing.Lines, again.Drawing.Lines)
	assert.Equal(t, doc.Drawing.Circles, again.Drawing.Circles)
	assert.Equal(t, doc.Drawing.Ellipses, again.Drawing.Ellipses)
	assert.Equal(t, doc.Drawing.Curves, again.Drawing.Curves)
	assert.Equal(t, doc.Drawing.Polygons, again.Drawing.Polygons)
	for i, l := range doc.Drawing.Layers {
		assert.Equal(t, l.BorderColor, again.Drawing.Layers[i].BorderColor)
		assert.Equal(t, l.BackgroundColor, again.Drawing.Layers[i].BackgroundColor)
	}
}

func TestRoundTripKeepsEmptyColour(t *testing.T) {
	in := "CANVAS,50,50\nLINE,0,0,10,10,\nCIRCLE,5,5,2,,#00ff00\n"
	doc, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Zero(t, doc.Skipped)
	assert.Empty(t, doc.Drawing.Layer(doc.Drawing.Lines[0].LayerID).BorderColor)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, doc.Width, doc.Height, &doc.Drawing))
	assert.Equal(t, in, buf.String())
}

func TestRoundTripPreservesFloats(t *testing.T) {
	var d shape.Drawing
	d.Add(shape.Line{Start: shape.Pt(0.1, 1.0/3), End: shape.Pt(-2.75, 1e-7)}, shape.Layer{ID: "x", BorderColor: "black"})

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, 10, 10, &d))
	doc, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, doc.Drawing.Lines, 1)
	assert.Equal(t, d.Lines[0].Start, doc.Drawing.Lines[0].Start)
	assert.Equal(t, d.Lines[0].End, doc.Drawing.Lines[0].End)
}
