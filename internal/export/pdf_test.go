package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/shape"
)

func drawing() *shape.Drawing {
	var d shape.Drawing
	d.Add(shape.Line{Start: shape.Pt(10, 10), End: shape.Pt(90, 10)}, shape.Layer{ID: "l", Visible: true, BorderColor: "red"})
	d.Add(shape.Circle{Center: shape.Pt(50, 50), Radius: 20}, shape.Layer{ID: "c", Visible: true, BackgroundColor: "#00ff00"})
	d.Add(shape.Ellipse{Center: shape.Pt(50, 50), RX: 30, RY: 10}, shape.Layer{ID: "e", Visible: true, Thickness: 3})
	d.Add(shape.Curve{P0: shape.Pt(0, 0), P1: shape.Pt(20, 40), P2: shape.Pt(60, 40), P3: shape.Pt(80, 0)}, shape.Layer{ID: "b", Visible: true})
	d.Add(shape.Polygon{Points: shape.RegularPolygon(shape.Pt(50, 50), 15, 6)}, shape.Layer{ID: "p", Visible: true, BorderColor: "transparent", BackgroundColor: "blue"})
	d.Add(shape.Line{End: shape.Pt(5, 5)}, shape.Layer{ID: "hidden"})
	return &d
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, drawing(), 100, 80, Options{Background: "white", Title: "demo"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")

	var empty bytes.Buffer
	require.NoError(t, PDF(&empty, &shape.Drawing{}, 100, 80, Options{}))
	assert.Greater(t, buf.Len(), empty.Len())
}

func TestPDFRejectsEmptyCanvas(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, PDF(&buf, drawing(), 0, 80, Options{}), ErrEmptyCanvas)
	assert.Zero(t, buf.Len())
}

func TestRGB(t *testing.T) {
	c, ok := rgb("#102030")
	assert.True(t, ok)
	assert.Equal(t, rgb8{0x10, 0x20, 0x30}, c)
	_, ok = rgb("")
	assert.False(t, ok)
	_, ok = rgb("transparent")
	assert.False(t, ok)
	_, ok = rgb("bogus")
	assert.False(t, ok)
}
