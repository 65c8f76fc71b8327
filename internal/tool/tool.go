// Package tool turns pointer events into shape construction, selection and
// transform gestures for the active tool.
package tool

import (
	"errors"

	"VectorBoard/internal/hittest"
	"VectorBoard/internal/shape"
)

// Tool is the active editing tool. Choosing it is up to the caller.
type Tool int

const (
	Draw Tool = iota
	Select
	Move
	Rotate
	Flip
	Scale
	Eraser
)

var toolNames = [...]string{"draw", "select", "move", "rotate", "flip", "scale", "eraser"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "unknown"
	}
	return toolNames[t]
}

// ParseTool is the inverse of Tool.String.
func ParseTool(s string) (Tool, bool) {
	for i, n := range toolNames {
		if n == s {
			return Tool(i), true
		}
	}
	return 0, false
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{Draw, Select, Move, Rotate, Flip, Scale, Eraser}
}

var (
	ErrNoTarget         = errors.New("no shape selected")
	ErrInvalidAngle     = errors.New("angle must be a number")
	ErrInvalidDirection = errors.New("direction must be horizontal or vertical")
)

// Document is the drawing a Machine edits. Shapes are addressed by layer id.
type Document interface {
	HitTest(p shape.Point) hittest.Result
	// HitTestArea matches anywhere inside filled outlines.
	HitTestArea(p shape.Point) hittest.Result
	Shape(id string) (shape.Shape, bool)
	// AddShape stores s under a fresh layer, selects it and returns its id.
	AddShape(s shape.Shape) string
	ReplaceShape(s shape.Shape) bool
	DeleteShape(id string) bool
	// Select makes id the only selected layer; "" clears the selection.
	Select(id string)
}

// Pending names the confirmation a Machine is waiting for.
type Pending int

const (
	None Pending = iota
	PendingRotate
	PendingFlip
	PendingScale
	PendingErase
)

func (p Pending) String() string {
	switch p {
	case PendingRotate:
		return "rotate"
	case PendingFlip:
		return "flip"
	case PendingScale:
		return "scale"
	case PendingErase:
		return "erase"
	}
	return "none"
}
