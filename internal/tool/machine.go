package tool

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"VectorBoard/internal/shape"
	"VectorBoard/internal/transform"
)

const (
	MinCorners     = 3
	MaxCorners     = 16
	DefaultCorners = 5

	// HandleRadius is how close a press must be to a scale handle.
	HandleRadius = 6
)

// Machine is the interaction state machine. It keeps only gesture state;
// every shape it touches lives in the Document and is looked up by id on
// each event.
type Machine struct {
	// ImmediateErase deletes shapes as soon as the eraser touches them
	// instead of staging them for ConfirmErase.
	ImmediateErase bool

	tool    Tool
	mode    shape.Kind
	corners int

	points []shape.Point
	cursor shape.Point
	hover  bool

	// target is the shape awaiting a rotate, flip, scale or erase.
	target string

	dragging bool
	dragID   string
	offset   shape.Point

	scaling bool
	handle  transform.Handle
	start   shape.Point
	bounds  shape.Rect
	preview shape.Shape

	erasing bool
}

// New returns a Machine drawing lines.
func New() *Machine {
	return &Machine{tool: Draw, mode: shape.KindLine, corners: DefaultCorners}
}

func (m *Machine) Tool() Tool       { return m.tool }
func (m *Machine) Mode() shape.Kind { return m.mode }
func (m *Machine) Corners() int     { return m.corners }
func (m *Machine) Target() string   { return m.target }

// SetTool switches tools and drops any gesture in progress.
func (m *Machine) SetTool(t Tool) {
	m.Reset()
	m.tool = t
}

// SetMode picks the shape drawn by the Draw tool and clears placed points.
func (m *Machine) SetMode(k shape.Kind) {
	m.points = nil
	m.mode = k
}

// SetCorners sets the polygon side count, clamped to [MinCorners, MaxCorners].
func (m *Machine) SetCorners(n int) {
	m.corners = min(max(n, MinCorners), MaxCorners)
}

// Reset discards placed points, drags, pending confirmations and previews.
// The document is not touched.
func (m *Machine) Reset() {
	m.points = nil
	m.target = ""
	m.dragging, m.dragID = false, ""
	m.scaling, m.preview = false, nil
	m.erasing = false
}

// Cancel closes a pending confirmation without changing the document.
func (m *Machine) Cancel() { m.Reset() }

// Pending reports which confirmation, if any, is open.
func (m *Machine) Pending() Pending {
	if m.target == "" {
		return None
	}
	switch m.tool {
	case Rotate:
		return PendingRotate
	case Flip:
		return PendingFlip
	case Scale:
		return PendingScale
	case Eraser:
		if !m.ImmediateErase {
			return PendingErase
		}
	}
	return None
}

// Dragging reports whether the Move tool is carrying a shape.
func (m *Machine) Dragging() bool { return m.dragging }

// Markers are the construction points placed so far.
func (m *Machine) Markers() []shape.Point {
	return append([]shape.Point(nil), m.points...)
}

// PointerDown handles a press at p in canvas space.
func (m *Machine) PointerDown(doc Document, p shape.Point) {
	m.cursor, m.hover = p, true
	switch m.tool {
	case Draw:
		m.place(doc, p)
	case Select:
		r := doc.HitTest(p)
		if !r.Hit() {
			r = doc.HitTestArea(p)
		}
		doc.Select(r.LayerID)
	case Move:
		m.toggleDrag(doc, p)
	case Rotate, Flip:
		m.pick(doc, p)
	case Scale:
		if !m.grab(doc, p) {
			m.pick(doc, p)
		}
	case Eraser:
		m.erasing = true
		m.erase(doc, p)
	}
}

// PointerMove handles pointer motion, pressed or not.
func (m *Machine) PointerMove(doc Document, p shape.Point) {
	m.cursor, m.hover = p, true
	switch {
	case m.tool == Move && m.dragging:
		s, ok := doc.Shape(m.dragID)
		if !ok {
			m.dragging, m.dragID = false, ""
			return
		}
		anchor := p.Sub(m.offset)
		doc.ReplaceShape(s.Translate(anchor.Sub(s.Anchor())))
	case m.tool == Scale && m.scaling:
		s, ok := doc.Shape(m.target)
		if !ok {
			m.Reset()
			return
		}
		m.preview = transform.Scale(s, m.handle, p.Sub(m.start), m.bounds)
	case m.tool == Eraser && m.erasing:
		m.erase(doc, p)
	}
}

// PointerUp handles a release. It commits a scale drag and ends an eraser
// session; a Move drag continues until the next press.
func (m *Machine) PointerUp(doc Document, p shape.Point) {
	m.cursor = p
	switch {
	case m.tool == Scale && m.scaling:
		m.PointerMove(doc, p)
		if m.preview != nil {
			doc.ReplaceShape(m.preview)
		}
		m.scaling, m.preview = false, nil
	case m.tool == Eraser:
		m.erasing = false
	}
}

// Leave hides the construction preview when the pointer leaves the canvas.
func (m *Machine) Leave() { m.hover = false }

func (m *Machine) needed() int {
	if m.mode == shape.KindCurve {
		return 4
	}
	return 2
}

func (m *Machine) place(doc Document, p shape.Point) {
	m.points = append(m.points, p)
	if len(m.points) < m.needed() {
		return
	}
	s := build(m.mode, m.points, m.corners)
	m.points = nil
	doc.AddShape(s)
}

// build makes a shape from exactly needed() points.
func build(mode shape.Kind, pts []shape.Point, corners int) shape.Shape {
	switch mode {
	case shape.KindCircle:
		return shape.Circle{Center: pts[0], Radius: pts[0].Dist(pts[1])}
	case shape.KindEllipse:
		return shape.Ellipse{Center: pts[0], RX: math.Abs(pts[1].X - pts[0].X), RY: math.Abs(pts[1].Y - pts[0].Y)}
	case shape.KindCurve:
		return shape.Curve{P0: pts[0], P1: pts[1], P2: pts[2], P3: pts[3]}
	case shape.KindPolygon:
		return shape.Polygon{Points: shape.RegularPolygon(pts[0], pts[0].Dist(pts[1]), corners)}
	default:
		return shape.Line{Start: pts[0], End: pts[1]}
	}
}

// Preview is the shape to draw on top of the drawing: the shape under
// construction completed with the pointer position, or the live result of a
// scale drag. It is nil when there is nothing to show.
func (m *Machine) Preview() shape.Shape {
	if m.scaling {
		return m.preview
	}
	if m.tool != Draw || len(m.points) == 0 || !m.hover {
		return nil
	}
	pts := append([]shape.Point(nil), m.points...)
	for len(pts) < m.needed() {
		pts = append(pts, m.cursor)
	}
	return build(m.mode, pts, m.corners)
}

func (m *Machine) toggleDrag(doc Document, p shape.Point) {
	r := doc.HitTest(p)
	if m.dragging {
		same := r.LayerID == m.dragID
		m.dragging, m.dragID = false, ""
		if same || !r.Hit() {
			return
		}
	}
	if !r.Hit() {
		return
	}
	s, ok := doc.Shape(r.LayerID)
	if !ok {
		return
	}
	m.dragging, m.dragID = true, r.LayerID
	m.offset = p.Sub(s.Anchor())
	doc.Select(r.LayerID)
}

// pick chooses the target of a rotate, flip or scale.
func (m *Machine) pick(doc Document, p shape.Point) {
	m.target = doc.HitTest(p).LayerID
	doc.Select(m.target)
}

// grab starts a scale drag when p is on a handle of the current target.
func (m *Machine) grab(doc Document, p shape.Point) bool {
	if m.target == "" {
		return false
	}
	s, ok := doc.Shape(m.target)
	if !ok {
		return false
	}
	b := s.Bounds()
	h, ok := transform.HandleAt(b, p, HandleRadius)
	if !ok {
		return false
	}
	m.scaling, m.handle, m.start, m.bounds, m.preview = true, h, p, b, s
	return true
}

func (m *Machine) erase(doc Document, p shape.Point) {
	r := doc.HitTest(p)
	if !r.Hit() {
		return
	}
	if m.ImmediateErase {
		doc.DeleteShape(r.LayerID)
		return
	}
	m.target = r.LayerID
	doc.Select(r.LayerID)
}

func (m *Machine) targetShape(doc Document) (shape.Shape, error) {
	if m.target == "" {
		return nil, ErrNoTarget
	}
	s, ok := doc.Shape(m.target)
	if !ok {
		m.target = ""
		return nil, ErrNoTarget
	}
	return s, nil
}

// ConfirmRotate rotates the target about its pivot by the angle in degrees
// given as text. Bad input leaves the document and the pending state alone.
func (m *Machine) ConfirmRotate(doc Document, angle string) error {
	s, err := m.targetShape(doc)
	if err != nil {
		return err
	}
	deg, err := strconv.ParseFloat(strings.TrimSpace(angle), 64)
	if err != nil || math.IsNaN(deg) || math.IsInf(deg, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidAngle, angle)
	}
	doc.ReplaceShape(transform.Rotate(s, s.Pivot(), deg))
	m.target = ""
	return nil
}

// ConfirmFlip mirrors the target about its pivot.
func (m *Machine) ConfirmFlip(doc Document, direction string) error {
	s, err := m.targetShape(doc)
	if err != nil {
		return err
	}
	dir, err := transform.ParseDirection(direction)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}
	doc.ReplaceShape(transform.Flip(s, s.Pivot(), dir))
	m.target = ""
	return nil
}

// ConfirmErase deletes the shape staged by the eraser.
func (m *Machine) ConfirmErase(doc Document) error {
	if m.target == "" {
		return ErrNoTarget
	}
	id := m.target
	m.target = ""
	if !doc.DeleteShape(id) {
		return ErrNoTarget
	}
	return nil
}
