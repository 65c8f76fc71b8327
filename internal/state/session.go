// Package state holds the drawing session: the single owner of a project's
// shapes and layers. Every edit goes through a Session command; the UI and
// the share hub observe changes through OnChange.
package state

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/raster"
	"VectorBoard/internal/shape"
	"VectorBoard/internal/store"
	"VectorBoard/internal/tool"
	"VectorBoard/internal/transform"
)

var (
	ErrNotFound      = errors.New("state: no such shape")
	ErrKindChanged   = errors.New("state: transform changed the shape kind")
	ErrImportPending = errors.New("state: an import is already running")
	ErrNoStore       = errors.New("state: session has no store")
)

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultBackground = "#ffffff"
	DefaultColor      = "#000000"
)

// Options configure a new Session. Zero values pick the defaults.
type Options struct {
	Width, Height  int
	Background     string
	Color          string
	Fill           string
	Thickness      float64
	Corners        int
	ImmediateErase bool
	Project        string
	Store          store.Store
}

// Session owns one open project.
type Session struct {
	mu sync.Mutex

	drawing shape.Drawing
	machine *tool.Machine
	view    transform.View
	clock   Clock

	width, height int
	background    string
	bg            color.Color

	color     string
	fill      string
	thickness float64

	project string
	store   store.Store

	revision  uint64
	importing atomic.Bool

	obsMu     sync.Mutex
	observers []func()
}

// New creates an empty session.
func New(opts Options) *Session {
	s := &Session{
		machine:   tool.New(),
		view:      transform.NewView(),
		width:     opts.Width,
		height:    opts.Height,
		color:     DefaultColor,
		fill:      opts.Fill,
		thickness: opts.Thickness,
		project:   opts.Project,
		store:     opts.Store,
	}
	if s.width <= 0 {
		s.width = DefaultWidth
	}
	if s.height <= 0 {
		s.height = DefaultHeight
	}
	if _, err := raster.ParseColor(opts.Color); err == nil && opts.Color != "" {
		s.color = opts.Color
	}
	if _, err := raster.ParseColor(s.fill); err != nil {
		s.fill = ""
	}
	if s.thickness < 1 {
		s.thickness = 1
	}
	s.setBackground(opts.Background)
	if opts.Corners != 0 {
		s.machine.SetCorners(opts.Corners)
	}
	s.machine.ImmediateErase = opts.ImmediateErase
	return s
}

func (s *Session) setBackground(bg string) {
	c, err := raster.ParseColor(bg)
	if err != nil || c == nil {
		bg, c = DefaultBackground, raster.MustColor(DefaultBackground, color.White)
	}
	s.background, s.bg = bg, c
}

// OnChange registers fn to run after every change. Observers run on the
// goroutine that made the change, with the session unlocked.
func (s *Session) OnChange(fn func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *Session) notify() {
	s.obsMu.Lock()
	obs := append([]func(){}, s.observers...)
	s.obsMu.Unlock()
	for _, fn := range obs {
		fn()
	}
}

// update runs fn under the lock and notifies observers afterwards.
func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.notify()
}

// Revision increases with every change to the drawing itself.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Drawing returns a copy of the shapes and layers.
func (s *Session) Drawing() shape.Drawing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.Clone()
}

// Layers returns a copy of the layer list.
func (s *Session) Layers() []shape.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]shape.Layer(nil), s.drawing.Layers...)
}

// Shape looks a shape up by layer id.
func (s *Session) Shape(id string) (shape.Shape, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, _, ok := s.drawing.Find(id)
	return sh, ok
}

// Selected is the id of the selected layer, or "".
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.Selected()
}

// CanvasSize reports the canvas size in pixels.
func (s *Session) CanvasSize() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetCanvasSize resizes the canvas. Non-positive sizes are ignored.
func (s *Session) SetCanvasSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.update(func() {
		s.width, s.height = w, h
		s.revision++
	})
}

// Background is the canvas colour as given.
func (s *Session) Background() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

// SetBackground changes the canvas colour.
func (s *Session) SetBackground(bg string) error {
	c, err := raster.ParseColor(bg)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("state: empty background colour")
	}
	s.update(func() {
		s.background, s.bg = bg, c
	})
	return nil
}

// Project is the current project name.
func (s *Session) Project() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project
}

// Clear removes every shape and layer.
func (s *Session) Clear() {
	s.update(func() {
		s.resetLocked()
		s.revision++
	})
	logging.For("session").Info("drawing cleared", "project", s.Project())
}

func (s *Session) resetLocked() {
	s.drawing = shape.Drawing{}
	s.machine.Reset()
	s.clock.Reset()
}
