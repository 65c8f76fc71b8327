package state

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/shape"
	"VectorBoard/internal/store"
	"VectorBoard/internal/transform"
)

// ThumbnailWidth is the width of saved thumbnails; height keeps the
// canvas aspect ratio.
const ThumbnailWidth = 160

// Save writes the session under its project name.
func (s *Session) Save() error {
	s.mu.Lock()
	st, name := s.store, s.project
	if st == nil {
		s.mu.Unlock()
		return ErrNoStore
	}
	rec := store.NewRecord(s.drawing, store.Size{Width: s.width, Height: s.height})
	thumb, err := s.thumbnailLocked()
	s.mu.Unlock()

	if err != nil {
		logging.For("session").Warn("saving without thumbnail", "project", name, "err", err)
	}
	rec.Thumbnail = thumb
	if err := store.Save(st, name, rec); err != nil {
		return err
	}
	logging.For("session").Info("project saved", "project", name, "shapes", len(rec.Layers))
	return nil
}

// Load makes name the current project and reads it from the store. A
// missing or corrupt record leaves an empty session and reports false.
func (s *Session) Load(name string) bool {
	var rec store.Record
	var ok bool
	if s.store != nil {
		rec, ok = store.Load(s.store, name)
	}
	s.update(func() {
		s.resetLocked()
		s.project = name
		s.view.Reset()
		if ok {
			s.drawing = rec.Drawing()
			if rec.CanvasSize.Width > 0 && rec.CanvasSize.Height > 0 {
				s.width, s.height = rec.CanvasSize.Width, rec.CanvasSize.Height
			}
			s.syncClockLocked()
		}
		s.revision++
	})
	logging.For("session").Info("project loaded", "project", name, "found", ok)
	return ok
}

// SwitchProject saves the current project, when it has a name, and loads
// the named one.
func (s *Session) SwitchProject(name string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if s.Project() != "" {
		if err := s.Save(); err != nil {
			return fmt.Errorf("switching to %q: %w", name, err)
		}
	}
	s.Load(name)
	return nil
}

// Projects lists the saved projects.
func (s *Session) Projects() []string {
	if s.store == nil {
		return nil
	}
	return store.Projects(s.store)
}

// DeleteProject removes a saved project. Deleting the open project also
// empties the session.
func (s *Session) DeleteProject(name string) error {
	if s.store == nil {
		return ErrNoStore
	}
	if err := store.Delete(s.store, name); err != nil {
		return err
	}
	if name == s.Project() {
		s.update(func() {
			s.resetLocked()
			s.revision++
		})
	}
	logging.For("session").Info("project deleted", "project", name)
	return nil
}

// Thumbnail returns the drawing, without overlays or view, scaled down to
// ThumbnailWidth and encoded as a PNG data URL.
func (s *Session) Thumbnail() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thumbnailLocked()
}

func (s *Session) thumbnailLocked() (string, error) {
	full := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	s.renderLocked(full, transform.NewView(), false)

	h := max(1, s.height*ThumbnailWidth/s.width)
	small := image.NewRGBA(image.Rect(0, 0, ThumbnailWidth, h))
	xdraw.ApproxBiLinear.Scale(small, small.Bounds(), full, full.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, small); err != nil {
		return "", fmt.Errorf("encoding thumbnail: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Snapshot copies the drawing together with the canvas size.
func (s *Session) Snapshot() (shape.Drawing, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.Clone(), s.width, s.height
}
