package state

import (
	"fmt"
	"io"

	"VectorBoard/internal/interchange"
	"VectorBoard/internal/logging"
)

// ImportText replaces the drawing with the contents of an interchange file.
// The file is parsed completely before anything is replaced; a read error
// leaves the session untouched. A file without a CANVAS header keeps the
// current canvas size.
func (s *Session) ImportText(r io.Reader) error {
	doc, err := interchange.Parse(r)
	if err != nil {
		return fmt.Errorf("importing drawing: %w", err)
	}
	s.update(func() {
		s.resetLocked()
		s.drawing = doc.Drawing
		if doc.Width > 0 && doc.Height > 0 {
			s.width, s.height = doc.Width, doc.Height
		}
		s.syncClockLocked()
		s.revision++
	})
	logging.For("session").Info("drawing imported",
		"shapes", doc.Drawing.Len(), "skipped", doc.Skipped)
	return nil
}

// ImportAsync reads r on its own goroutine and calls done, if set, with the
// result. Only one import may run at a time; a second call while one is
// pending returns ErrImportPending. The session stays usable meanwhile.
func (s *Session) ImportAsync(r io.Reader, done func(error)) error {
	if !s.importing.CompareAndSwap(false, true) {
		return ErrImportPending
	}
	go func() {
		err := s.ImportText(r)
		s.importing.Store(false)
		if err != nil {
			logging.For("session").Warn("import failed", "err", err)
		}
		if done != nil {
			done(err)
		}
	}()
	return nil
}

// Importing reports whether an ImportAsync is still running.
func (s *Session) Importing() bool {
	return s.importing.Load()
}

// ExportText writes the drawing in the interchange format.
func (s *Session) ExportText(w io.Writer) error {
	s.mu.Lock()
	d := s.drawing.Clone()
	width, height := s.width, s.height
	s.mu.Unlock()
	if err := interchange.Format(w, width, height, &d); err != nil {
		return fmt.Errorf("exporting drawing: %w", err)
	}
	return nil
}

// syncClockLocked continues layer numbering after the highest "Layer <n>"
// already in the drawing.
func (s *Session) syncClockLocked() {
	for _, l := range s.drawing.Layers {
		if n, ok := layerNumber(l.Name); ok {
			s.clock.Update(n)
		}
	}
}
