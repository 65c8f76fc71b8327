package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/shape"
)

const (
	projectPrefix = "project:"
	indexKey      = "projects"
)

// ErrNoProject is returned for an empty project name.
var ErrNoProject = errors.New("store: empty project name")

// Size is the canvas size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Record is the persisted form of one project.
type Record struct {
	Lines      []shape.Line    `json:"lines"`
	Circles    []shape.Circle  `json:"circles"`
	Curves     []shape.Curve   `json:"curves"`
	Ellipses   []shape.Ellipse `json:"ellipses"`
	Polygons   []shape.Polygon `json:"polygons"`
	Layers     []shape.Layer   `json:"layers"`
	CanvasSize Size            `json:"canvasSize"`
	LastSaved  time.Time       `json:"lastSaved"`
	// Thumbnail is a PNG data URL of the rendered canvas.
	Thumbnail string `json:"thumbnail,omitempty"`
}

// NewRecord copies d into a record.
func NewRecord(d shape.Drawing, size Size) Record {
	c := d.Clone()
	return Record{
		Lines:      c.Lines,
		Circles:    c.Circles,
		Curves:     c.Curves,
		Ellipses:   c.Ellipses,
		Polygons:   c.Polygons,
		Layers:     c.Layers,
		CanvasSize: size,
	}
}

// Drawing returns the record's shapes and layers.
func (r Record) Drawing() shape.Drawing {
	return shape.Drawing{
		Lines:    r.Lines,
		Circles:  r.Circles,
		Curves:   r.Curves,
		Ellipses: r.Ellipses,
		Polygons: r.Polygons,
		Layers:   r.Layers,
	}
}

func projectKey(name string) string {
	return projectPrefix + name
}

// Save writes r under the project name and adds the name to the project
// index. LastSaved is stamped when zero.
func Save(st Store, name string, r Record) error {
	if name == "" {
		return ErrNoProject
	}
	if r.LastSaved.IsZero() {
		r.LastSaved = time.Now().UTC()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding project %q: %w", name, err)
	}
	if err := st.Set(projectKey(name), string(data)); err != nil {
		return fmt.Errorf("saving project %q: %w", name, err)
	}
	names := Projects(st)
	if !slices.Contains(names, name) {
		if err := writeIndex(st, append(names, name)); err != nil {
			return err
		}
	}
	logging.For("store").Debug("project saved", "project", name, "bytes", len(data))
	return nil
}

// Load reads a project. A missing or unreadable record reports false so the
// caller can fall back to an empty session.
func Load(st Store, name string) (Record, bool) {
	raw, ok := st.Get(projectKey(name))
	if !ok {
		return Record{}, false
	}
	var r Record
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		logging.For("store").Warn("discarding corrupt project", "project", name, "err", err)
		return Record{}, false
	}
	return r, true
}

// Delete removes a project and its index entry.
func Delete(st Store, name string) error {
	if err := st.Remove(projectKey(name)); err != nil {
		return fmt.Errorf("removing project %q: %w", name, err)
	}
	names := Projects(st)
	if i := slices.Index(names, name); i >= 0 {
		return writeIndex(st, slices.Delete(names, i, i+1))
	}
	return nil
}

// Projects lists saved project names in save order.
func Projects(st Store) []string {
	raw, ok := st.Get(indexKey)
	if !ok {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		logging.For("store").Warn("discarding corrupt project index", "err", err)
		return nil
	}
	return names
}

func writeIndex(st Store, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return err
	}
	if err := st.Set(indexKey, string(data)); err != nil {
		return fmt.Errorf("saving project index: %w", err)
	}
	return nil
}
