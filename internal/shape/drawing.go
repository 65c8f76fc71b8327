package shape

import "slices"

// Drawing is the canonical shape store: one list per primitive kind plus the
// layer list. Shapes are identified by layer id; slice positions change on
// every removal and must not be kept between calls.
type Drawing struct {
	Lines    []Line    `json:"lines"`
	Circles  []Circle  `json:"circles"`
	Curves   []Curve   `json:"curves"`
	Ellipses []Ellipse `json:"ellipses"`
	Polygons []Polygon `json:"polygons"`
	Layers   []Layer   `json:"layers"`
}

// Add appends s to its collection and l to the layer list. The shape is
// rebound to l.ID.
func (d *Drawing) Add(s Shape, l Layer) {
	s = s.WithID(l.ID)
	switch v := s.(type) {
	case Line:
		d.Lines = append(d.Lines, v)
	case Circle:
		d.Circles = append(d.Circles, v)
	case Ellipse:
		d.Ellipses = append(d.Ellipses, v)
	case Curve:
		d.Curves = append(d.Curves, v)
	case Polygon:
		d.Polygons = append(d.Polygons, v)
	}
	d.Layers = append(d.Layers, l)
}

// Find returns the shape bound to id and its current index in its collection.
func (d *Drawing) Find(id string) (Shape, int, bool) {
	if id == "" {
		return nil, -1, false
	}
	if i := slices.IndexFunc(d.Lines, func(v Line) bool { return v.LayerID == id }); i >= 0 {
		return d.Lines[i], i, true
	}
	if i := slices.IndexFunc(d.Circles, func(v Circle) bool { return v.LayerID == id }); i >= 0 {
		return d.Circles[i], i, true
	}
	if i := slices.IndexFunc(d.Ellipses, func(v Ellipse) bool { return v.LayerID == id }); i >= 0 {
		return d.Ellipses[i], i, true
	}
	if i := slices.IndexFunc(d.Curves, func(v Curve) bool { return v.LayerID == id }); i >= 0 {
		return d.Curves[i], i, true
	}
	if i := slices.IndexFunc(d.Polygons, func(v Polygon) bool { return v.LayerID == id }); i >= 0 {
		return d.Polygons[i], i, true
	}
	return nil, -1, false
}

// Replace overwrites the shape that has the same id and kind as s.
// It reports false if there is none.
func (d *Drawing) Replace(s Shape) bool {
	old, i, ok := d.Find(s.ID())
	if !ok || old.Kind() != s.Kind() {
		return false
	}
	switch v := s.(type) {
	case Line:
		d.Lines[i] = v
	case Circle:
		d.Circles[i] = v
	case Ellipse:
		d.Ellipses[i] = v
	case Curve:
		d.Curves[i] = v
	case Polygon:
		d.Polygons[i] = v.WithID(v.LayerID).(Polygon)
	}
	return true
}

// Remove deletes the shape bound to id together with its layer.
func (d *Drawing) Remove(id string) bool {
	s, i, ok := d.Find(id)
	if !ok {
		return false
	}
	switch s.Kind() {
	case KindLine:
		d.Lines = slices.Delete(d.Lines, i, i+1)
	case KindCircle:
		d.Circles = slices.Delete(d.Circles, i, i+1)
	case KindEllipse:
		d.Ellipses = slices.Delete(d.Ellipses, i, i+1)
	case KindCurve:
		d.Curves = slices.Delete(d.Curves, i, i+1)
	case KindPolygon:
		d.Polygons = slices.Delete(d.Polygons, i, i+1)
	}
	d.Layers = slices.DeleteFunc(d.Layers, func(l Layer) bool { return l.ID == id })
	return true
}

// Layer returns a pointer into the layer list, or nil. The pointer shares
// the backing array of d.Layers.
func (d Drawing) Layer(id string) *Layer {
	for i := range d.Layers {
		if d.Layers[i].ID == id {
			return &d.Layers[i]
		}
	}
	return nil
}

// Select marks the layer id as the only selected one. An empty or unknown id
// deselects everything.
func (d *Drawing) Select(id string) {
	for i := range d.Layers {
		d.Layers[i].Selected = id != "" && d.Layers[i].ID == id
	}
}

// Selected returns the id of the first selected layer.
func (d *Drawing) Selected() string {
	for _, l := range d.Layers {
		if l.Selected {
			return l.ID
		}
	}
	return ""
}

// Len is the number of shapes.
func (d Drawing) Len() int {
	return len(d.Lines) + len(d.Circles) + len(d.Ellipses) + len(d.Curves) + len(d.Polygons)
}

// Shapes lists every shape in render order: lines, circles, curves,
// ellipses, polygons.
func (d *Drawing) Shapes() []Shape {
	out := make([]Shape, 0, d.Len())
	for _, v := range d.Lines {
		out = append(out, v)
	}
	for _, v := range d.Circles {
		out = append(out, v)
	}
	for _, v := range d.Curves {
		out = append(out, v)
	}
	for _, v := range d.Ellipses {
		out = append(out, v)
	}
	for _, v := range d.Polygons {
		out = append(out, v)
	}
	return out
}

// Clone returns a deep copy.
func (d *Drawing) Clone() Drawing {
	c := Drawing{
		Lines:    slices.Clone(d.Lines),
		Circles:  slices.Clone(d.Circles),
		Curves:   slices.Clone(d.Curves),
		Ellipses: slices.Clone(d.Ellipses),
		Layers:   slices.Clone(d.Layers),
	}
	if d.Polygons != nil {
		c.Polygons = make([]Polygon, len(d.Polygons))
		for i, p := range d.Polygons {
			c.Polygons[i] = Polygon{Points: clonePoints(p.Points), LayerID: p.LayerID}
		}
	}
	return c
}
