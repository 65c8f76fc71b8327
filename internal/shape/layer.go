package shape

// Layer carries the visibility, selection and style of exactly one shape.
// A shape without a matching layer is never rendered.
type Layer struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Visible         bool    `json:"is_visible"`
	Selected        bool    `json:"is_selected"`
	Thickness       float64 `json:"thickness,omitempty"`
	BorderColor     string  `json:"borderColor,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
}

// DefaultBorderColor is used when a layer does not set a border colour.
const DefaultBorderColor = "#000000"

// StrokeWidth returns the layer thickness rounded to whole pixels, at least 1.
func (l Layer) StrokeWidth() int {
	w := int(l.Thickness + 0.5)
	if w < 1 {
		return 1
	}
	return w
}

// Border returns the border colour, falling back to DefaultBorderColor.
func (l Layer) Border() string {
	if l.BorderColor == "" {
		return DefaultBorderColor
	}
	return l.BorderColor
}
