package models

// WidgetRecord is the span of source lines describing one widget, from its
// opening marker line to its closing marker line inclusive.
// Lines is a sub-slice of the source document, not a copy.
type WidgetRecord struct {
	Lines []string `json:"-"`
	Start int      `json:"start"` // 0-based index of the opening line in the document
}

// Line returns the 1-based line number of the opening marker, for diagnostics.
func (r WidgetRecord) Line() int {
	return r.Start + 1
}

// WidgetProperties is the flat property view of one widget, filled on
// demand while it is translated.
type WidgetProperties struct {
	Values map[string]string `json:"values"`
	Points []Point           `json:"points,omitempty"` // polyline vertices, document order
}

// Get returns a property value and whether it was present.
func (p WidgetProperties) Get(name string) (string, bool) {
	v, ok := p.Values[name]
	return v, ok
}

// Point is one polyline vertex. Coordinates keep their source spelling.
type Point struct {
	X string `json:"x" msgpack:"x"`
	Y string `json:"y" msgpack:"y"`
}

// Rect is a widget bounding box in display pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RGB is an 8-bit colour triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}
