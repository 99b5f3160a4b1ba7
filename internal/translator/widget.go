package translator

import (
	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/parser"
)

// Widget is a segmented record with its type and bounding box resolved.
// Other properties are read on first use and cached for this widget only.
type Widget struct {
	Record   models.WidgetRecord
	Type     string
	Geometry models.Rect

	props models.WidgetProperties
}

func newWidget(rec models.WidgetRecord) *Widget {
	return &Widget{
		Record: rec,
		props:  models.WidgetProperties{Values: make(map[string]string, 8)},
	}
}

// Prop returns a required property.
func (w *Widget) Prop(name string) (string, error) {
	if v, ok := w.props.Get(name); ok {
		return v, nil
	}
	v, err := parser.Property(w.Record.Lines, name)
	if err != nil {
		return "", err
	}
	w.props.Values[name] = v
	return v, nil
}

// OptionalProp returns a property or def when it is absent.
func (w *Widget) OptionalProp(name, def string) string {
	v, err := w.Prop(name)
	if err != nil {
		return def
	}
	return v
}

// DisplayItem is the text a panel shows for the widget: its image file, else
// its PV name, else its text. Empty when none is set.
func (w *Widget) DisplayItem() string {
	for _, name := range [...]string{"image_file", "pv_name", "text"} {
		if v := w.OptionalProp(name, ""); v != "" {
			return v
		}
	}
	return ""
}

// Points returns the polyline vertices, reading them on first use.
func (w *Widget) Points() ([]models.Point, error) {
	if w.props.Points != nil {
		return w.props.Points, nil
	}
	points, err := parser.Points(w.Record)
	if err != nil {
		return nil, err
	}
	w.props.Points = points
	return points, nil
}
