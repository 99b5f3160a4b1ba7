package translator

import (
	"sort"
)

// RenderFunc renders one widget into EDL object lines.
type RenderFunc func(t *Translator, w *Widget) ([]string, error)

// Registry maps source widget type names to render rules.
type Registry struct {
	rules map[string]RenderFunc
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *Registry {
	r := &Registry{rules: make(map[string]RenderFunc)}
	r.Register("Label", renderLabel)
	r.Register("Polyline", renderPolyline)
	r.Register("Ellipse", renderEllipse)
	r.Register("Rectangle", renderRectangle)
	r.Register("Rounded Rectangle", renderRectangle)
	r.Register("Arc", renderArc)
	r.Register("Image", renderImage)
	r.Register("Progress Bar", renderBar)
	r.Register("Tank", renderBar)
	r.Register("Text Update", renderTextUpdate)
	r.Register("Text Monitor", renderTextMonitor)
	r.Register("Text Input", renderTextInput)
	return r
}

// Register adds or replaces the rule for a widget type.
func (r *Registry) Register(widgetType string, fn RenderFunc) {
	r.rules[widgetType] = fn
}

// FindRule returns the rule for a widget type.
func (r *Registry) FindRule(widgetType string) (RenderFunc, error) {
	fn, ok := r.rules[widgetType]
	if !ok {
		return nil, &UnsupportedTypeError{Type: widgetType}
	}
	return fn, nil
}

// Types lists the supported widget types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.rules))
	for t := range r.rules {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
