package models

import "fmt"

// DiagnosticKind classifies a conversion problem.
type DiagnosticKind string

const (
	KindPropertyNotFound       DiagnosticKind = "property_not_found"
	KindMalformedDocument      DiagnosticKind = "malformed_document"
	KindUnsupportedWidgetType  DiagnosticKind = "unsupported_widget_type"
	KindUnsupportedImageFormat DiagnosticKind = "unsupported_image_format"
	KindInvalidGeometry        DiagnosticKind = "invalid_geometry"
)

// Diagnostic is a problem found while converting one document.
// Only KindMalformedDocument stops the document; every other kind skips a
// single widget or value.
type Diagnostic struct {
	Kind       DiagnosticKind `json:"kind" msgpack:"kind"`
	Line       int            `json:"line,omitempty" msgpack:"line,omitempty"` // 1-based, 0 when not tied to a line
	WidgetType string         `json:"widgetType,omitempty" msgpack:"widgetType,omitempty"`
	Reason     string         `json:"reason" msgpack:"reason"`
}

func (d Diagnostic) String() string {
	switch {
	case d.Line > 0 && d.WidgetType != "":
		return fmt.Sprintf("line %d (%s): %s", d.Line, d.WidgetType, d.Reason)
	case d.Line > 0:
		return fmt.Sprintf("line %d: %s", d.Line, d.Reason)
	default:
		return d.Reason
	}
}
