package translator

import (
	"errors"
	"fmt"

	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/parser"
)

var (
	// ErrUnsupportedWidgetType is returned for widget types with no rule.
	ErrUnsupportedWidgetType = errors.New("unsupported widget type")
	// ErrUnsupportedImageFormat is returned for images that are neither PNG nor GIF.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
)

// UnsupportedTypeError names the widget type that has no rule.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedWidgetType, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedWidgetType
}

// Classify maps a conversion error to its diagnostic kind.
func Classify(err error) models.DiagnosticKind {
	switch {
	case errors.Is(err, parser.ErrMalformedDocument):
		return models.KindMalformedDocument
	case errors.Is(err, ErrUnsupportedWidgetType):
		return models.KindUnsupportedWidgetType
	case errors.Is(err, ErrUnsupportedImageFormat):
		return models.KindUnsupportedImageFormat
	case errors.Is(err, parser.ErrInvalidGeometry):
		return models.KindInvalidGeometry
	default:
		return models.KindPropertyNotFound
	}
}

func diagnostic(rec models.WidgetRecord, widgetType string, err error) models.Diagnostic {
	return models.Diagnostic{
		Kind:       Classify(err),
		Line:       rec.Line(),
		WidgetType: widgetType,
		Reason:     err.Error(),
	}
}
