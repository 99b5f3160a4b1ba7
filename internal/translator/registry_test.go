package translator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/parser"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{
		"Arc", "Ellipse", "Image", "Label", "Polyline", "Progress Bar",
		"Rectangle", "Rounded Rectangle", "Tank", "Text Input", "Text Monitor", "Text Update",
	}, r.Types())

	rule, err := r.FindRule("Ellipse")
	require.NoError(t, err)
	assert.NotNil(t, rule)

	_, err = r.FindRule("ellipse")
	assert.ErrorIs(t, err, ErrUnsupportedWidgetType)
	assert.ErrorContains(t, err, `"ellipse"`)
}

func TestRegistry_Register(t *testing.T) {
	tr := New(Options{})
	tr.Registry().Register("Gauge", func(_ *Translator, w *Widget) ([]string, error) {
		return []string{"# (Gauge)", fmt.Sprintf("x %d", w.Geometry.X)}, nil
	})

	res, err := tr.Translate(opiDisplay(t, opiWidget("Gauge", 7, 0, 1, 1)))
	require.NoError(t, err)
	require.Empty(t, res.Skipped)
	assert.Equal(t, [][]string{{"# (Gauge)", "x 7"}}, objects(res.Lines()))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want models.DiagnosticKind
	}{
		{&parser.PropertyError{Name: "x"}, models.KindPropertyNotFound},
		{fmt.Errorf("wrap: %w", parser.ErrMalformedDocument), models.KindMalformedDocument},
		{&UnsupportedTypeError{Type: "Meter"}, models.KindUnsupportedWidgetType},
		{fmt.Errorf("%w: a.bmp", ErrUnsupportedImageFormat), models.KindUnsupportedImageFormat},
		{fmt.Errorf("%w: -1", parser.ErrInvalidGeometry), models.KindInvalidGeometry},
		{errors.New("other"), models.KindPropertyNotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), tt.err.Error())
	}
}
