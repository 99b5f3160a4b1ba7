package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmlemon/opi2edl/internal/edl"
	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/parser"
)

func translate(t *testing.T, opts Options, widgets ...string) *Result {
	t.Helper()
	res, err := New(opts).Translate(opiDisplay(t, widgets...))
	require.NoError(t, err)
	return res
}

func TestTranslate_Rectangle(t *testing.T) {
	res := translate(t, Options{},
		opiWidget("Rectangle", 10, 20, 30, 40, background(0, 0, 0), prop("transparent", "false")),
	)

	lines := res.Lines()
	assert.Contains(t, lines, "w 800")
	assert.Contains(t, lines, "h 600")

	objs := objects(lines)
	require.Len(t, objs, 1)
	rect := objs[0]
	assert.Equal(t, "object activeRectangleClass", rect[1])
	assert.Contains(t, rect, "x 10")
	assert.Contains(t, rect, "y 20")
	assert.Contains(t, rect, "w 30")
	assert.Contains(t, rect, "h 40")

	fill := indexOf(rect, "fill")
	require.GreaterOrEqual(t, fill, 0)
	assert.Equal(t, "fillColor index 14", rect[fill+1])
	assert.Less(t, fill+1, indexOf(rect, "endObjectProperties"))

	assert.Equal(t, 1, res.Widgets)
	assert.Equal(t, 1, res.Rendered())
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Skipped)
}

func TestTranslate_TransparentShapesHaveNoFill(t *testing.T) {
	res := translate(t, Options{},
		opiWidget("Rectangle", 0, 0, 5, 5, background(255, 255, 255), prop("transparent", "true")),
		opiWidget("Rounded Rectangle", 0, 0, 5, 5, background(255, 255, 255), prop("transparent", "TRUE")),
		opiWidget("Ellipse", 0, 0, 5, 5, background(253, 0, 0)),
	)

	objs := objects(res.Lines())
	require.Len(t, objs, 3)
	assert.NotContains(t, objs[0], "fill")
	assert.Contains(t, objs[0], "fillColor index 0")
	assert.NotContains(t, objs[1], "fill")

	// transparent absent means opaque
	assert.Equal(t, "object activeCircleClass", objs[2][1])
	fill := indexOf(objs[2], "fill")
	require.GreaterOrEqual(t, fill, 0)
	assert.Equal(t, "fillColor index 20", objs[2][fill+1])
}

func TestTranslate_ProgressBar(t *testing.T) {
	t.Run("vertical by default", func(t *testing.T) {
		res := translate(t, Options{},
			opiWidget("Progress Bar", 5, 6, 20, 100,
				prop("pv_name", "SYS:LEVEL"), prop("minimum", "0"), prop("maximum", "100")),
		)
		require.Empty(t, res.Diagnostics)
		objs := objects(res.Lines())
		require.Len(t, objs, 1)
		bar := objs[0]
		assert.Equal(t, "object activeBarClass", bar[1])
		assert.Contains(t, bar, `indicatorPv "SYS:LEVEL"`)
		assert.Contains(t, bar, `min "0"`)
		assert.Contains(t, bar, `max "100"`)
		assert.Contains(t, bar, "indicatorColor index 0")

		end := indexOf(bar, "endObjectProperties")
		assert.Equal(t, `orientation "vertical"`, bar[end-1])
	})

	t.Run("horizontal tank", func(t *testing.T) {
		res := translate(t, Options{},
			opiWidget("Tank", 5, 6, 100, 20,
				prop("pv_name", "SYS:LEVEL"), prop("minimum", "0"), prop("maximum", "1"),
				prop("horizontal", "true"), background(0, 0, 0)),
		)
		objs := objects(res.Lines())
		require.Len(t, objs, 1)
		assert.NotContains(t, objs[0], `orientation "vertical"`)
	})

	t.Run("background is not the indicator colour", func(t *testing.T) {
		rules := models.DefaultPanelRules()
		rules.BarColor = 15
		res := translate(t, Options{Rules: rules},
			opiWidget("Progress Bar", 5, 6, 20, 100,
				prop("pv_name", "SYS:LEVEL"), prop("minimum", "0"), prop("maximum", "100"),
				background(253, 0, 0)),
		)
		objs := objects(res.Lines())
		require.Len(t, objs, 1)
		assert.Contains(t, objs[0], "indicatorColor index 15")
		assert.NotContains(t, objs[0], "indicatorColor index 20")
	})

	t.Run("missing limits", func(t *testing.T) {
		res := translate(t, Options{},
			opiWidget("Progress Bar", 5, 6, 20, 100, prop("pv_name", "SYS:LEVEL"), background(0, 0, 0)),
		)
		assert.Zero(t, res.Rendered())
		require.Len(t, res.Diagnostics, 1)
		assert.Equal(t, models.KindPropertyNotFound, res.Diagnostics[0].Kind)
		assert.Contains(t, res.Diagnostics[0].Reason, "minimum")
	})
}

func TestTranslate_BarOverride(t *testing.T) {
	rules := models.DefaultPanelRules()
	rules.BarOverrides = []models.BarOverride{
		{Match: "N2", Color: 15, Width: 15, Height: 125},
		{Match: "He", Color: 54, Width: 44, Height: 125, Center: true},
	}
	res := translate(t, Options{Rules: rules},
		// the override colour replaces the default bar colour
		opiWidget("Progress Bar", 100, 10, 20, 80,
			prop("pv_name", "CRYO:He:LEVEL"), prop("minimum", "0"), prop("maximum", "100")),
		opiWidget("Progress Bar", 5, 10, 20, 80,
			prop("pv_name", "CRYO:N2:LEVEL"), prop("minimum", "0"), prop("maximum", "100")),
	)
	require.Empty(t, res.Diagnostics)

	objs := objects(res.Lines())
	require.Len(t, objs, 2)
	he := objs[0]
	assert.Contains(t, he, "x 88")
	assert.Contains(t, he, "w 44")
	assert.Contains(t, he, "h 125")
	assert.Contains(t, he, "indicatorColor index 54")

	n2 := objs[1]
	assert.Contains(t, n2, "x 5")
	assert.Contains(t, n2, "w 15")
	assert.Contains(t, n2, "indicatorColor index 15")
}

func TestApplyBarOverride(t *testing.T) {
	r := applyBarOverride(models.Rect{X: 4, Y: 1, Width: 10, Height: 10},
		models.BarOverride{Width: 44, Center: true})
	assert.Equal(t, models.Rect{X: 0, Y: 1, Width: 44, Height: 10}, r)

	r = applyBarOverride(models.Rect{X: 4, Y: 1, Width: 10, Height: 10}, models.BarOverride{Height: 3})
	assert.Equal(t, models.Rect{X: 4, Y: 1, Width: 10, Height: 3}, r)
}

func TestRender_UnboundToken(t *testing.T) {
	_, err := render(edl.KindBar, models.Rect{Width: 1, Height: 1}, values(edl.TokPV, "A:B"))
	assert.ErrorContains(t, err, "unbound")
	assert.ErrorContains(t, err, edl.TokMin)

	_, err = render(edl.KindArc, models.Rect{Width: 1, Height: 1}, edl.Bindings{})
	assert.NoError(t, err)
}

func TestTranslate_Polyline(t *testing.T) {
	res := translate(t, Options{},
		opiWidget("Polyline", 1, 2, 10, 10, prop("line_width", "3"), background(0, 0, 0),
			"<points>",
			`  <point x="1" y="2" />`,
			`  <point x="3" y="4" />`,
			`  <point x="5" y="6" />`,
			"</points>"),
	)
	objs := objects(res.Lines())
	require.Len(t, objs, 1)
	line := objs[0]
	assert.Equal(t, "object activeLineClass", line[1])
	assert.Contains(t, line, "lineColor index 14")
	assert.Contains(t, line, "lineWidth 3")
	assert.Contains(t, line, "numPoints 3")

	x := indexOf(line, "xPoints {")
	require.GreaterOrEqual(t, x, 0)
	assert.Equal(t, []string{"  0 1", "  1 3", "  2 5", "}"}, line[x+1:x+5])
	y := indexOf(line, "yPoints {")
	require.GreaterOrEqual(t, y, 0)
	assert.Equal(t, []string{"  0 2", "  1 4", "  2 6", "}"}, line[y+1:y+5])
}

func TestTranslate_Image(t *testing.T) {
	res := translate(t, Options{ImagePathPrefix: "img/"},
		opiWidget("Image", 0, 0, 10, 10, prop("image_file", "logo.PNG")),
		opiWidget("Image", 0, 0, 10, 10, prop("image_file", "anim.gif")),
		opiWidget("Image", 0, 0, 10, 10, prop("image_file", "photo.bmp")),
	)
	objs := objects(res.Lines())
	require.Len(t, objs, 2)
	assert.Equal(t, "object activePngClass", objs[0][1])
	assert.Contains(t, objs[0], `file "img/logo.PNG"`)
	assert.Equal(t, "object cfcf6c8a_dbeb_11d2_8a97_00104b8742df", objs[1][1])
	assert.Contains(t, objs[1], `file "img/anim.gif"`)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.KindUnsupportedImageFormat, res.Diagnostics[0].Kind)
	assert.Equal(t, "Image", res.Diagnostics[0].WidgetType)
	assert.Empty(t, res.Skipped)
}

func TestTranslate_TextWidgets(t *testing.T) {
	res := translate(t, Options{},
		opiWidget("Label", 1, 1, 50, 20, prop("text", "Pressure")),
		opiWidget("Text Update", 1, 1, 50, 20, prop("pv_name", "A")),
		opiWidget("Text Monitor", 1, 1, 50, 20, prop("pv_name", "B")),
		opiWidget("Text Input", 1, 1, 50, 20, prop("pv_name", "C")),
		opiWidget("Arc", 1, 1, 50, 20),
	)
	objs := objects(res.Lines())
	require.Len(t, objs, 5)

	assert.Equal(t, "object activeXTextClass", objs[0][1])
	assert.Contains(t, objs[0], `  "Pressure"`)
	assert.Contains(t, objs[0], "x 1", "no nudge outside layout mode")

	assert.Equal(t, "object TextupdateClass", objs[1][1])
	assert.Contains(t, objs[1], `controlPv "A"`)

	assert.Equal(t, "object activeXTextDspClass:noedit", objs[2][1])
	assert.Contains(t, objs[2], `objType "monitors"`)

	assert.Equal(t, "object activeXTextDspClass", objs[3][1])
	assert.Contains(t, objs[3], `controlPv "C"`)
	assert.Contains(t, objs[3], `objType "controls"`)

	assert.Equal(t, "object activeArcClass", objs[4][1])
}

func TestTranslate_UnsupportedTypes(t *testing.T) {
	res := translate(t, Options{},
		opiWidget("Action Button", 0, 0, 1, 1),
		opiWidget("Label", 0, 0, 1, 1, prop("text", "x")),
		opiWidget("Meter", 0, 0, 1, 1),
		opiWidget("Action Button", 0, 0, 1, 1),
	)
	assert.Equal(t, []string{"Action Button", "Meter"}, res.Skipped)
	assert.Equal(t, 4, res.Widgets)
	assert.Equal(t, 1, res.Rendered())
	for _, d := range res.Diagnostics {
		assert.Equal(t, models.KindUnsupportedWidgetType, d.Kind)
	}
}

func TestTranslate_OnlyUnsupportedTypesGivesHeaderOnly(t *testing.T) {
	res := translate(t, Options{},
		opiWidget("Action Button", 0, 0, 1, 1),
		opiWidget("Meter", 0, 0, 1, 1),
	)
	assert.Equal(t, []string{"Action Button", "Meter"}, res.Skipped)
	assert.Zero(t, res.Rendered())
	assert.Empty(t, objects(res.Lines()))
	assert.Equal(t, edl.NewDocument(800, 600).Lines(), res.Lines())
}

func TestTranslate_WidgetFailuresDoNotAbortDocument(t *testing.T) {
	res := translate(t, Options{},
		opiWidget("Rectangle", 0, 0, 5, 5), // no background colour
		opiWidget("Label", 0, 0, -5, 5, prop("text", "neg")),
		"  <widget typeId=\"x\">\n    <text>untyped</text>\n  </widget>",
		opiWidget("Polyline", 0, 0, 5, 5, prop("line_width", "1"), background(0, 0, 0),
			`<point x="a" y="2" />`),
		opiWidget("Label", 0, 0, 5, 5, prop("text", "ok")),
	)

	assert.Equal(t, 5, res.Widgets)
	assert.Equal(t, 1, res.Rendered())
	require.Len(t, res.Diagnostics, 4)

	kinds := make([]models.DiagnosticKind, len(res.Diagnostics))
	for i, d := range res.Diagnostics {
		kinds[i] = d.Kind
	}
	assert.Equal(t, []models.DiagnosticKind{
		models.KindPropertyNotFound,
		models.KindInvalidGeometry,
		models.KindPropertyNotFound,
		models.KindInvalidGeometry,
	}, kinds)

	// widgets start after the xml, display, width and height lines
	assert.Equal(t, 5, res.Diagnostics[0].Line)
	assert.Equal(t, "Rectangle", res.Diagnostics[0].WidgetType)
	assert.Empty(t, res.Diagnostics[2].WidgetType)
}

func TestTranslate_MalformedDocument(t *testing.T) {
	doc := opiDisplay(t,
		opiWidget("Label", 0, 0, 5, 5, prop("text", "ok")),
		"  <widget typeId=\"x\">",
	)
	res, err := New(Options{}).Translate(doc)
	assert.ErrorIs(t, err, parser.ErrMalformedDocument)
	assert.Equal(t, models.KindMalformedDocument, Classify(err))
	assert.Nil(t, res)
}

func TestTranslate_MissingDisplaySize(t *testing.T) {
	doc, err := parser.NewDocument("bare.opi", []byte("<display>\n</display>"))
	require.NoError(t, err)

	_, err = New(Options{}).Translate(doc)
	assert.ErrorIs(t, err, parser.ErrPropertyNotFound)
	assert.ErrorContains(t, err, "bare.opi")
}

func TestTranslateWidget(t *testing.T) {
	doc := opiDisplay(t, opiWidget("Text Update", 3, 4, 5, 6, prop("pv_name", "PV")))
	records, err := parser.Segment(doc)
	require.NoError(t, err)
	require.Len(t, records, 1)

	tr := New(Options{Layout: true})
	lines, err := tr.TranslateWidget(records[0])
	require.NoError(t, err)
	assert.Contains(t, lines, "w 5", "layout sizing applies to whole documents only")

	records[0].Lines[1] = "<widget_type>Gauge</widget_type>"
	_, err = tr.TranslateWidget(records[0])
	assert.ErrorIs(t, err, ErrUnsupportedWidgetType)
}
