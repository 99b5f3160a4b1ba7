package translator

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/tmlemon/opi2edl/internal/edl"
	"github.com/tmlemon/opi2edl/internal/models"
)

// render places the geometry into the template for kind and binds the rest.
func render(kind edl.ObjectKind, r models.Rect, b edl.Bindings) ([]string, error) {
	tpl, ok := edl.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("no template for %s", kind)
	}
	lines := edl.PlaceGeometry(tpl.Lines, r)
	if missing := b.Unbound(lines); len(missing) > 0 {
		return nil, fmt.Errorf("%s template: unbound %s", kind, strings.Join(missing, ", "))
	}
	return edl.Instantiate(lines, b), nil
}

func values(kv ...string) edl.Bindings {
	b := edl.Bindings{Values: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		b.Values[kv[i]] = kv[i+1]
	}
	return b
}

func renderLabel(t *Translator, w *Widget) ([]string, error) {
	text, err := w.Prop("text")
	if err != nil {
		return nil, err
	}
	r := w.Geometry
	if t.opts.Layout {
		r.X += t.opts.Rules.LabelNudge
		r.Y += t.opts.Rules.LabelNudge
	}
	return render(edl.KindStaticText, r, values(edl.TokText, text))
}

func renderPolyline(t *Translator, w *Widget) ([]string, error) {
	c, err := t.matchColor(w)
	if err != nil {
		return nil, err
	}
	lineWidth, err := w.Prop("line_width")
	if err != nil {
		return nil, err
	}
	points, err := w.Points()
	if err != nil {
		return nil, err
	}
	pl := edl.NewPointList(points)

	b := values(
		edl.TokColor, strconv.Itoa(c.Index),
		edl.TokLineWidth, lineWidth,
		edl.TokNumPoints, strconv.Itoa(pl.Count),
	)
	b.Blocks = map[string][]string{
		edl.TokXPoints: pl.X,
		edl.TokYPoints: pl.Y,
	}
	return render(edl.KindLine, w.Geometry, b)
}

func renderEllipse(t *Translator, w *Widget) ([]string, error) {
	return renderFilled(t, w, edl.KindCircle)
}

func renderRectangle(t *Translator, w *Widget) ([]string, error) {
	return renderFilled(t, w, edl.KindRectangle)
}

// renderFilled emits the fill directive only for opaque shapes.
func renderFilled(t *Translator, w *Widget, kind edl.ObjectKind) ([]string, error) {
	c, err := t.matchColor(w)
	if err != nil {
		return nil, err
	}
	b := values(edl.TokColor, strconv.Itoa(c.Index))
	var fill []string
	if !c.Transparent {
		fill = []string{edl.FillDirective}
	}
	b.Blocks = map[string][]string{edl.TokFill: fill}
	return render(kind, w.Geometry, b)
}

func renderArc(_ *Translator, w *Widget) ([]string, error) {
	return render(edl.KindArc, w.Geometry, edl.Bindings{})
}

func renderImage(t *Translator, w *Widget) ([]string, error) {
	file, err := w.Prop("image_file")
	if err != nil {
		return nil, err
	}
	var kind edl.ObjectKind
	switch ext := strings.ToLower(path.Ext(file)); ext {
	case ".png":
		kind = edl.KindPNG
	case ".gif":
		kind = edl.KindGIF
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedImageFormat, file)
	}
	return render(kind, w.Geometry, values(edl.TokFile, t.opts.ImagePathPrefix+file))
}

func renderBar(t *Translator, w *Widget) ([]string, error) {
	pv, err := w.Prop("pv_name")
	if err != nil {
		return nil, err
	}
	minimum, err := w.Prop("minimum")
	if err != nil {
		return nil, err
	}
	maximum, err := w.Prop("maximum")
	if err != nil {
		return nil, err
	}

	// The OPI background is the trough colour, so bars take the fixed
	// indicator colour unless an override names one.
	r := w.Geometry
	color := t.opts.Rules.BarColor
	if o, ok := t.opts.Rules.FindBarOverride(pv); ok {
		color = o.Color
		r = applyBarOverride(r, o)
	}

	b := values(
		edl.TokColor, strconv.Itoa(color),
		edl.TokPV, pv,
		edl.TokMin, minimum,
		edl.TokMax, maximum,
	)
	var orientation []string
	if !strings.EqualFold(w.OptionalProp("horizontal", "false"), "true") {
		orientation = []string{edl.VerticalDirective}
	}
	b.Blocks = map[string][]string{edl.TokOrientation: orientation}
	return render(edl.KindBar, r, b)
}

func applyBarOverride(r models.Rect, o models.BarOverride) models.Rect {
	if o.Width > 0 {
		if o.Center {
			r.X = max(r.X+r.Width/2-o.Width/2, 0)
		}
		r.Width = o.Width
	}
	if o.Height > 0 {
		r.Height = o.Height
	}
	return r
}

func renderTextUpdate(_ *Translator, w *Widget) ([]string, error) {
	return renderPV(w, edl.KindTextUpdate, w.Geometry)
}

func renderTextMonitor(_ *Translator, w *Widget) ([]string, error) {
	return renderPV(w, edl.KindTextMonitor, w.Geometry)
}

func renderTextInput(_ *Translator, w *Widget) ([]string, error) {
	return renderPV(w, edl.KindTextControl, w.Geometry)
}

func renderPV(w *Widget, kind edl.ObjectKind, r models.Rect) ([]string, error) {
	pv, err := w.Prop("pv_name")
	if err != nil {
		return nil, err
	}
	return render(kind, r, values(edl.TokPV, pv))
}
