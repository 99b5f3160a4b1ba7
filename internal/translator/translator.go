// Package translator converts segmented OPI widget records into EDL objects.
package translator

import (
	"fmt"
	"slices"

	"github.com/tmlemon/opi2edl/internal/edl"
	"github.com/tmlemon/opi2edl/internal/models"
	"github.com/tmlemon/opi2edl/internal/parser"
)

// Options controls a Translator.
type Options struct {
	// Layout enables the units-label and indicator layout pass.
	Layout bool
	// ImagePathPrefix is prepended to every image file name.
	ImagePathPrefix string
	// Rules holds unit strings, indicator size and bar overrides.
	// Defaults to models.DefaultPanelRules.
	Rules *models.PanelRules
	// Palette defaults to edl.DefaultPalette.
	Palette edl.Palette
}

// Translator renders OPI documents as EDL documents. It performs no I/O and
// is safe for concurrent use once built.
type Translator struct {
	registry *Registry
	opts     Options
}

// New returns a Translator with every built-in widget rule registered.
func New(opts Options) *Translator {
	if opts.Rules == nil {
		opts.Rules = models.DefaultPanelRules()
	}
	if len(opts.Palette) == 0 {
		opts.Palette = edl.DefaultPalette
	}
	return &Translator{registry: NewRegistry(), opts: opts}
}

// Registry returns the dispatch table. Register additional rules before the
// Translator is shared between goroutines.
func (t *Translator) Registry() *Registry {
	return t.registry
}

// Result is the outcome of translating one document.
type Result struct {
	Document    *edl.Document
	Widgets     int
	Skipped     []string // unsupported widget types, first-seen order
	Diagnostics []models.Diagnostic
}

// Rendered returns the number of objects written to the document.
func (r *Result) Rendered() int {
	return r.Document.Objects()
}

// Lines returns the full EDL text, one entry per line.
func (r *Result) Lines() []string {
	return r.Document.Lines()
}

func (r *Result) reject(w *Widget, err error) {
	r.Diagnostics = append(r.Diagnostics, diagnostic(w.Record, w.Type, err))
	if Classify(err) == models.KindUnsupportedWidgetType && !slices.Contains(r.Skipped, w.Type) {
		r.Skipped = append(r.Skipped, w.Type)
	}
}

// Translate converts a whole document. An error is returned only for
// document-level failures; per-widget failures are reported as diagnostics.
func (t *Translator) Translate(doc *parser.Document) (*Result, error) {
	width, height, err := doc.DisplaySize()
	if err != nil {
		return nil, fmt.Errorf("%s: display size: %w", doc.Name, err)
	}
	size, err := parser.ParseGeometry("0", "0", width, height)
	if err != nil {
		return nil, fmt.Errorf("%s: display size: %w", doc.Name, err)
	}

	res := &Result{Document: edl.NewDocument(size.Width, size.Height)}
	var panel []preparedWidget

	seg := parser.NewSegmenter(doc)
	for seg.Next() {
		res.Widgets++
		w, rule, err := t.prepare(seg.Record())
		if err != nil {
			res.reject(w, err)
			continue
		}
		if t.opts.Layout {
			panel = append(panel, preparedWidget{widget: w, rule: rule})
			continue
		}
		t.emit(res, w, rule)
	}
	if err := seg.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Name, err)
	}

	if t.opts.Layout {
		t.layout(res, panel)
	}
	return res, nil
}

// TranslateWidget renders a single record outside of any document. Layout
// mode does not apply.
func (t *Translator) TranslateWidget(rec models.WidgetRecord) ([]string, error) {
	w, rule, err := t.prepare(rec)
	if err != nil {
		return nil, err
	}
	return rule(t, w)
}

// prepare resolves the widget type, its rule and its bounding box. The
// returned widget is never nil.
func (t *Translator) prepare(rec models.WidgetRecord) (*Widget, RenderFunc, error) {
	w := newWidget(rec)
	typ, err := w.Prop("widget_type")
	if err != nil {
		return w, nil, err
	}
	w.Type = typ

	rule, err := t.registry.FindRule(typ)
	if err != nil {
		return w, nil, err
	}
	w.Geometry, err = parser.Geometry(rec)
	if err != nil {
		return w, nil, err
	}
	return w, rule, nil
}

func (t *Translator) emit(res *Result, w *Widget, rule RenderFunc) {
	lines, err := rule(t, w)
	if err != nil {
		res.reject(w, err)
		return
	}
	res.Document.Append(lines)
}
