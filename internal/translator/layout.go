package translator

import (
	"github.com/tmlemon/opi2edl/internal/edl"
	"github.com/tmlemon/opi2edl/internal/models"
)

type preparedWidget struct {
	widget *Widget
	rule   RenderFunc
}

type unitPair struct {
	label     int
	indicator int
}

// layout renders a panel of widgets with each units label attached to its
// nearest indicator. Unpaired widgets are emitted first in document order,
// then the pairs in label order. An indicator shared by several labels is
// emitted once, before its first label.
func (t *Translator) layout(res *Result, panel []preparedWidget) {
	var labels, indicators []int
	for i, p := range panel {
		switch {
		case t.isUnitLabel(p.widget):
			labels = append(labels, i)
		case t.isIndicator(p.widget):
			indicators = append(indicators, i)
		}
	}

	pairs := pairUnits(panel, labels, indicators)
	paired := make(map[int]bool, 2*len(pairs))
	for _, p := range pairs {
		paired[p.label] = true
		paired[p.indicator] = true
	}

	for i, p := range panel {
		if !paired[i] {
			t.emit(res, p.widget, p.rule)
		}
	}

	placed := make(map[int]*models.Rect, len(pairs))
	for _, p := range pairs {
		ir, seen := placed[p.indicator]
		if !seen {
			ir = t.emitIndicator(res, panel[p.indicator].widget)
			placed[p.indicator] = ir
		}
		if ir == nil {
			t.emit(res, panel[p.label].widget, panel[p.label].rule)
			continue
		}
		t.emitUnitLabel(res, panel[p.label].widget, *ir)
	}
}

func (t *Translator) isUnitLabel(w *Widget) bool {
	return w.Type == "Label" && t.opts.Rules.IsUnit(w.DisplayItem())
}

func (t *Translator) isIndicator(w *Widget) bool {
	return w.Type == "Text Update" && w.OptionalProp("pv_name", "") != ""
}

// pairUnits gives each label the closest indicator. Distance runs from the
// label origin to the indicator's right edge; ties keep the earlier
// indicator. Several labels may share one indicator.
func pairUnits(panel []preparedWidget, labels, indicators []int) []unitPair {
	var pairs []unitPair
	for _, li := range labels {
		lr := panel[li].widget.Geometry
		best, bestDist := -1, 0
		for _, ii := range indicators {
			ir := panel[ii].widget.Geometry
			dx := lr.X - (ir.X + ir.Width)
			dy := lr.Y - ir.Y
			if d := dx*dx + dy*dy; best < 0 || d < bestDist {
				best, bestDist = ii, d
			}
		}
		if best < 0 {
			continue
		}
		pairs = append(pairs, unitPair{label: li, indicator: best})
	}
	return pairs
}

// emitIndicator renders the indicator at the standard size and returns its
// box, or nil when it could not be rendered.
func (t *Translator) emitIndicator(res *Result, indicator *Widget) *models.Rect {
	rules := t.opts.Rules
	ir := models.Rect{
		X:      indicator.Geometry.X,
		Y:      indicator.Geometry.Y,
		Width:  rules.IndicatorWidth,
		Height: rules.IndicatorHeight,
	}
	lines, err := renderPV(indicator, edl.KindTextUpdate, ir)
	if err != nil {
		res.reject(indicator, err)
		return nil
	}
	res.Document.Append(lines)
	return &ir
}

// emitUnitLabel places the label just right of the indicator box ir.
func (t *Translator) emitUnitLabel(res *Result, label *Widget, ir models.Rect) {
	rules := t.opts.Rules
	lr := models.Rect{
		X:      ir.X + ir.Width + rules.LabelGap,
		Y:      label.Geometry.Y + rules.LabelNudge,
		Width:  label.Geometry.Width,
		Height: label.Geometry.Height,
	}
	lines, err := render(edl.KindStaticText, lr, values(edl.TokText, label.DisplayItem()))
	if err != nil {
		res.reject(label, err)
		return
	}
	res.Document.Append(lines)
}
