package translator

import "github.com/tmlemon/opi2edl/internal/parser"

// colorMatch is the palette index chosen for a widget's background colour
// together with the widget's transparency flag.
type colorMatch struct {
	Index       int
	Distance    float64
	Transparent bool
}

// matchColor resolves the widget background to the nearest palette entry.
// Only call it for widget types that carry a background colour: a missing
// colour is reported, never defaulted.
func (t *Translator) matchColor(w *Widget) (colorMatch, error) {
	rgb, err := parser.BackgroundColor(w.Record)
	if err != nil {
		return colorMatch{}, err
	}
	idx, dist := t.opts.Palette.Nearest(rgb)
	return colorMatch{
		Index:       idx,
		Distance:    dist,
		Transparent: parser.Transparent(w.Record),
	}, nil
}
