// Package edl renders EDM display files: the colour palette, the object
// template table and the output document.
package edl

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tmlemon/opi2edl/internal/models"
)

// Placeholder tokens used by the templates.
const (
	TokX         = "{x}"
	TokY         = "{y}"
	TokWidth     = "{w}"
	TokHeight    = "{h}"
	TokColor     = "{color}"
	TokText      = "{text}"
	TokPV        = "{pv}"
	TokFile      = "{file}"
	TokMin       = "{min}"
	TokMax       = "{max}"
	TokLineWidth = "{lineWidth}"
	TokNumPoints = "{numPoints}"

	// Block tokens occupy a whole line and expand to zero or more lines.
	TokXPoints     = "{xPoints}"
	TokYPoints     = "{yPoints}"
	TokFill        = "{fill}"
	TokOrientation = "{orientation}"
)

var allTokens = []string{
	TokX, TokY, TokWidth, TokHeight, TokColor, TokText, TokPV, TokFile,
	TokMin, TokMax, TokLineWidth, TokNumPoints,
	TokXPoints, TokYPoints, TokFill, TokOrientation,
}

// Template is an ordered list of output lines containing placeholder tokens.
type Template []string

// Tokens lists the placeholder tokens appearing in t, in first-seen order.
func (t Template) Tokens() []string {
	var found []string
	for _, line := range t {
		for _, tok := range allTokens {
			if strings.Contains(line, tok) && !slices.Contains(found, tok) {
				found = append(found, tok)
			}
		}
	}
	return found
}

// Bindings supplies values for Instantiate.
type Bindings struct {
	// Values replaces inline tokens anywhere in a line.
	Values map[string]string
	// Blocks replaces a line consisting only of the token with the given
	// lines. A bound nil or empty block removes the line.
	Blocks map[string][]string
}

// Unbound lists the tokens of t that b has neither a value nor a block for.
func (b Bindings) Unbound(t Template) []string {
	var missing []string
	for _, tok := range t.Tokens() {
		_, isValue := b.Values[tok]
		_, isBlock := b.Blocks[tok]
		if !isValue && !isBlock {
			missing = append(missing, tok)
		}
	}
	return missing
}

// Instantiate substitutes b into t. Distinct tokens are replaced in a single
// pass, so substituted text is never re-scanned. Unbound tokens are kept.
func Instantiate(t Template, b Bindings) []string {
	var replacer *strings.Replacer
	if len(b.Values) > 0 {
		pairs := make([]string, 0, 2*len(b.Values))
		for tok, val := range b.Values {
			pairs = append(pairs, tok, val)
		}
		replacer = strings.NewReplacer(pairs...)
	}

	out := make([]string, 0, len(t))
	for _, line := range t {
		if block, ok := b.Blocks[strings.TrimSpace(line)]; ok {
			out = append(out, block...)
			continue
		}
		if replacer != nil {
			line = replacer.Replace(line)
		}
		out = append(out, line)
	}
	return out
}

// PlaceGeometry substitutes the bounding box into every position and size
// token of t.
func PlaceGeometry(t Template, r models.Rect) Template {
	return Instantiate(t, Bindings{Values: map[string]string{
		TokX:      strconv.Itoa(r.X),
		TokY:      strconv.Itoa(r.Y),
		TokWidth:  strconv.Itoa(r.Width),
		TokHeight: strconv.Itoa(r.Height),
	}})
}

// PointList is a polyline vertex list rendered in the indexed form used by
// the xPoints and yPoints blocks.
type PointList struct {
	X     []string
	Y     []string
	Count int
}

// NewPointList renders points as "  <index> <value>" lines.
func NewPointList(points []models.Point) PointList {
	pl := PointList{
		X:     make([]string, len(points)),
		Y:     make([]string, len(points)),
		Count: len(points),
	}
	for i, p := range points {
		pl.X[i] = fmt.Sprintf("  %d %s", i, p.X)
		pl.Y[i] = fmt.Sprintf("  %d %s", i, p.Y)
	}
	return pl
}
