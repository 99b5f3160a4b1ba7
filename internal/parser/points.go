package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tmlemon/opi2edl/internal/models"
)

const pointMarker = `<point x="`

var pointRegex = regexp.MustCompile(`<point x="([^"]*)" y="([^"]*)"`)

// Points returns the polyline vertices of rec in document order.
// Coordinates must be integers; they are returned as written.
func Points(rec models.WidgetRecord) ([]models.Point, error) {
	var points []models.Point
	for i, line := range rec.Lines {
		if !strings.Contains(line, pointMarker) {
			continue
		}
		m := pointRegex.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%w: line %d: unreadable point %q",
				ErrInvalidGeometry, rec.Start+i+1, strings.TrimSpace(line))
		}
		for _, v := range m[1:] {
			if _, err := strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("%w: line %d: point coordinate %q is not an integer",
					ErrInvalidGeometry, rec.Start+i+1, v)
			}
		}
		points = append(points, models.Point{X: m[1], Y: m[2]})
	}
	return points, nil
}
