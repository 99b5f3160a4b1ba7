package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmlemon/opi2edl/internal/models"
)

// ErrInvalidGeometry is returned for non-numeric or negative coordinates.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Geometry reads the x, y, width and height properties of rec.
func Geometry(rec models.WidgetRecord) (models.Rect, error) {
	var raw [4]string
	for i, name := range [...]string{"x", "y", "width", "height"} {
		v, err := Property(rec.Lines, name)
		if err != nil {
			return models.Rect{}, err
		}
		raw[i] = v
	}
	return ParseGeometry(raw[0], raw[1], raw[2], raw[3])
}

// ParseGeometry converts the four bounding-box strings to a Rect.
func ParseGeometry(x, y, width, height string) (models.Rect, error) {
	var vals [4]int
	for i, s := range [...]string{x, y, width, height} {
		n, err := parseCoord(s)
		if err != nil {
			return models.Rect{}, err
		}
		vals[i] = n
	}
	return models.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

func parseCoord(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidGeometry, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrInvalidGeometry, n)
	}
	return n, nil
}
