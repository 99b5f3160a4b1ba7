package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tmlemon/opi2edl/internal/models"
)

var colorAttrRegex = regexp.MustCompile(`\b(red|green|blue)="(\d+)"`)

// BackgroundColor reads the RGB value nested in the widget's
// <background_color> block.
func BackgroundColor(rec models.WidgetRecord) (models.RGB, error) {
	const open, closing = "<background_color>", "</background_color>"

	inBlock := false
	for _, line := range rec.Lines {
		if !inBlock {
			idx := strings.Index(line, open)
			if idx < 0 {
				continue
			}
			inBlock = true
			line = line[idx+len(open):]
		}
		if rgb, ok := parseColorLine(line); ok {
			return rgb, nil
		}
		if strings.Contains(line, closing) {
			break
		}
	}
	return models.RGB{}, &PropertyError{Name: "background_color"}
}

// Transparent reports the widget's transparency flag; absent means false.
func Transparent(rec models.WidgetRecord) bool {
	v, err := Property(rec.Lines, "transparent")
	return err == nil && strings.EqualFold(strings.TrimSpace(v), "true")
}

func parseColorLine(line string) (models.RGB, bool) {
	if !strings.Contains(line, "<color") {
		return models.RGB{}, false
	}
	var rgb models.RGB
	seen := 0
	for _, m := range colorAttrRegex.FindAllStringSubmatch(line, -1) {
		n, err := strconv.ParseUint(m[2], 10, 8)
		if err != nil {
			return models.RGB{}, false
		}
		switch m[1] {
		case "red":
			rgb.R = uint8(n)
		case "green":
			rgb.G = uint8(n)
		case "blue":
			rgb.B = uint8(n)
		}
		seen++
	}
	return rgb, seen == 3
}
