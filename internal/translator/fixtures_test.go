package translator

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmlemon/opi2edl/internal/parser"
)

func opiWidget(typ string, x, y, w, h int, extra ...string) string {
	lines := []string{
		`  <widget typeId="org.csstudio.opibuilder.widgets.` + strings.ReplaceAll(typ, " ", "") + `" version="1.0.0">`,
		"    <widget_type>" + typ + "</widget_type>",
		fmt.Sprintf("    <x>%d</x>", x),
		fmt.Sprintf("    <y>%d</y>", y),
		fmt.Sprintf("    <width>%d</width>", w),
		fmt.Sprintf("    <height>%d</height>", h),
	}
	for _, e := range extra {
		lines = append(lines, "    "+e)
	}
	lines = append(lines, "  </widget>")
	return strings.Join(lines, "\n")
}

func prop(name, value string) string {
	return "<" + name + ">" + value + "</" + name + ">"
}

func background(r, g, b int) string {
	return fmt.Sprintf("<background_color>\n      <color red=\"%d\" green=\"%d\" blue=\"%d\" />\n    </background_color>", r, g, b)
}

func opiDisplay(t *testing.T, widgets ...string) *parser.Document {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	sb.WriteString("<display typeId=\"org.csstudio.opibuilder.Display\" version=\"1.0.0\">\n")
	sb.WriteString("  <width>800</width>\n")
	sb.WriteString("  <height>600</height>\n")
	for _, w := range widgets {
		sb.WriteString(w)
		sb.WriteString("\n")
	}
	sb.WriteString("</display>\n")

	doc, err := parser.NewDocument("test.opi", []byte(sb.String()))
	require.NoError(t, err)
	return doc
}

// objects splits rendered EDL lines into objects, dropping the header.
func objects(lines []string) [][]string {
	var out [][]string
	for _, line := range lines {
		if strings.HasPrefix(line, "# (") {
			out = append(out, nil)
		}
		if len(out) > 0 {
			out[len(out)-1] = append(out[len(out)-1], line)
		}
	}
	return out
}

func indexOf(lines []string, s string) int {
	for i, l := range lines {
		if l == s {
			return i
		}
	}
	return -1
}
