package edl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	doc := NewDocument(800, 600)
	assert.Zero(t, doc.Objects())

	header := doc.Lines()
	assert.Equal(t, "4 0 1", header[0])
	assert.Contains(t, header, "w 800")
	assert.Contains(t, header, "h 600")
	assert.Contains(t, header, "x 0")
	assert.Equal(t, "endScreenProperties", header[len(header)-2])

	doc.Append([]string{"# (A)", "endObjectProperties", ""})
	doc.Append([]string{"# (B)"})
	assert.Equal(t, 2, doc.Objects())

	lines := doc.Lines()
	require.Len(t, lines, len(header)+4)
	assert.Equal(t, []string{"# (A)", "endObjectProperties", "", "# (B)"}, lines[len(header):])

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, strings.Join(lines, "\n")+"\n", buf.String())
}
