package edl

import (
	"bufio"
	"io"

	"github.com/tmlemon/opi2edl/internal/models"
)

// Document is a rendered EDL file: the screen header followed by every
// object in the order appended.
type Document struct {
	header  []string
	objects [][]string
}

// NewDocument starts a document for a display of the given size.
func NewDocument(width, height int) *Document {
	return &Document{
		header: PlaceGeometry(screenHeader, models.Rect{Width: width, Height: height}),
	}
}

// Append adds one rendered object. The slice is kept as is.
func (d *Document) Append(object []string) {
	d.objects = append(d.objects, object)
}

// Objects returns the number of rendered objects.
func (d *Document) Objects() int {
	return len(d.objects)
}

// Lines returns the full document, header first.
func (d *Document) Lines() []string {
	n := len(d.header)
	for _, o := range d.objects {
		n += len(o)
	}
	lines := make([]string, 0, n)
	lines = append(lines, d.header...)
	for _, o := range d.objects {
		lines = append(lines, o...)
	}
	return lines
}

// WriteTo writes every line followed by a newline.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range d.Lines() {
		m, err := bw.WriteString(line)
		n += int64(m)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}
