package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Markers delimiting a widget record in an OPI document.
const (
	WidgetOpenMarker  = "<widget typeId="
	WidgetCloseMarker = "</widget>"
)

// maxLineSize bounds a single source line. OPI files embed scripts and
// rule expressions on one line, so the scanner default is too small.
const maxLineSize = 4 * 1024 * 1024

// Document is one source display file split into lines. It is never
// modified after loading.
type Document struct {
	Name  string
	Lines []string
}

// ReadDocument loads a document from disk.
func ReadDocument(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseDocument(path, file)
}

// ParseDocument reads all lines from r. Line terminators are dropped.
func ParseDocument(name string, r io.Reader) (*Document, error) {
	lines := make([]string, 0, 256)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return &Document{Name: name, Lines: lines}, nil
}

// NewDocument builds a document from in-memory content.
func NewDocument(name string, content []byte) (*Document, error) {
	return ParseDocument(name, bytes.NewReader(content))
}

// DisplaySize returns the display-level width and height, read from the
// lines outside every widget record.
func (d *Document) DisplaySize() (width, height string, err error) {
	outside := make([]string, 0, 32)
	inWidget := false
	for _, line := range d.Lines {
		switch {
		case strings.Contains(line, WidgetOpenMarker):
			inWidget = !strings.Contains(line, WidgetCloseMarker)
		case inWidget && strings.Contains(line, WidgetCloseMarker):
			inWidget = false
		case !inWidget:
			outside = append(outside, line)
		}
	}

	if width, err = Property(outside, "width"); err != nil {
		return "", "", err
	}
	if height, err = Property(outside, "height"); err != nil {
		return "", "", err
	}
	return width, height, nil
}
