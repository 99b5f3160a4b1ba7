package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tmlemon/opi2edl/internal/models"
)

// ErrMalformedDocument is returned when widget markers do not pair up.
var ErrMalformedDocument = errors.New("malformed document")

// Segmenter walks a document once and yields each top-level widget record.
// Widgets do not nest: a second opening marker before the close is an error.
//
//	seg := parser.NewSegmenter(doc)
//	for seg.Next() {
//		rec := seg.Record()
//	}
//	if err := seg.Err(); err != nil { ... }
type Segmenter struct {
	lines []string
	pos   int
	rec   models.WidgetRecord
	err   error
}

// NewSegmenter creates a segmenter positioned at the start of doc.
func NewSegmenter(doc *Document) *Segmenter {
	return &Segmenter{lines: doc.Lines}
}

// Next advances to the next widget record. It returns false at the end of
// the document or on the first structural error; check Err afterwards.
func (s *Segmenter) Next() bool {
	if s.err != nil {
		return false
	}

	open := -1
	for ; s.pos < len(s.lines); s.pos++ {
		line := s.lines[s.pos]
		hasOpen := strings.Contains(line, WidgetOpenMarker)
		hasClose := strings.Contains(line, WidgetCloseMarker)

		switch {
		case hasOpen && open >= 0:
			s.err = fmt.Errorf("%w: line %d: widget opened before widget at line %d was closed",
				ErrMalformedDocument, s.pos+1, open+1)
			return false
		case hasOpen:
			open = s.pos
			if !hasClose {
				continue
			}
			fallthrough
		case hasClose && open >= 0:
			s.rec = models.WidgetRecord{Lines: s.lines[open : s.pos+1], Start: open}
			s.pos++
			return true
		case hasClose:
			s.err = fmt.Errorf("%w: line %d: widget closed without being opened",
				ErrMalformedDocument, s.pos+1)
			return false
		}
	}

	if open >= 0 {
		s.err = fmt.Errorf("%w: line %d: widget never closed", ErrMalformedDocument, open+1)
	}
	return false
}

// Record returns the record found by the last successful Next.
func (s *Segmenter) Record() models.WidgetRecord {
	return s.rec
}

// Err returns the structural error that stopped the scan, if any.
func (s *Segmenter) Err() error {
	return s.err
}

// Segment collects every record in doc. Nothing is returned on error.
func Segment(doc *Document) ([]models.WidgetRecord, error) {
	var records []models.WidgetRecord
	seg := NewSegmenter(doc)
	for seg.Next() {
		records = append(records, seg.Record())
	}
	if err := seg.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
