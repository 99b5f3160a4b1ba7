package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tmlemon/opi2edl/internal/edl"
	"github.com/tmlemon/opi2edl/internal/storage"
)

// Sink receives each rendered document. It returns where the document went
// and, for stores, the ID it was given.
type Sink interface {
	Write(ctx context.Context, name string, doc *edl.Document) (location, id string, err error)
}

// DirSink writes documents into a directory, replacing existing files.
type DirSink struct {
	Dir string
}

func (s DirSink) Write(_ context.Context, name string, doc *edl.Document) (string, string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return "", "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, "", nil
}

// StoreSink saves documents into a file store.
type StoreSink struct {
	Store storage.Store
}

func (s StoreSink) Write(_ context.Context, name string, doc *edl.Document) (string, string, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return "", "", err
	}
	info, err := s.Store.Save(name, &buf)
	if err != nil {
		return "", "", err
	}
	if err := s.Store.SetStatus(info.ID, "converted"); err != nil {
		return "", "", err
	}
	return info.Name, info.ID, nil
}

var (
	_ Sink = DirSink{}
	_ Sink = StoreSink{}
)
