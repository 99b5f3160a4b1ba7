// Package batch discovers display files and converts them concurrently.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the source extensions accepted when none are given.
var DefaultExtensions = []string{".opi"}

// Discovery lists the inputs found at a path.
type Discovery struct {
	Files   []string // matching files, sorted
	Skipped []string // regular files with another extension
}

// Discover resolves path to the display files it names. A file is taken as
// is when its extension matches; a directory is listed without recursing.
// Extensions compare case-insensitively.
func Discover(path string, exts []string) (*Discovery, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("discovering %s: %w", path, err)
	}

	d := &Discovery{}
	if !fi.IsDir() {
		d.add(path, exts)
		return d, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		d.add(filepath.Join(path, e.Name()), exts)
	}
	slices.Sort(d.Files)
	return d, nil
}

func (d *Discovery) add(path string, exts []string) {
	if HasExtension(path, exts) {
		d.Files = append(d.Files, path)
	} else {
		d.Skipped = append(d.Skipped, path)
	}
}

// HasExtension reports whether name ends in one of exts, ignoring case.
func HasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(ext, e)
	})
}

// OutputName returns the EDL file name for an input path: the base name with
// its extension replaced by ".edl".
func OutputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".edl"
}
