package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPropertyNotFound is returned when a widget lacks a required property.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyError names the missing property.
type PropertyError struct {
	Name string
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("property <%s> not found", e.Name)
}

// Is lets errors.Is match ErrPropertyNotFound.
func (e *PropertyError) Is(target error) bool {
	return target == ErrPropertyNotFound
}

// Property returns the value of the first <name>...</name> pair in lines.
// The value must sit on the line holding the opening tag; when the closing
// tag is missing from that line the rest of the line is returned.
func Property(lines []string, name string) (string, error) {
	open := "<" + name + ">"
	closing := "</" + name + ">"
	for _, line := range lines {
		idx := strings.Index(line, open)
		if idx < 0 {
			continue
		}
		rest := line[idx+len(open):]
		if end := strings.Index(rest, closing); end >= 0 {
			return rest[:end], nil
		}
		return strings.TrimRight(rest, " \t"), nil
	}
	return "", &PropertyError{Name: name}
}
