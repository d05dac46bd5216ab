package ci

import (
	"os"

	"github.com/pkg/errors"
)

// eof is returned by Source.Peek/PeekAt once the cursor has consumed
// the entire input.
const eof = rune(-1)

// Source is a byte-addressed view over one input file, with a movable
// rune cursor and the line/column index needed to produce Locations
// on demand.
type Source struct {
	Filename string

	runes []rune
	index *LineIndex

	cursor int
	line   int32
	column int32
}

// NewSource builds a Source from already-read bytes. Scanner tests
// construct Source values directly so they don't need a file on disk.
func NewSource(filename string, content []byte) *Source {
	return &Source{
		Filename: filename,
		runes:    []rune(string(content)),
		index:    NewLineIndex(filename, content),
		line:     1,
		column:   1,
	}
}

// LoadSource reads a file from disk into a Source.
func LoadSource(path string) (*Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read source file %q", path)
	}
	return NewSource(path, content), nil
}

// Location returns where the cursor currently sits.
func (s *Source) Location() Location {
	return Location{
		File:     s.Filename,
		Line:     s.line,
		Column:   s.column,
		Position: int32(s.cursor),
	}
}

// Peek returns the rune under the cursor without consuming it, or eof.
func (s *Source) Peek() rune {
	return s.PeekAt(0)
}

// PeekAt returns the rune n positions ahead of the cursor without
// consuming anything, or eof if that position is past the end.
func (s *Source) PeekAt(n int) rune {
	i := s.cursor + n
	if i < 0 || i >= len(s.runes) {
		return eof
	}
	return s.runes[i]
}

// Advance consumes and returns the rune under the cursor, tracking
// line/column as it goes.
func (s *Source) Advance() rune {
	c := s.Peek()
	if c == eof {
		return eof
	}
	s.cursor++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

// AtEOF reports whether the cursor has consumed the whole input.
func (s *Source) AtEOF() bool {
	return s.cursor >= len(s.runes)
}

// Slice returns the text between two cursor offsets.
func (s *Source) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.runes) {
		end = len(s.runes)
	}
	if start >= end {
		return ""
	}
	return string(s.runes[start:end])
}

// cursorPos exposes the raw cursor, used by the scanner to build Range values.
func (s *Source) cursorPos() int { return s.cursor }
