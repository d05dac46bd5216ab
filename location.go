package ci

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Location is a single point in a source file: a line/column pair
// plus the raw byte cursor it was derived from. It is cheap to copy
// and carried by every token, AST node, and symbol.
type Location struct {
	File     string
	Line     int32
	Column   int32
	Position int32
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Range is a half-open span between two Locations in the same file.
// It is constructed from a cursor and terminated by copying the
// cursor's current position into the end fields.
type Range struct {
	Filename    string
	StartLine   int32
	StartColumn int32
	StartPos    int32
	EndLine     int32
	EndColumn   int32
	EndPos      int32
}

// NewRange starts a Range at the given location; End* fields are left
// zero until Close is called.
func NewRange(start Location) Range {
	return Range{
		Filename:    start.File,
		StartLine:   start.Line,
		StartColumn: start.Column,
		StartPos:    start.Position,
	}
}

// Close terminates a Range by copying the cursor's current position
// into the End* fields.
func (r Range) Close(end Location) Range {
	r.EndLine = end.Line
	r.EndColumn = end.Column
	r.EndPos = end.Position
	return r
}

func (r Range) String() string {
	if r.StartLine == r.EndLine && r.StartColumn == r.EndColumn {
		return fmt.Sprintf("%s:%d:%d", r.Filename, r.StartLine, r.StartColumn)
	}
	return fmt.Sprintf("%s:%d:%d..%d:%d", r.Filename, r.StartLine, r.StartColumn, r.EndLine, r.EndColumn)
}

// Contains reports whether other is fully nested within r, byte-position-wise.
func (r Range) Contains(other Range) bool {
	return other.StartPos >= r.StartPos && other.EndPos <= r.EndPos
}

// LineIndex allows fast conversion from byte cursor offsets to
// line/column pairs. It stores the start byte offset of each line
// (0-based) and finds the containing line with a binary search.
// Construction is O(n) over the input and is intended to be cached
// per file.
type LineIndex struct {
	filename  string
	input     []byte
	lineStart []int
}

// NewLineIndex scans input once, recording where every line begins.
func NewLineIndex(filename string, input []byte) *LineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &LineIndex{filename: filename, input: input, lineStart: lineStart}
}

// LocationAt converts a byte cursor into a Location.
func (li *LineIndex) LocationAt(cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(li.input) {
		cursor = len(li.input)
	}

	lineIdx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := li.lineStart[lineIdx]
	col := int32(utf8.RuneCount(li.input[lineStart:cursor])) + 1

	return Location{
		File:     li.filename,
		Line:     int32(lineIdx + 1),
		Column:   col,
		Position: int32(cursor),
	}
}
