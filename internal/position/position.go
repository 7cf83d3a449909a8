// Package position provides source position tracking for plc. Positions
// are attached to tokens and diagnostics and used to render source
// excerpts next to error messages.
package position

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Position represents a single point in source code
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number, 0 when unknown
}

// IsValid returns true if the position carries a line number
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns a string representation of the position
func (p Position) String() string {
	loc := fmt.Sprintf("%d", p.Line)
	if p.Column > 0 {
		loc = fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if p.Filename != "" {
		return filepath.Base(p.Filename) + ":" + loc
	}
	return loc
}

// Before returns true if this position comes before other
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// SourceFile holds the lines of one source file.
type SourceFile struct {
	Filename string
	lines    []string
}

// NewSourceFile creates a SourceFile from file content.
func NewSourceFile(filename, content string) *SourceFile {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return &SourceFile{Filename: filename, lines: strings.Split(content, "\n")}
}

// LineCount returns the number of lines in the file.
func (sf *SourceFile) LineCount() int { return len(sf.lines) }

// GetLine returns the 1-based line, or "" when out of range.
func (sf *SourceFile) GetLine(lineNum int) string {
	if lineNum < 1 || lineNum > len(sf.lines) {
		return ""
	}
	return sf.lines[lineNum-1]
}

// Excerpt renders the line containing pos with a caret under its column:
//
//	   3 | x := "bad!";
//	     |      ^
//
// It returns "" for positions outside the file.
func (sf *SourceFile) Excerpt(pos Position) string {
	if !pos.IsValid() || pos.Line > len(sf.lines) {
		return ""
	}
	line := strings.ReplaceAll(sf.GetLine(pos.Line), "\t", " ")
	gutter := fmt.Sprintf("%4d | ", pos.Line)

	var b strings.Builder
	b.WriteString(gutter)
	b.WriteString(line)
	b.WriteByte('\n')
	if pos.Column > 0 {
		b.WriteString(strings.Repeat(" ", len(gutter)-2))
		b.WriteString("| ")
		b.WriteString(strings.Repeat(" ", pos.Column-1))
		b.WriteByte('^')
		b.WriteByte('\n')
	}
	return b.String()
}
