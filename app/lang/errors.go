package lang

import (
	"fmt"
	"strings"
)

// ParseError reports why and where a line failed to parse.
type ParseError struct {
	Msg      string // set when the failure is not a simple expectation mismatch
	Expected string // what the grammar would have accepted
	Found    string // description of the offending token
	Pos      int    // byte offset in the input
	Line     int    // 1-based
	Column   int    // 1-based, counted in runes
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Reason())
}

// Reason returns the error text without the location.
func (e *ParseError) Reason() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}

// Caret renders the line of source containing the error with a marker
// under the offending column.
func (e *ParseError) Caret(source string) string {
	lines := strings.Split(source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return ""
	}
	line := strings.TrimRight(lines[e.Line-1], "\r")
	return line + "\n" + strings.Repeat(" ", e.Column-1) + "^"
}

func newParseError(input string, pos int) *ParseError {
	if pos > len(input) {
		pos = len(input)
	}
	line, col := positionOf(input, pos)
	return &ParseError{Pos: pos, Line: line, Column: col}
}

// positionOf converts a byte offset into a 1-based line and rune column.
func positionOf(input string, pos int) (line, col int) {
	line, col = 1, 1
	for _, r := range input[:pos] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
