package diag

import (
	"fmt"
	"strings"
)

// Position converts a byte offset into a 1-indexed line and column.
// Offsets past the end of source are clamped to the last position.
func Position(source []byte, offset int64) (line, column int) {
	if offset > int64(len(source)) {
		offset = int64(len(source))
	}
	line, column = 1, 1
	for i := int64(0); i < offset; i++ {
		if source[i] == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

// ErrorContext generates source context around a byte offset.
// It includes 2 lines before and 2 lines after the error line, with line numbers
// and a pointer (^) indicating the error column. Overlong lines (project.json
// is frequently written on a single line) are cut to a window around the column.
//
// Example output:
//
//	  1 | {
//	> 2 |   "targets": [1 2]
//	    |                 ^
//	  3 | }
func ErrorContext(source []byte, offset int64) string {
	if len(source) == 0 || offset < 0 {
		return ""
	}
	line, column := Position(source, offset)
	return GenerateErrorContext(string(source), line, column)
}

const contextWindow = 60

// GenerateErrorContext renders the lines surrounding line with a caret under column.
func GenerateErrorContext(source string, line, column int) string {
	if source == "" || line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return ""
	}

	start := line - 3
	if start < 0 {
		start = 0
	}
	end := line + 2
	if end > len(lines) {
		end = len(lines)
	}

	lineNumWidth := len(fmt.Sprintf("%d", end))

	var buf strings.Builder
	for i := start; i < end; i++ {
		lineNum := i + 1
		content, shift := clip(lines[i], column)

		if lineNum == line {
			buf.WriteString(fmt.Sprintf("> %*d | %s\n", lineNumWidth, lineNum, content))
			pointerIndent := 2 + lineNumWidth + 3
			col := column - shift
			if col < 1 {
				col = 1
			}
			buf.WriteString(fmt.Sprintf("%s%s^\n", strings.Repeat(" ", pointerIndent), strings.Repeat(" ", col-1)))
		} else {
			buf.WriteString(fmt.Sprintf("  %*d | %s\n", lineNumWidth, lineNum, content))
		}
	}

	return buf.String()
}

// clip returns the part of s shown around column and how many bytes were cut
// from the front.
func clip(s string, column int) (string, int) {
	if len(s) <= 2*contextWindow {
		return s, 0
	}
	from := column - 1 - contextWindow
	if from < 0 {
		from = 0
	}
	to := from + 2*contextWindow
	if to > len(s) {
		to = len(s)
	}
	return s[from:to], from
}
