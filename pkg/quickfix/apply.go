package quickfix

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError describes an edit whose span does not fit the document.
type ValidationError struct {
	Edit    Edit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit at %d:%d-%d:%d: %s",
		e.Edit.Span.StartLine, e.Edit.Span.StartColumn,
		e.Edit.Span.EndLine, e.Edit.Span.EndColumn, e.Message)
}

// ConflictError describes two overlapping edits.
type ConflictError struct {
	First  Edit
	Second Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits at %d:%d and %d:%d",
		e.First.Span.StartLine, e.First.Span.StartColumn,
		e.Second.Span.StartLine, e.Second.Span.StartColumn)
}

// SortEdits orders edits by start position, then end position.
func SortEdits(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool {
		a, b := edits[i].Span, edits[j].Span
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		if a.StartColumn != b.StartColumn {
			return a.StartColumn < b.StartColumn
		}
		if a.EndLine != b.EndLine {
			return a.EndLine < b.EndLine
		}
		return a.EndColumn < b.EndColumn
	})
}

// ApplyEdits applies edits to text and returns the result. Edits are
// sorted, bounds-checked, and rejected on overlap before anything is
// spliced, so a failed application leaves no partial result.
func ApplyEdits(text string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	starts := lineStartOffsets(text)

	type offsetEdit struct {
		start, end int
		newText    string
		source     Edit
	}

	resolved := make([]offsetEdit, 0, len(sorted))
	for _, edit := range sorted {
		start, err := offsetFor(text, starts, edit.Span.StartLine, edit.Span.StartColumn, edit)
		if err != nil {
			return "", err
		}
		end, err := offsetFor(text, starts, edit.Span.EndLine, edit.Span.EndColumn, edit)
		if err != nil {
			return "", err
		}
		if end < start {
			return "", &ValidationError{Edit: edit, Message: "end position is before start position"}
		}
		resolved = append(resolved, offsetEdit{start: start, end: end, newText: edit.NewText, source: edit})
	}

	for i := 1; i < len(resolved); i++ {
		if resolved[i].start < resolved[i-1].end {
			return "", &ConflictError{First: resolved[i-1].source, Second: resolved[i].source}
		}
	}

	var out strings.Builder
	cursor := 0
	for _, edit := range resolved {
		out.WriteString(text[cursor:edit.start])
		out.WriteString(edit.newText)
		cursor = edit.end
	}
	out.WriteString(text[cursor:])

	return out.String(), nil
}

// lineStartOffsets returns the byte offset of the start of each line.
func lineStartOffsets(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetFor converts a 1-based line / 0-based column position to a byte
// offset. Line len(starts)+1 with column 0 denotes end of text, so a span
// may end just past the last line.
func offsetFor(text string, starts []int, line, column int, edit Edit) (int, error) {
	if line < 1 {
		return 0, &ValidationError{Edit: edit, Message: "line is before start of file"}
	}
	if line == len(starts)+1 && column == 0 {
		return len(text), nil
	}
	if line > len(starts) {
		return 0, &ValidationError{Edit: edit, Message: "line is past end of file"}
	}

	offset := starts[line-1] + column
	lineEnd := len(text)
	if line < len(starts) {
		lineEnd = starts[line]
	}
	if column < 0 || offset > lineEnd {
		return 0, &ValidationError{Edit: edit, Message: "column is outside the line"}
	}
	return offset, nil
}
