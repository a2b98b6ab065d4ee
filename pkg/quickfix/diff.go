package quickfix

import "strings"

// ComputeEdits diffs two document texts and returns the minimal line-based
// edits that turn original into changed. Returns nil when the texts are
// equal.
//
// The diff trims the longest common prefix and suffix of lines and emits a
// single edit replacing the middle region. An edit's span always starts at
// column 0; a span ending at (line N+1, column 0) for an N-line document
// denotes end of file.
func ComputeEdits(original, changed string) []Edit {
	if original == changed {
		return nil
	}

	origLines := splitLines(original)
	changedLines := splitLines(changed)

	prefix := commonPrefix(origLines, changedLines)
	suffix := commonSuffix(origLines, changedLines, prefix)

	replacement := strings.Join(changedLines[prefix:len(changedLines)-suffix], "")

	return []Edit{{
		Span: Span{
			StartLine:   prefix + 1,
			StartColumn: 0,
			EndLine:     len(origLines) - suffix + 1,
			EndColumn:   0,
		},
		NewText: replacement,
	}}
}

// ComputePairEdits runs ComputeEdits over document pairs produced by
// ChangedDocuments, preserving pair order.
func ComputePairEdits(pairs []DocumentPair) []Edit {
	var edits []Edit
	for _, pair := range pairs {
		edits = append(edits, ComputeEdits(pair.Original.Text, pair.Changed.Text)...)
	}
	return edits
}

// splitLines splits text into lines, each keeping its terminator. The
// final element has no terminator when the text does not end in a newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	// SplitAfter leaves a trailing empty element when text ends in "\n".
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func commonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func commonSuffix(a, b []string, prefix int) int {
	n := 0
	for n < len(a)-prefix && n < len(b)-prefix && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}
