// Package quickfix models proposed code-action edits and decides whether a
// proposal can be safely applied to a live workspace.
//
// The merge engine is deliberately conservative: a proposal is either
// reduced to plain text edits against unchanged documents, or declined
// entirely. It never partially applies a fix and never attempts a
// three-way merge with concurrent edits.
package quickfix

// Span is a line/column range in a document. Lines are 1-based, columns
// are 0-based byte offsets within the line. The end position is exclusive.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Edit replaces the text covered by Span with NewText.
type Edit struct {
	Span    Span
	NewText string
}

// Fix is a named, ordered set of edits proposed for one diagnostic.
type Fix struct {
	// Title is the human-readable description shown to the user.
	Title string

	// Edits are applied in order; they never overlap.
	Edits []Edit
}
