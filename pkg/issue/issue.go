// Package issue normalizes raw analyzer diagnostics into issue records and
// deduplicates them across analysis passes.
package issue

import (
	"github.com/yaklabco/rulekit/pkg/quickfix"
)

// Span is a raw diagnostic's text range as reported by an analysis engine:
// lines and offsets are both 0-based.
type Span struct {
	StartLine   int
	StartOffset int
	EndLine     int
	EndOffset   int
}

// AdditionalLocation is a secondary location attached to a raw diagnostic.
type AdditionalLocation struct {
	// Title is the engine-provided message for this location; empty when
	// the engine supplied none.
	Title    string
	FilePath string
	Span     Span
}

// Diagnostic is a raw finding as produced by an analysis engine, before
// normalization. Spans are 0-based.
type Diagnostic struct {
	// NativeID is the rule identifier without a repository prefix
	// (e.g. "S1234").
	NativeID string

	Message  string
	FilePath string
	Span     Span

	// AdditionalLocations are secondary locations in the order the engine
	// reported them.
	AdditionalLocations []AdditionalLocation
}

// TextRange is a normalized issue range: lines are 1-based, offsets stay
// 0-based. Downstream consumers rely on exactly this asymmetry.
type TextRange struct {
	StartLine   int
	StartOffset int
	EndLine     int
	EndOffset   int
}

// Location is one position an issue refers to.
type Location struct {
	Message  string
	FilePath string
	Range    TextRange
}

// Flow is an ordered group of secondary locations illustrating a path
// relevant to an issue.
type Flow struct {
	Locations []Location
}

// Issue is a normalized, immutable issue record.
type Issue struct {
	// RuleID is the composite "repo:partial" rule identifier.
	RuleID string

	// Primary is the issue's main location.
	Primary Location

	// Flows holds secondary-location groups; empty when the diagnostic had
	// no secondary locations.
	Flows []Flow

	// Fixes are the quick fixes proposed for this issue.
	Fixes []quickfix.Fix
}
