package issue

import (
	"fmt"

	"github.com/yaklabco/rulekit/pkg/quickfix"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// Convert normalizes a raw diagnostic into an Issue for the given language.
//
// The rule id is composed from the language's repository key and the
// diagnostic's native id. Both span lines are converted from 0-based to
// 1-based; offsets are left 0-based. Secondary locations become exactly one
// flow, in engine order; a location without an engine-provided title gets a
// synthesized "Secondary location N" message. Quick fixes are attached
// as-is; computing them is the caller's concern.
func Convert(d Diagnostic, fixes []quickfix.Fix, language rules.Language) Issue {
	out := Issue{
		RuleID: rules.CompositeKey(language.RepoKey, d.NativeID),
		Primary: Location{
			Message:  d.Message,
			FilePath: d.FilePath,
			Range:    normalizeSpan(d.Span),
		},
		Fixes: fixes,
	}

	if len(d.AdditionalLocations) == 0 {
		return out
	}

	flow := Flow{Locations: make([]Location, 0, len(d.AdditionalLocations))}
	for i, loc := range d.AdditionalLocations {
		title := loc.Title
		if title == "" {
			title = fmt.Sprintf("Secondary location %d", i+1)
		}
		flow.Locations = append(flow.Locations, Location{
			Message:  title,
			FilePath: loc.FilePath,
			Range:    normalizeSpan(loc.Span),
		})
	}
	out.Flows = []Flow{flow}

	return out
}

// normalizeSpan converts a 0-based engine span to the normalized range:
// lines become 1-based, offsets stay 0-based.
func normalizeSpan(s Span) TextRange {
	return TextRange{
		StartLine:   s.StartLine + 1,
		StartOffset: s.StartOffset,
		EndLine:     s.EndLine + 1,
		EndOffset:   s.EndOffset,
	}
}
