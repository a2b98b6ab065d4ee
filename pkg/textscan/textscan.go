// Package textscan implements a lightweight line-oriented analyzer. It
// covers the purely textual rules of a language's rule set: TODO tracking
// and line length. Deeper rules belong to external analyzer binaries; this
// analyzer exists so a plain rulekit install produces findings end to end.
package textscan

import (
	"context"
	"strconv"
	"strings"

	"github.com/yaklabco/rulekit/pkg/issue"
	"github.com/yaklabco/rulekit/pkg/quickfix"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// Rule ids this analyzer can produce.
const (
	ruleTodoTag    = "S1135"
	ruleLineLength = "S103"
)

// Parameter names read from the effective configuration.
const (
	paramMaxLineLength = "maximumLineLength"

	defaultMaxLineLength = 200
)

// Analyzer scans document text line by line. Diagnostics are emitted with
// 0-based spans; normalization to 1-based lines happens downstream.
type Analyzer struct {
	language      rules.Language
	maxLineLength int
}

// New creates a text analyzer for one language. cfg supplies rule
// parameters; a nil cfg or missing parameter falls back to defaults.
// Activation filtering is not this analyzer's concern.
func New(language rules.Language, cfg *rules.Config) *Analyzer {
	a := &Analyzer{
		language:      language,
		maxLineLength: defaultMaxLineLength,
	}
	if cfg != nil {
		if rule, ok := cfg.RuleByKey(ruleLineLength); ok {
			if raw, ok := rule.Parameters[paramMaxLineLength]; ok {
				if n, err := strconv.Atoi(raw); err == nil && n > 0 {
					a.maxLineLength = n
				}
			}
		}
	}
	return a
}

// Language implements engine.Analyzer.
func (a *Analyzer) Language() rules.Language {
	return a.language
}

// AnalyzeSyntax implements engine.Analyzer.
func (a *Analyzer) AnalyzeSyntax(ctx context.Context, doc *quickfix.Document) ([]issue.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var diagnostics []issue.Diagnostic
	for i, line := range strings.Split(doc.Text, "\n") {
		if col := strings.Index(line, "TODO"); col >= 0 {
			diagnostics = append(diagnostics, issue.Diagnostic{
				NativeID: ruleTodoTag,
				Message:  "Complete the task associated to this TODO comment.",
				FilePath: doc.Path,
				Span: issue.Span{
					StartLine:   i,
					StartOffset: col,
					EndLine:     i,
					EndOffset:   col + len("TODO"),
				},
			})
		}

		if len(line) > a.maxLineLength {
			diagnostics = append(diagnostics, issue.Diagnostic{
				NativeID: ruleLineLength,
				Message: "Split this " + strconv.Itoa(len(line)) +
					" characters long line (which is greater than " +
					strconv.Itoa(a.maxLineLength) + " authorized).",
				FilePath: doc.Path,
				Span: issue.Span{
					StartLine:   i,
					StartOffset: 0,
					EndLine:     i,
					EndOffset:   len(line),
				},
			})
		}
	}

	return diagnostics, nil
}

// AnalyzeSemantics implements engine.Analyzer. The textual rules need no
// semantic model, so this pass reports nothing.
func (a *Analyzer) AnalyzeSemantics(ctx context.Context, _ *quickfix.Document) ([]issue.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}
