package engine_test

import (
	"context"
	"testing"

	"github.com/yaklabco/rulekit/pkg/engine"
	"github.com/yaklabco/rulekit/pkg/issue"
	"github.com/yaklabco/rulekit/pkg/provider"
	"github.com/yaklabco/rulekit/pkg/quickfix"
	"github.com/yaklabco/rulekit/pkg/resolve"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// fakeAnalyzer reports fixed diagnostics for every analyzed document.
type fakeAnalyzer struct {
	language rules.Language
	syntax   []issue.Diagnostic
	semantic []issue.Diagnostic
}

func (f *fakeAnalyzer) Language() rules.Language { return f.language }

func (f *fakeAnalyzer) AnalyzeSyntax(_ context.Context, doc *quickfix.Document) ([]issue.Diagnostic, error) {
	return withPath(f.syntax, doc.Path), nil
}

func (f *fakeAnalyzer) AnalyzeSemantics(_ context.Context, doc *quickfix.Document) ([]issue.Diagnostic, error) {
	return withPath(f.semantic, doc.Path), nil
}

func withPath(diags []issue.Diagnostic, path string) []issue.Diagnostic {
	out := make([]issue.Diagnostic, len(diags))
	copy(out, diags)
	for i := range out {
		out[i].FilePath = path
	}
	return out
}

func newTestEngine(t *testing.T, analyzers ...engine.Analyzer) *engine.Engine {
	t.Helper()

	bundled, err := provider.NewBundled(nil)
	if err != nil {
		t.Fatalf("NewBundled returned error: %v", err)
	}
	return engine.New(provider.NewComposite(bundled), resolve.NewProvider(nil), nil, analyzers...)
}

func cSolution(text string) *quickfix.Solution {
	return &quickfix.Solution{
		Projects: map[string]*quickfix.Project{
			"app": {
				Name: "app",
				Documents: map[quickfix.DocumentID]*quickfix.Document{
					"main": {ID: "main", Path: "main.c", Text: text, Version: 1},
				},
			},
		},
	}
}

func TestAnalyzeSolution_DeduplicatesAcrossPasses(t *testing.T) {
	t.Parallel()

	// The semantic pass rediscovers the syntax pass's diagnostic; it must
	// appear once.
	shared := issue.Diagnostic{
		NativeID: "S1764",
		Message:  "identical expressions",
		Span:     issue.Span{StartLine: 2, StartOffset: 4, EndLine: 2, EndOffset: 10},
	}
	other := issue.Diagnostic{
		NativeID: "S107",
		Message:  "too many parameters",
		Span:     issue.Span{StartLine: 5, StartOffset: 0, EndLine: 5, EndOffset: 3},
	}

	analyzer := &fakeAnalyzer{
		language: rules.LangC,
		syntax:   []issue.Diagnostic{shared},
		semantic: []issue.Diagnostic{shared, other},
	}

	result, err := newTestEngine(t, analyzer).AnalyzeSolution(
		context.Background(), cSolution("#include <stdio.h>\nint main(void) { return 0; }\n"), nil)
	if err != nil {
		t.Fatalf("AnalyzeSolution returned error: %v", err)
	}

	if len(result.Projects) != 1 {
		t.Fatalf("expected 1 project result, got %d", len(result.Projects))
	}
	project := result.Projects[0]
	if len(project.Issues) != 2 {
		t.Fatalf("expected 2 unique issues, got %d: %v", len(project.Issues), project.Issues)
	}
	if project.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", project.Duplicates)
	}
	if project.Issues[0].RuleID != "c:S1764" {
		t.Errorf("first issue = %q, want c:S1764 (first-inserted wins)", project.Issues[0].RuleID)
	}
}

func TestAnalyzeSolution_FiltersInactiveRules(t *testing.T) {
	t.Parallel()

	// c:S103 is bundled but inactive by default.
	analyzer := &fakeAnalyzer{
		language: rules.LangC,
		syntax: []issue.Diagnostic{
			{NativeID: "S103", Message: "line too long"},
			{NativeID: "S1135", Message: "TODO found"},
		},
	}

	result, err := newTestEngine(t, analyzer).AnalyzeSolution(
		context.Background(), cSolution("int main(void) { return 0; } /* TODO */\n"), nil)
	if err != nil {
		t.Fatalf("AnalyzeSolution returned error: %v", err)
	}

	issues := result.Projects[0].Issues
	if len(issues) != 1 || issues[0].RuleID != "c:S1135" {
		t.Errorf("issues = %v, want only c:S1135", issues)
	}
}

func TestAnalyzeSolution_SettingsActivateRules(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{
		language: rules.LangC,
		syntax:   []issue.Diagnostic{{NativeID: "S103", Message: "line too long"}},
	}

	settings := rules.NewRulesSettings()
	settings.Rules["c:S103"] = rules.RuleConfig{Level: rules.LevelOn}

	result, err := newTestEngine(t, analyzer).AnalyzeSolution(
		context.Background(), cSolution("int main(void) { return 0; }\n"), settings)
	if err != nil {
		t.Fatalf("AnalyzeSolution returned error: %v", err)
	}

	issues := result.Projects[0].Issues
	if len(issues) != 1 || issues[0].RuleID != "c:S103" {
		t.Errorf("issues = %v, want c:S103 activated by settings", issues)
	}
}

func TestAnalyzeSolution_SkipsLanguagesWithoutAnalyzer(t *testing.T) {
	t.Parallel()

	// No analyzer registered at all: every document is skipped.
	result, err := newTestEngine(t).AnalyzeSolution(
		context.Background(), cSolution("int main(void) { return 0; }\n"), nil)
	if err != nil {
		t.Fatalf("AnalyzeSolution returned error: %v", err)
	}
	if result.TotalIssues() != 0 {
		t.Errorf("TotalIssues = %d, want 0", result.TotalIssues())
	}
}

func TestAnalyzeSolution_Cancellation(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{
		language: rules.LangC,
		syntax:   []issue.Diagnostic{{NativeID: "S1135"}},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestEngine(t, analyzer).AnalyzeSolution(ctx, cSolution("int main(void) {}\n"), nil); err == nil {
		t.Error("cancelled context should surface an error")
	}
}

func TestAnalyzeSolution_RecordsEffectiveSeverities(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{
		language: rules.LangC,
		syntax:   []issue.Diagnostic{{NativeID: "S1135", Message: "TODO found"}},
	}

	settings := rules.NewRulesSettings()
	settings.Rules["c:S1135"] = rules.RuleConfig{Severity: rules.SeverityCritical}

	result, err := newTestEngine(t, analyzer).AnalyzeSolution(
		context.Background(), cSolution("/* TODO */\n"), settings)
	if err != nil {
		t.Fatalf("AnalyzeSolution returned error: %v", err)
	}

	severities := result.Projects[0].Severities
	if got := severities["c:S1135"]; got != rules.SeverityCritical {
		t.Errorf("severity for c:S1135 = %q, want %q (overridden)", got, rules.SeverityCritical)
	}
	if got := severities["c:S107"]; got != rules.SeverityMajor {
		t.Errorf("severity for c:S107 = %q, want default %q", got, rules.SeverityMajor)
	}
}
