// Package engine orchestrates analysis over a solution: it resolves the
// effective rule set per language, runs the language analyzers, and
// normalizes and deduplicates their diagnostics.
//
// Projects are processed strictly sequentially, and within a project each
// document runs its syntax pass before its semantic pass. Throughput is
// traded for a simple correctness argument; the dedup comparer keeps the
// result independent of pass ordering anyway.
package engine

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/pkg/issue"
	"github.com/yaklabco/rulekit/pkg/langdetect"
	"github.com/yaklabco/rulekit/pkg/provider"
	"github.com/yaklabco/rulekit/pkg/quickfix"
	"github.com/yaklabco/rulekit/pkg/resolve"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// Analyzer produces raw diagnostics for documents of one language.
type Analyzer interface {
	// Language returns the language this analyzer handles.
	Language() rules.Language

	// AnalyzeSyntax runs the syntax-only pass over a document.
	AnalyzeSyntax(ctx context.Context, doc *quickfix.Document) ([]issue.Diagnostic, error)

	// AnalyzeSemantics runs the semantic pass over a document. It may
	// rediscover diagnostics already reported by the syntax pass.
	AnalyzeSemantics(ctx context.Context, doc *quickfix.Document) ([]issue.Diagnostic, error)
}

// ProjectResult holds the deduplicated issues of one project.
type ProjectResult struct {
	Name string

	// Issues in first-reported order.
	Issues []issue.Issue

	// Severities maps composite rule ids to the effective severity that was
	// in force when the project was analyzed.
	Severities map[string]rules.Severity

	// Duplicates counts diagnostics dropped by deduplication.
	Duplicates int
}

// SolutionResult aggregates per-project results in project order.
type SolutionResult struct {
	Projects []ProjectResult
}

// TotalIssues returns the issue count across all projects.
func (r *SolutionResult) TotalIssues() int {
	total := 0
	for _, p := range r.Projects {
		total += len(p.Issues)
	}
	return total
}

// Engine runs analyzers over solutions.
type Engine struct {
	defaults  *provider.Composite
	effective *resolve.Provider
	analyzers map[string]Analyzer
	logger    *log.Logger
}

// New creates an engine. Analyzers are indexed by their language key; a
// later analyzer for the same language replaces an earlier one.
func New(defaults *provider.Composite, effective *resolve.Provider, logger *log.Logger, analyzers ...Analyzer) *Engine {
	if logger == nil {
		logger = logging.Default()
	}
	byKey := make(map[string]Analyzer, len(analyzers))
	for _, a := range analyzers {
		byKey[a.Language().Key] = a
	}
	return &Engine{
		defaults:  defaults,
		effective: effective,
		analyzers: byKey,
		logger:    logger,
	}
}

// AnalyzeSolution analyzes every document of every project. Documents in
// languages without an analyzer are skipped. settings is the current user
// settings snapshot; nil means no overrides.
func (e *Engine) AnalyzeSolution(ctx context.Context, solution *quickfix.Solution, settings *rules.RulesSettings) (*SolutionResult, error) {
	if solution == nil {
		return nil, fmt.Errorf("analyze solution: solution is nil")
	}

	result := &SolutionResult{}
	for _, name := range solution.ProjectNames() {
		projectResult, err := e.analyzeProject(ctx, solution.Projects[name], settings)
		if err != nil {
			return nil, err
		}
		result.Projects = append(result.Projects, *projectResult)
	}
	return result, nil
}

func (e *Engine) analyzeProject(ctx context.Context, project *quickfix.Project, settings *rules.RulesSettings) (*ProjectResult, error) {
	set := issue.NewSet(e.logger)
	severities := make(map[string]rules.Severity)

	ids := slices.Collect(maps.Keys(project.Documents))
	slices.Sort(ids)

	for _, id := range ids {
		doc := project.Documents[id]

		lang, ok := langdetect.Detect(doc.Path, []byte(doc.Text))
		if !ok {
			continue
		}
		analyzer, ok := e.analyzers[lang.Key]
		if !ok {
			continue
		}

		effective, err := e.effectiveConfigFor(lang, settings)
		if err != nil {
			return nil, err
		}
		for partial, rule := range effective.Rules {
			severities[rules.CompositeKey(lang.RepoKey, partial)] = rule.DefaultSeverity
		}

		if err := e.runPasses(ctx, analyzer, doc, lang, effective, set); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("analyzed project",
		logging.FieldProject, project.Name,
		logging.FieldIssuesTotal, set.Len(),
		logging.FieldDuplicates, set.Dropped())

	return &ProjectResult{
		Name:       project.Name,
		Issues:     set.Issues(),
		Severities: severities,
		Duplicates: set.Dropped(),
	}, nil
}

func (e *Engine) effectiveConfigFor(lang rules.Language, settings *rules.RulesSettings) (*rules.Config, error) {
	defaults, err := e.defaults.RulesConfiguration(lang.Key)
	if err != nil {
		return nil, err
	}
	return e.effective.EffectiveConfig(lang.Key, defaults, settings)
}

// runPasses executes the syntax then semantic analysis commands for one
// document and feeds the surviving diagnostics into the dedup set.
func (e *Engine) runPasses(ctx context.Context, analyzer Analyzer, doc *quickfix.Document, lang rules.Language, effective *rules.Config, set *issue.Set) error {
	passes := []func(context.Context, *quickfix.Document) ([]issue.Diagnostic, error){
		analyzer.AnalyzeSyntax,
		analyzer.AnalyzeSemantics,
	}

	for _, pass := range passes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("analysis cancelled: %w", err)
		}

		diagnostics, err := pass(ctx, doc)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", doc.Path, err)
		}

		for _, d := range diagnostics {
			if !effective.IsActive(d.NativeID) {
				continue
			}
			set.Add(issue.Convert(d, nil, lang))
		}
	}
	return nil
}
