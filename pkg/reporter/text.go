package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/rulekit/internal/ui/pretty"
	"github.com/yaklabco/rulekit/pkg/engine"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// TextReporter formats results as styled terminal output, grouped by
// project.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *engine.SolutionResult) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Projects) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No projects analyzed."))
		}
		return 0, nil
	}

	var total int
	for _, project := range result.Projects {
		if len(project.Issues) == 0 {
			continue
		}

		fmt.Fprintf(r.bw, "%s (%d issues)\n",
			r.styles.Bold.Render(project.Name), len(project.Issues))

		for _, iss := range project.Issues {
			sev := severityOrDefault(project.Severities[iss.RuleID])
			fmt.Fprint(r.bw, r.styles.FormatIssue(iss, sev))
			total++
		}

		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.formatSummary(result))
	}

	return total, nil
}

func (r *TextReporter) formatSummary(result *engine.SolutionResult) string {
	total := result.TotalIssues()
	duplicates := 0
	for _, p := range result.Projects {
		duplicates += p.Duplicates
	}

	if total == 0 {
		return r.styles.Success.Render("No issues found.") + "\n"
	}

	line := fmt.Sprintf("%d issues across %d projects", total, len(result.Projects))
	if duplicates > 0 {
		line += fmt.Sprintf(" (%d duplicates dropped)", duplicates)
	}
	return r.styles.Failure.Render(line) + "\n"
}

// severityOrDefault falls back to major when a rule's effective severity is
// unknown to the result.
func severityOrDefault(sev rules.Severity) rules.Severity {
	if sev == "" {
		return rules.SeverityMajor
	}
	return sev
}
