package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/rulekit/pkg/engine"
	"github.com/yaklabco/rulekit/pkg/issue"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version  string        `json:"version"`
	Projects []JSONProject `json:"projects"`
	Summary  JSONSummary   `json:"summary"`
}

// JSONProject represents a single project's results.
type JSONProject struct {
	Name       string      `json:"name"`
	Issues     []JSONIssue `json:"issues"`
	Duplicates int         `json:"duplicates,omitempty"`
}

// JSONIssue represents a single normalized issue.
type JSONIssue struct {
	RuleID    string         `json:"ruleId"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	FilePath  string         `json:"filePath"`
	Range     JSONRange      `json:"range"`
	Secondary []JSONLocation `json:"secondaryLocations,omitempty"`
	Fixes     []string       `json:"fixes,omitempty"`
}

// JSONLocation is a secondary location attached to an issue.
type JSONLocation struct {
	Message  string    `json:"message"`
	FilePath string    `json:"filePath"`
	Range    JSONRange `json:"range"`
}

// JSONRange is an issue range with 1-based lines and 0-based offsets.
type JSONRange struct {
	StartLine   int `json:"startLine"`
	StartOffset int `json:"startOffset"`
	EndLine     int `json:"endLine"`
	EndOffset   int `json:"endOffset"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	ProjectsAnalyzed int            `json:"projectsAnalyzed"`
	TotalIssues      int            `json:"totalIssues"`
	Duplicates       int            `json:"duplicates"`
	BySeverity       map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *engine.SolutionResult) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func buildJSONOutput(result *engine.SolutionResult) *JSONOutput {
	output := &JSONOutput{
		Version:  "1.0.0",
		Projects: make([]JSONProject, 0),
		Summary: JSONSummary{
			BySeverity: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	for _, project := range result.Projects {
		jsonProject := JSONProject{
			Name:       project.Name,
			Issues:     make([]JSONIssue, 0, len(project.Issues)),
			Duplicates: project.Duplicates,
		}

		for _, iss := range project.Issues {
			severity := severityOrDefault(project.Severities[iss.RuleID])

			jsonIssue := JSONIssue{
				RuleID:   iss.RuleID,
				Severity: string(severity),
				Message:  iss.Primary.Message,
				FilePath: iss.Primary.FilePath,
				Range:    jsonRange(iss.Primary.Range),
			}

			for _, flow := range iss.Flows {
				for _, loc := range flow.Locations {
					jsonIssue.Secondary = append(jsonIssue.Secondary, JSONLocation{
						Message:  loc.Message,
						FilePath: loc.FilePath,
						Range:    jsonRange(loc.Range),
					})
				}
			}

			for _, fix := range iss.Fixes {
				jsonIssue.Fixes = append(jsonIssue.Fixes, fix.Title)
			}

			jsonProject.Issues = append(jsonProject.Issues, jsonIssue)
			output.Summary.TotalIssues++
			output.Summary.BySeverity[string(severity)]++
		}

		output.Projects = append(output.Projects, jsonProject)
		output.Summary.ProjectsAnalyzed++
		output.Summary.Duplicates += project.Duplicates
	}

	return output
}

func jsonRange(r issue.TextRange) JSONRange {
	return JSONRange{
		StartLine:   r.StartLine,
		StartOffset: r.StartOffset,
		EndLine:     r.EndLine,
		EndOffset:   r.EndOffset,
	}
}
