package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/rulekit/pkg/engine"
	"github.com/yaklabco/rulekit/pkg/issue"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes a rule.
type SARIFRule struct {
	ID            string           `json:"id"`
	DefaultConfig *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single issue.
type SARIFResult struct {
	RuleID           string          `json:"ruleId"`
	Level            string          `json:"level"`
	Message          SARIFMessage    `json:"message"`
	Locations        []SARIFLocation `json:"locations"`
	RelatedLocations []SARIFLocation `json:"relatedLocations,omitempty"`
}

// SARIFMessage contains a result or location message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
	Message          *SARIFMessage         `json:"message,omitempty"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Columns are the 0-based
// offsets shifted to SARIF's 1-based convention.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *engine.SolutionResult) (int, error) {
	output := buildSARIFOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func buildSARIFOutput(result *engine.SolutionResult) *SARIFOutput {
	output := &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{
				Driver: SARIFDriver{
					Name:           "rulekit",
					Version:        "0.1.0",
					InformationURI: "https://github.com/yaklabco/rulekit",
					Rules:          make([]SARIFRule, 0),
				},
			},
			Results: make([]SARIFResult, 0),
		}},
	}

	if result == nil {
		return output
	}

	rulesSeen := make(map[string]bool)

	for _, project := range result.Projects {
		for _, iss := range project.Issues {
			severity := severityOrDefault(project.Severities[iss.RuleID])

			if !rulesSeen[iss.RuleID] {
				output.Runs[0].Tool.Driver.Rules = append(output.Runs[0].Tool.Driver.Rules, SARIFRule{
					ID:            iss.RuleID,
					DefaultConfig: &SARIFRuleConfig{Level: severityToSARIFLevel(severity)},
				})
				rulesSeen[iss.RuleID] = true
			}

			sarifResult := SARIFResult{
				RuleID:    iss.RuleID,
				Level:     severityToSARIFLevel(severity),
				Message:   SARIFMessage{Text: iss.Primary.Message},
				Locations: []SARIFLocation{sarifLocation(iss.Primary, false)},
			}

			for _, flow := range iss.Flows {
				for _, loc := range flow.Locations {
					sarifResult.RelatedLocations = append(sarifResult.RelatedLocations, sarifLocation(loc, true))
				}
			}

			output.Runs[0].Results = append(output.Runs[0].Results, sarifResult)
		}
	}

	return output
}

func sarifLocation(loc issue.Location, withMessage bool) SARIFLocation {
	out := SARIFLocation{
		PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: loc.FilePath},
			Region: SARIFRegion{
				StartLine:   loc.Range.StartLine,
				StartColumn: loc.Range.StartOffset + 1,
				EndLine:     loc.Range.EndLine,
				EndColumn:   loc.Range.EndOffset + 1,
			},
		},
	}
	if withMessage && loc.Message != "" {
		out.Message = &SARIFMessage{Text: loc.Message}
	}
	return out
}

// severityToSARIFLevel maps rule severities onto SARIF levels.
func severityToSARIFLevel(severity rules.Severity) string {
	switch severity {
	case rules.SeverityBlocker, rules.SeverityCritical:
		return "error"
	case rules.SeverityMajor, rules.SeverityMinor:
		return "warning"
	case rules.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
