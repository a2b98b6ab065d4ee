// Package rules defines the core rule-configuration data model for rulekit.
// These types are pure data structures with no dependency on providers,
// caches, or the analysis engine.
package rules

import "fmt"

// Severity represents the importance assigned to a rule's findings.
type Severity string

const (
	SeverityBlocker  Severity = "Blocker"
	SeverityCritical Severity = "Critical"
	SeverityMajor    Severity = "Major"
	SeverityMinor    Severity = "Minor"
	SeverityInfo     Severity = "Info"
)

// severityNames is the exhaustive mapping from the wire string to the enum.
// Unknown strings are rejected rather than defaulted.
//
//nolint:gochecknoglobals // Static lookup table.
var severityNames = map[string]Severity{
	"Blocker":  SeverityBlocker,
	"Critical": SeverityCritical,
	"Major":    SeverityMajor,
	"Minor":    SeverityMinor,
	"Info":     SeverityInfo,
}

// ParseSeverity converts a wire string to a Severity.
// It fails with the offending string embedded in the error for any value
// outside the known set.
func ParseSeverity(s string) (Severity, error) {
	if sev, ok := severityNames[s]; ok {
		return sev, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// IsValid reports whether the severity is one of the known values.
func (s Severity) IsValid() bool {
	_, ok := severityNames[string(s)]
	return ok
}

// IssueType categorizes what kind of problem a rule detects.
type IssueType string

const (
	TypeCodeSmell     IssueType = "CodeSmell"
	TypeBug           IssueType = "Bug"
	TypeVulnerability IssueType = "Vulnerability"
)

//nolint:gochecknoglobals // Static lookup table.
var issueTypeNames = map[string]IssueType{
	"CodeSmell":     TypeCodeSmell,
	"Bug":           TypeBug,
	"Vulnerability": TypeVulnerability,
}

// ParseIssueType converts a wire string to an IssueType.
func ParseIssueType(s string) (IssueType, error) {
	if t, ok := issueTypeNames[s]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown issue type %q", s)
}

// IsValid reports whether the issue type is one of the known values.
func (t IssueType) IsValid() bool {
	_, ok := issueTypeNames[string(t)]
	return ok
}

// RuleLevel switches a rule on or off in user settings.
type RuleLevel string

const (
	LevelOn  RuleLevel = "On"
	LevelOff RuleLevel = "Off"
)

// ParseRuleLevel converts a wire string to a RuleLevel.
func ParseRuleLevel(s string) (RuleLevel, error) {
	switch s {
	case string(LevelOn):
		return LevelOn, nil
	case string(LevelOff):
		return LevelOff, nil
	default:
		return "", fmt.Errorf("unknown rule level %q", s)
	}
}

// IsValid reports whether the level is one of the known values.
func (l RuleLevel) IsValid() bool {
	return l == LevelOn || l == LevelOff
}
