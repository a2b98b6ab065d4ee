package rules_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/rulekit/pkg/rules"
)

func TestParseSeverity_Known(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  rules.Severity
	}{
		{"Blocker", rules.SeverityBlocker},
		{"Critical", rules.SeverityCritical},
		{"Major", rules.SeverityMajor},
		{"Minor", rules.SeverityMinor},
		{"Info", rules.SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := rules.ParseSeverity(tt.input)
			if err != nil {
				t.Fatalf("ParseSeverity(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeverity(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSeverity_Unknown(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "blocker", "MINOR", "Medium"} {
		_, err := rules.ParseSeverity(input)
		if err == nil {
			t.Errorf("ParseSeverity(%q) succeeded, want error", input)
		} else if !strings.Contains(err.Error(), input) {
			t.Errorf("error %q does not name the offending value %q", err, input)
		}
	}
}

func TestParseIssueType(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"CodeSmell", "Bug", "Vulnerability"} {
		got, err := rules.ParseIssueType(input)
		if err != nil {
			t.Fatalf("ParseIssueType(%q) returned error: %v", input, err)
		}
		if string(got) != input {
			t.Errorf("ParseIssueType(%q) = %q", input, got)
		}
	}

	if _, err := rules.ParseIssueType("Hotspot"); err == nil {
		t.Error("ParseIssueType accepted an unknown type")
	}
}

func TestParseRuleLevel(t *testing.T) {
	t.Parallel()

	if got, err := rules.ParseRuleLevel("On"); err != nil || got != rules.LevelOn {
		t.Errorf("ParseRuleLevel(On) = %q, %v", got, err)
	}
	if got, err := rules.ParseRuleLevel("Off"); err != nil || got != rules.LevelOff {
		t.Errorf("ParseRuleLevel(Off) = %q, %v", got, err)
	}
	if _, err := rules.ParseRuleLevel("on"); err == nil {
		t.Error("ParseRuleLevel accepted lowercase level")
	}
}
