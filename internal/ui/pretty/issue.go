package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/rulekit/pkg/issue"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// FormatIssue formats a single issue for terminal output, including its
// secondary locations and quick-fix titles.
func (s *Styles) FormatIssue(iss issue.Issue, severity rules.Severity) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(iss.Primary.FilePath),
		iss.Primary.Range.StartLine,
		iss.Primary.Range.StartOffset,
	)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(severity),
		s.Message.Render(iss.Primary.Message),
		s.RuleID.Render("("+iss.RuleID+")"),
	))

	for _, flow := range iss.Flows {
		for _, loc := range flow.Locations {
			builder.WriteString("      " + s.Secondary.Render(fmt.Sprintf("%s:%d: %s",
				loc.FilePath, loc.Range.StartLine, loc.Message)) + "\n")
		}
	}

	for _, fix := range iss.Fixes {
		builder.WriteString("    " + s.Dim.Render("Fix:") + " " +
			s.FixTitle.Render(fix.Title) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev rules.Severity) string {
	switch sev {
	case rules.SeverityBlocker:
		return s.Blocker.Render("blocker")
	case rules.SeverityCritical:
		return s.Critical.Render("critical")
	case rules.SeverityMajor:
		return s.Major.Render("major")
	case rules.SeverityMinor:
		return s.Minor.Render("minor")
	case rules.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatRule formats one rule line for the rules listing:
// key, activation marker, severity, and title.
func (s *Styles) FormatRule(compositeKey string, rule rules.Rule) string {
	marker := s.RuleOff.Render("off")
	if rule.Active {
		marker = s.RuleActive.Render("on ")
	}
	return fmt.Sprintf("  %s  %s  %-8s  %s\n",
		s.Bold.Render(compositeKey),
		marker,
		s.FormatSeverity(rule.DefaultSeverity),
		s.RuleTitle.Render(rule.Title),
	)
}
