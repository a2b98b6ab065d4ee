package cli

import "github.com/yaklabco/rulekit/pkg/engine"

// Exit codes for rulekit.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates analysis completed and found issues.
	ExitIssuesFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code for an analysis result.
func ExitCodeFromResult(result *engine.SolutionResult) int {
	if result == nil || result.TotalIssues() == 0 {
		return ExitSuccess
	}
	return ExitIssuesFound
}
