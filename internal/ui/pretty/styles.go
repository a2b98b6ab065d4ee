// Package pretty provides Lipgloss-based styled output for issues and
// rule listings.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Blocker  lipgloss.Style
	Critical lipgloss.Style
	Major    lipgloss.Style
	Minor    lipgloss.Style
	Info     lipgloss.Style

	// Issue components
	FilePath  lipgloss.Style
	Location  lipgloss.Style
	RuleID    lipgloss.Style
	Message   lipgloss.Style
	Secondary lipgloss.Style
	FixTitle  lipgloss.Style

	// Rule listing
	RuleTitle  lipgloss.Style
	RuleActive lipgloss.Style
	RuleOff    lipgloss.Style

	// Misc
	Dim     lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Blocker:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Major:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Minor:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),

		FilePath:  lipgloss.NewStyle().Bold(true),
		Location:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		RuleID:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Message:   lipgloss.NewStyle(),
		Secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		FixTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),

		RuleTitle:  lipgloss.NewStyle().Bold(true),
		RuleActive: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		RuleOff:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Blocker:    plain,
		Critical:   plain,
		Major:      plain,
		Minor:      plain,
		Info:       plain,
		FilePath:   plain,
		Location:   plain,
		RuleID:     plain,
		Message:    plain,
		Secondary:  plain,
		FixTitle:   plain,
		RuleTitle:  plain,
		RuleActive: plain,
		RuleOff:    plain,
		Dim:        plain,
		Bold:       plain,
		Success:    plain,
		Failure:    plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the writer's terminal width, or fallback when the
// writer is not a terminal.
func TerminalWidth(writer io.Writer, fallback int) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}
