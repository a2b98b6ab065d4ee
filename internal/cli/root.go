// Package cli provides the Cobra command structure for rulekit.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rulekit/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root rulekit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var settingsPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "rulekit",
		Short: "Static-analysis rule configuration and issue tooling",
		Long: `rulekit reconciles bundled per-language analyzer rule sets with user
settings into effective configurations, runs the configured analyzers over
source trees, and reports normalized, deduplicated issues.

User overrides live in a sonarlint.json settings document; rule activation,
severity, and parameters can all be adjusted per rule.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "path to settings document")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
