package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/internal/settings"
	"github.com/yaklabco/rulekit/internal/ui/pretty"
	"github.com/yaklabco/rulekit/pkg/provider"
	"github.com/yaklabco/rulekit/pkg/resolve"
	"github.com/yaklabco/rulekit/pkg/rules"
)

type resolveFlags struct {
	format string
	all    bool
}

const formatJSON = "json"

// resolvedRule is one rule of an effective config in JSON output.
type resolvedRule struct {
	Key        string            `json:"key"`
	Active     bool              `json:"active"`
	Type       string            `json:"type"`
	Severity   string            `json:"severity"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Title      string            `json:"title,omitempty"`
}

func newResolveCommand() *cobra.Command {
	flags := &resolveFlags{}

	cmd := &cobra.Command{
		Use:   "resolve <language>",
		Short: "Print the effective rule configuration for a language",
		Long: `Merge the bundled default rule set for a language with the discovered
user settings and print the resulting effective configuration.

By default only active rules are shown; use --all to include rules that
are switched off.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.all, "all", false, "include inactive rules")

	return cmd
}

func runResolve(cmd *cobra.Command, languageKey string, flags *resolveFlags) error {
	logger := logging.Default()

	lang, ok := rules.LanguageForKey(languageKey)
	if !ok {
		return fmt.Errorf("unknown language %q", languageKey)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	effective, err := resolveEffectiveConfig(ctx, cmd, lang, logger)
	if err != nil {
		return err
	}

	if flags.format == formatJSON {
		return outputResolvedJSON(cmd, lang, effective, flags.all)
	}
	return outputResolvedText(cmd, lang, effective, flags.all)
}

// resolveEffectiveConfig loads user settings and merges them with the
// bundled defaults for one language.
func resolveEffectiveConfig(ctx context.Context, cmd *cobra.Command, lang rules.Language, logger *log.Logger) (*rules.Config, error) {
	settingsPath, err := cmd.Flags().GetString("settings")
	if err != nil {
		return nil, fmt.Errorf("get settings flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := settings.Load(ctx, settings.LoadOptions{
		WorkingDir:   workDir,
		SettingsPath: settingsPath,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	bundled, err := provider.NewBundled(logger)
	if err != nil {
		return nil, err
	}
	defaults, err := provider.NewComposite(bundled).RulesConfiguration(lang.Key)
	if err != nil {
		return nil, err
	}

	return resolve.NewProvider(logger).EffectiveConfig(lang.Key, defaults, loaded.Settings)
}

func outputResolvedText(cmd *cobra.Command, lang rules.Language, effective *rules.Config, all bool) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", styles.Bold.Render(lang.Name), lang.Key)

	keys := effective.AllRuleKeys()
	for _, partial := range keys {
		rule, _ := effective.RuleByKey(partial)
		if !all && !rule.Active {
			continue
		}
		fmt.Fprint(out, styles.FormatRule(rules.CompositeKey(lang.RepoKey, partial), rule))
		for name, value := range rule.Parameters {
			fmt.Fprintf(out, "      %s\n", styles.Dim.Render(name+" = "+value))
		}
	}

	return nil
}

func outputResolvedJSON(cmd *cobra.Command, lang rules.Language, effective *rules.Config, all bool) error {
	resolved := make([]resolvedRule, 0, len(effective.Rules))
	for _, partial := range effective.AllRuleKeys() {
		rule, _ := effective.RuleByKey(partial)
		if !all && !rule.Active {
			continue
		}
		resolved = append(resolved, resolvedRule{
			Key:        rules.CompositeKey(lang.RepoKey, partial),
			Active:     rule.Active,
			Type:       string(rule.Type),
			Severity:   string(rule.DefaultSeverity),
			Parameters: rule.Parameters,
			Title:      rule.Title,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(resolved); err != nil {
		return fmt.Errorf("encoding effective config: %w", err)
	}
	return nil
}
