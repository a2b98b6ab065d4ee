package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/internal/ui/pretty"
	"github.com/yaklabco/rulekit/pkg/provider"
	"github.com/yaklabco/rulekit/pkg/ruledoc"
	"github.com/yaklabco/rulekit/pkg/rules"
)

type rulesFlags struct {
	format string
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Active   bool   `json:"active"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [language]",
		Short: "List bundled analyzer rules",
		Long: `List the bundled rules with their composite keys, default activation,
severity, and title. With a language argument, only that language's rules
are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			languageKey := ""
			if len(args) == 1 {
				languageKey = args[0]
			}
			return runRulesList(cmd, languageKey, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.AddCommand(newRulesShowCommand())

	return cmd
}

func runRulesList(cmd *cobra.Command, languageKey string, flags *rulesFlags) error {
	bundled, err := provider.NewBundled(logging.Default())
	if err != nil {
		return err
	}

	languages := rules.Languages()
	if languageKey != "" {
		lang, ok := rules.LanguageForKey(languageKey)
		if !ok {
			return fmt.Errorf("unknown language %q", languageKey)
		}
		languages = []rules.Language{lang}
	}

	if flags.format == formatJSON {
		return outputRulesJSON(cmd, bundled, languages)
	}
	return outputRulesText(cmd, bundled, languages)
}

func outputRulesText(cmd *cobra.Command, bundled *provider.Bundled, languages []rules.Language) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	out := cmd.OutOrStdout()
	for _, lang := range languages {
		cfg := bundled.RulesConfiguration(lang.Key)
		if cfg == nil {
			continue
		}

		fmt.Fprintf(out, "%s (%d rules)\n", styles.Bold.Render(lang.Name), len(cfg.Rules))
		for _, partial := range cfg.AllRuleKeys() {
			rule, _ := cfg.RuleByKey(partial)
			fmt.Fprint(out, styles.FormatRule(rules.CompositeKey(lang.RepoKey, partial), rule))
		}
		fmt.Fprintln(out)
	}

	return nil
}

func outputRulesJSON(cmd *cobra.Command, bundled *provider.Bundled, languages []rules.Language) error {
	infos := make([]ruleInfo, 0)
	for _, lang := range languages {
		cfg := bundled.RulesConfiguration(lang.Key)
		if cfg == nil {
			continue
		}
		for _, partial := range cfg.AllRuleKeys() {
			rule, _ := cfg.RuleByKey(partial)
			infos = append(infos, ruleInfo{
				Key:      rules.CompositeKey(lang.RepoKey, partial),
				Language: lang.Key,
				Title:    rule.Title,
				Type:     string(rule.Type),
				Severity: string(rule.DefaultSeverity),
				Active:   rule.Active,
			})
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

func newRulesShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <rule-key>",
		Short: "Show a bundled rule's full description",
		Long: `Show one bundled rule in detail, including its rendered Markdown
description. The rule is addressed by its composite key, e.g. "cpp:S107".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRulesShow(cmd, args[0])
		},
	}
	return cmd
}

func runRulesShow(cmd *cobra.Command, compositeKey string) error {
	repoKey, partial, ok := rules.SplitKey(compositeKey)
	if !ok {
		return fmt.Errorf("invalid rule key %q, expected repo:key", compositeKey)
	}

	bundled, err := provider.NewBundled(logging.Default())
	if err != nil {
		return err
	}

	rule, lang, ok := findRule(bundled, repoKey, partial)
	if !ok {
		return fmt.Errorf("unknown rule %q", compositeKey)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", styles.Bold.Render(compositeKey), styles.RuleTitle.Render(rule.Title))
	fmt.Fprintf(out, "Language: %s   Type: %s   Severity: %s   Active: %t\n\n",
		lang.Name, rule.Type, styles.FormatSeverity(rule.DefaultSeverity), rule.Active)

	for name, value := range rule.Parameters {
		fmt.Fprintf(out, "  %s\n", styles.Dim.Render(name+" = "+value))
	}
	if len(rule.Parameters) > 0 {
		fmt.Fprintln(out)
	}

	if rule.Description != "" {
		rendered, err := ruledoc.Render(rule.Description)
		if err != nil {
			return fmt.Errorf("render description: %w", err)
		}
		fmt.Fprintln(out, rendered)
	}

	return nil
}

// findRule resolves a composite key against the bundled rule sets. The
// repository key, not the language key, addresses the rule set ("csharpsquid"
// for C#).
func findRule(bundled *provider.Bundled, repoKey, partial string) (rules.Rule, rules.Language, bool) {
	for _, lang := range rules.Languages() {
		if lang.RepoKey != repoKey {
			continue
		}
		cfg := bundled.RulesConfiguration(lang.Key)
		if cfg == nil {
			return rules.Rule{}, rules.Language{}, false
		}
		rule, ok := cfg.RuleByKey(partial)
		return rule, lang, ok
	}
	return rules.Rule{}, rules.Language{}, false
}
