package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/internal/settings"
	"github.com/yaklabco/rulekit/pkg/engine"
	"github.com/yaklabco/rulekit/pkg/provider"
	"github.com/yaklabco/rulekit/pkg/quickfix"
	"github.com/yaklabco/rulekit/pkg/reporter"
	"github.com/yaklabco/rulekit/pkg/resolve"
	"github.com/yaklabco/rulekit/pkg/rules"
	"github.com/yaklabco/rulekit/pkg/textscan"
)

// ErrIssuesFound is returned when analysis finds issues. It carries no
// message for the user; it only selects the exit code.
var ErrIssuesFound = errors.New("issues found")

// Source file extensions considered for analysis.
//
//nolint:gochecknoglobals // Static extension table.
var sourceExtensions = map[string]bool{
	".c": true, ".h": true,
	".cc": true, ".cpp": true, ".cxx": true, ".hpp": true, ".hh": true,
	".cs": true, ".vb": true,
	".js": true, ".jsx": true, ".mjs": true,
	".ts": true, ".tsx": true,
	".css": true,
}

type analyzeFlags struct {
	format  string
	compact bool
}

func newAnalyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Analyze source files and report issues",
		Long: `Analyze source files with the configured rules and report normalized,
deduplicated issues.

By default, analyzes supported source files in the current directory and
subdirectories. Specify paths to analyze specific files or directories.

Examples:
  rulekit analyze                  # Analyze current directory
  rulekit analyze src/             # Analyze src directory
  rulekit analyze main.c util.c    # Analyze specific files
  rulekit analyze --format json    # Output as JSON for CI`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, sarif")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, flags *analyzeFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settingsPath, err := cmd.Flags().GetString("settings")
	if err != nil {
		return fmt.Errorf("get settings flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	ctx = logging.WithLogger(ctx, logger)

	loaded, err := settings.Load(ctx, settings.LoadOptions{
		WorkingDir:   workDir,
		SettingsPath: settingsPath,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	// The --debug flag outranks the tool config's log level.
	if debug, ferr := cmd.Flags().GetBool("debug"); ferr != nil || !debug {
		logging.SetLevel(loaded.Tool.LogLevel)
	}

	// The tool config supplies the format unless --format was given.
	if !cmd.Flags().Changed("format") {
		flags.format = loaded.Tool.Format
	}

	solution, err := buildSolution(workDir, args)
	if err != nil {
		return err
	}

	bundled, err := provider.NewBundled(logger)
	if err != nil {
		return err
	}
	defaults := provider.NewComposite(bundled)
	effective := resolve.NewProvider(logger)

	analyzers, err := buildAnalyzers(loaded, bundled, effective, logger)
	if err != nil {
		return err
	}

	eng := engine.New(defaults, effective, logger, analyzers...)

	logger.Debug("starting analysis",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldSettings, loaded.SettingsPath,
	)

	result, err := eng.AnalyzeSolution(ctx, solution, loaded.Settings)
	if err != nil {
		return errors.Join(errors.New("analysis failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}

// buildSolution collects source files under the given paths into a
// single-project solution. Paths default to the working directory.
func buildSolution(workDir string, paths []string) (*quickfix.Solution, error) {
	if len(paths) == 0 {
		paths = []string{workDir}
	}

	project := &quickfix.Project{
		Name:      filepath.Base(workDir),
		Documents: make(map[quickfix.DocumentID]*quickfix.Document),
	}

	for _, path := range paths {
		if err := collectDocuments(project, path); err != nil {
			return nil, err
		}
	}

	return &quickfix.Solution{
		Projects: map[string]*quickfix.Project{project.Name: project},
	}, nil
}

func collectDocuments(project *quickfix.Project, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		return addDocument(project, root)
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			// Hidden directories are skipped, but never the walk root
			// itself: analyzing from inside a dot-named directory, or
			// naming one explicitly, must still find its files.
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		return addDocument(project, path)
	})
}

func addDocument(project *quickfix.Project, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	project.Documents[quickfix.DocumentID(path)] = &quickfix.Document{
		ID:      quickfix.DocumentID(path),
		Path:    path,
		Text:    string(data),
		Version: 1,
	}
	return nil
}

// buildAnalyzers constructs the text analyzers for the enabled languages.
// The effective configuration supplies rule parameters such as the line
// length limit.
func buildAnalyzers(loaded *settings.Result, bundled *provider.Bundled, effective *resolve.Provider, logger *log.Logger) ([]engine.Analyzer, error) {
	enabled := loaded.Tool.Languages

	var analyzers []engine.Analyzer
	for _, lang := range rules.Languages() {
		if len(enabled) > 0 && !slices.Contains(enabled, lang.Key) {
			continue
		}
		defaults := bundled.RulesConfiguration(lang.Key)
		if defaults == nil {
			continue
		}
		cfg, err := effective.EffectiveConfig(lang.Key, defaults, loaded.Settings)
		if err != nil {
			return nil, err
		}
		analyzers = append(analyzers, textscan.New(lang, cfg))
	}

	logger.Debug("configured analyzers", logging.FieldRulesTotal, len(analyzers))
	return analyzers, nil
}
