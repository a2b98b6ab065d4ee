package settings

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/pkg/fsutil"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// LoadOptions controls settings resolution.
type LoadOptions struct {
	// WorkingDir is the directory to search from. Defaults to the current
	// working directory.
	WorkingDir string

	// SettingsPath is an explicit settings document path (from a flag).
	// When set, discovery is skipped for the settings document.
	SettingsPath string

	// Logger receives resolution debug lines; nil falls back to the
	// context logger.
	Logger *log.Logger
}

// Result is the resolved configuration state.
type Result struct {
	// Settings is the parsed user rule settings; never nil. When no
	// settings document exists this is an empty settings object.
	Settings *rules.RulesSettings

	// SettingsPath is the document the settings came from; empty when no
	// document was found.
	SettingsPath string

	// Tool is the parsed tool config with defaults applied; never nil.
	Tool *ToolConfig

	// ToolPath is the tool config file used; empty when defaults apply.
	ToolPath string
}

// Load discovers and parses the settings and tool-config documents.
//
// A missing settings document is not an error: analysis then runs on
// defaults alone. A present but malformed document is an error, since
// silently ignoring explicit user configuration would be worse than
// failing.
func Load(ctx context.Context, opts LoadOptions) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	paths, err := DiscoverPaths(ctx, opts.WorkingDir, opts.SettingsPath)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Settings: rules.NewRulesSettings(),
		Tool:     NewToolConfig(),
	}

	if paths.Settings != "" {
		data, err := os.ReadFile(paths.Settings)
		switch {
		case os.IsNotExist(err):
			logger.Debug("settings document does not exist", logging.FieldPath, paths.Settings)
		case err != nil:
			return nil, fmt.Errorf("read settings: %w", err)
		default:
			parsed, err := rules.SettingsFromJSON(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", paths.Settings, err)
			}
			result.Settings = parsed
			result.SettingsPath = paths.Settings
			logger.Debug("loaded settings",
				logging.FieldPath, paths.Settings,
				logging.FieldRulesTotal, len(parsed.Rules))
		}
	}

	if paths.ToolConfig != "" {
		data, err := os.ReadFile(paths.ToolConfig)
		if err != nil {
			return nil, fmt.Errorf("read tool config: %w", err)
		}
		cfg, err := ToolConfigFromYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", paths.ToolConfig, err)
		}
		result.Tool = cfg
		result.ToolPath = paths.ToolConfig
	}

	return result, nil
}

// Save writes the settings document to path atomically.
func Save(ctx context.Context, path string, settings *rules.RulesSettings) error {
	if path == "" {
		return fmt.Errorf("save settings: path is empty")
	}
	if settings == nil {
		return fmt.Errorf("save settings: settings is nil")
	}

	data, err := settings.ToJSON()
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	data = append(data, '\n')

	if err := fsutil.WriteAtomic(ctx, path, data, 0); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
