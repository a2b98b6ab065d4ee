// Package settings loads and persists the user's rule settings document
// and rulekit's own tool configuration.
package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// EnvSettingsPath overrides settings discovery when set.
const EnvSettingsPath = "RULEKIT_SETTINGS"

// settingsFileName is the project-level settings document.
const settingsFileName = "sonarlint.json"

// toolConfigFiles are the tool config file names searched in order of
// preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var toolConfigFiles = []string{
	".rulekit.yml",
	".rulekit.yaml",
	"rulekit.yml",
	"rulekit.yaml",
}

// vcsRootMarkers are directories that indicate a VCS root, bounding the
// upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// Paths holds the discovered file locations. Missing files are empty
// strings, not errors.
type Paths struct {
	// Settings is the user rule-settings JSON document.
	Settings string

	// ToolConfig is rulekit's own YAML configuration.
	ToolConfig string
}

// DiscoverPaths locates the settings and tool-config files.
//
// Settings resolution order: explicitSettings flag, the RULEKIT_SETTINGS
// environment variable, a sonarlint.json found by searching upward from
// workDir to the VCS root, then the user config directory.
func DiscoverPaths(ctx context.Context, workDir, explicitSettings string) (*Paths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover settings: %w", err)
	}
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("discover settings: %w", err)
		}
		workDir = wd
	}

	paths := &Paths{}

	switch {
	case explicitSettings != "":
		paths.Settings = explicitSettings
	case os.Getenv(EnvSettingsPath) != "":
		paths.Settings = os.Getenv(EnvSettingsPath)
	default:
		paths.Settings = findUpward(workDir, []string{settingsFileName})
		if paths.Settings == "" {
			paths.Settings = userFile(settingsFileName)
		}
	}

	paths.ToolConfig = findUpward(workDir, toolConfigFiles)
	if paths.ToolConfig == "" {
		for _, name := range toolConfigFiles {
			if p := userFile(name); p != "" {
				paths.ToolConfig = p
				break
			}
		}
	}

	return paths, nil
}

// findUpward searches from dir toward the filesystem root for the first
// existing candidate file, stopping after a directory containing a VCS
// marker.
func findUpward(dir string, candidates []string) string {
	for {
		for _, name := range candidates {
			p := filepath.Join(dir, name)
			if fileExists(p) {
				return p
			}
		}

		if hasVCSMarker(dir) {
			return ""
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// userFile returns the path of name under the user config directory when
// the file exists.
func userFile(name string) string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(base, "rulekit", name)
	if fileExists(p) {
		return p
	}
	return ""
}

// UserSettingsPath returns where a new user-level settings document should
// be written, whether or not it exists yet.
func UserSettingsPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user settings path: %w", err)
	}
	return filepath.Join(base, "rulekit", settingsFileName), nil
}

func hasVCSMarker(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
