package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// RuleConfig holds one rule's user-supplied overrides.
// A zero Severity and a nil Parameters map mean "inherit the default".
// Instances are immutable once loaded.
type RuleConfig struct {
	// Level switches the rule on or off regardless of its default activation.
	Level RuleLevel `json:"level"`

	// Parameters overrides individual rule parameters. Nil means no
	// parameter overrides; keys not present inherit the default value.
	Parameters map[string]string `json:"parameters,omitempty"`

	// Severity overrides the rule's default severity when non-empty.
	Severity Severity `json:"severity,omitempty"`
}

// Clone returns a deep copy of the rule config.
func (rc RuleConfig) Clone() RuleConfig {
	out := rc
	if rc.Parameters != nil {
		out.Parameters = maps.Clone(rc.Parameters)
	}
	return out
}

// RulesSettings is a user's rule override document.
// Rules are keyed by composite "repo:partial" identifiers; key matching is
// case-sensitive throughout.
type RulesSettings struct {
	Rules map[string]RuleConfig `json:"sonarlint.rules"`
}

// NewRulesSettings returns an empty settings object with an initialized
// rules map.
func NewRulesSettings() *RulesSettings {
	return &RulesSettings{Rules: make(map[string]RuleConfig)}
}

// ToJSON serializes the settings as the indented user settings document.
// Rule keys and parameter keys are emitted in sorted order, so the output
// is deterministic for a given settings value.
func (s *RulesSettings) ToJSON() ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("serialize settings: settings is nil")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("serialize settings: %w", err)
	}

	// Encoder appends a trailing newline; the settings document carries none.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// SettingsFromJSON parses a user settings document.
// Unknown severity or level strings are rejected with the offending value
// in the error rather than silently defaulted.
func SettingsFromJSON(data []byte) (*RulesSettings, error) {
	s := &RulesSettings{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if s.Rules == nil {
		s.Rules = make(map[string]RuleConfig)
	}

	for key, rc := range s.Rules {
		// An absent level means "inherit the default activation"; only a
		// present, unknown value is an error.
		if rc.Level != "" && !rc.Level.IsValid() {
			return nil, fmt.Errorf("parse settings: rule %q: unknown rule level %q", key, string(rc.Level))
		}
		if rc.Severity != "" && !rc.Severity.IsValid() {
			return nil, fmt.Errorf("parse settings: rule %q: unknown severity %q", key, string(rc.Severity))
		}
	}

	return s, nil
}
