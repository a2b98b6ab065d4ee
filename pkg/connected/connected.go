// Package connected turns server-side quality profiles into rule settings
// when running against a configured analysis server.
package connected

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/rulekit/internal/logging"
	"github.com/yaklabco/rulekit/pkg/rules"
)

// QPSeverity is a server-side severity. Unlike rules.Severity it includes
// Unknown, which maps to "no severity override".
type QPSeverity string

const (
	QPSeverityUnknown  QPSeverity = "Unknown"
	QPSeverityBlocker  QPSeverity = "Blocker"
	QPSeverityCritical QPSeverity = "Critical"
	QPSeverityMajor    QPSeverity = "Major"
	QPSeverityMinor    QPSeverity = "Minor"
	QPSeverityInfo     QPSeverity = "Info"
)

//nolint:gochecknoglobals // Static lookup table.
var qpSeverities = map[QPSeverity]rules.Severity{
	QPSeverityUnknown:  "",
	QPSeverityBlocker:  rules.SeverityBlocker,
	QPSeverityCritical: rules.SeverityCritical,
	QPSeverityMajor:    rules.SeverityMajor,
	QPSeverityMinor:    rules.SeverityMinor,
	QPSeverityInfo:     rules.SeverityInfo,
}

// QPRule is one rule of a server quality profile.
type QPRule struct {
	// Key is the partial rule key.
	Key string

	// Repo is the rule repository key.
	Repo string

	// IsActive reports whether the profile activates the rule.
	IsActive bool

	Severity QPSeverity
	Params   map[string]string
}

// RulesSettingsFromQPRules converts quality-profile rules into a settings
// object equivalent to a user enabling and disabling exactly those rules.
//
// Active rules map to Level=On and inactive ones to Level=Off. An Unknown
// severity leaves the severity unset. An empty parameter map becomes nil,
// not an empty mapping. Unknown severity strings are a server contract
// violation and fail with the offending value in the error.
func RulesSettingsFromQPRules(qpRules []QPRule) (*rules.RulesSettings, error) {
	settings := rules.NewRulesSettings()

	for _, qp := range qpRules {
		severity, ok := qpSeverities[qp.Severity]
		if !ok {
			return nil, fmt.Errorf("quality profile rule %s:%s: unknown severity %q", qp.Repo, qp.Key, string(qp.Severity))
		}

		level := rules.LevelOff
		if qp.IsActive {
			level = rules.LevelOn
		}

		params := qp.Params
		if len(params) == 0 {
			params = nil
		}

		settings.Rules[rules.CompositeKey(qp.Repo, qp.Key)] = rules.RuleConfig{
			Level:      level,
			Severity:   severity,
			Parameters: params,
		}
	}

	return settings, nil
}

// Client fetches a language's quality-profile rules from the server.
type Client interface {
	FetchRules(ctx context.Context, languageKey string) ([]QPRule, error)
}

// Fetcher retrieves server settings and degrades to standalone mode on
// failure.
type Fetcher struct {
	client Client
	logger *log.Logger
}

// NewFetcher creates a fetcher over the given client.
func NewFetcher(client Client, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Fetcher{client: client, logger: logger}
}

// Settings fetches and converts the quality profile for languageKey.
//
// Any failure is logged and surfaced as nil: callers treat nil as "fall
// back to standalone defaults" rather than an error. Cancellation gets its
// own log message so timeouts are distinguishable from server faults.
func (f *Fetcher) Settings(ctx context.Context, languageKey string) *rules.RulesSettings {
	qpRules, err := f.client.FetchRules(ctx, languageKey)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			f.logger.Warn("quality profile request timeout or cancelled",
				logging.FieldLanguage, languageKey)
		} else {
			f.logger.Warn("failed to fetch quality profile",
				logging.FieldLanguage, languageKey,
				logging.FieldError, err)
		}
		return nil
	}

	settings, err := RulesSettingsFromQPRules(qpRules)
	if err != nil {
		f.logger.Warn("invalid quality profile",
			logging.FieldLanguage, languageKey,
			logging.FieldError, err)
		return nil
	}

	return settings
}
