// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"

	// Rule and configuration fields.
	FieldLanguage   = "language"
	FieldRule       = "rule"
	FieldRules      = "rules"
	FieldRulesTotal = "rules_total"
	FieldActive     = "active_rules"
	FieldSeverity   = "severity"
	FieldSettings   = "settings"

	// Cache fields.
	FieldCacheCount = "cache_count"

	// Analysis fields.
	FieldProject     = "project"
	FieldDocument    = "document"
	FieldIssuesTotal = "issues_total"
	FieldDuplicates  = "duplicates"
	FieldFixes       = "fixes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
