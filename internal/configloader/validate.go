package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.A11Y006.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues such as unknown rules.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownSeverities = map[string]bool{
	string(config.SeverityError):   true,
	string(config.SeverityWarning): true,
	string(config.SeverityInfo):    true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatTable:   true,
	config.FormatJSON:    true,
	config.FormatSARIF:   true,
	config.FormatDiff:    true,
	config.FormatSummary: true,
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks cfg against the built-in rule registry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithRegistry(cfg, lint.DefaultRegistry)
}

// ValidateWithRegistry checks cfg for errors and warnings. Rule keys are
// expected to be normalized to IDs already.
func ValidateWithRegistry(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.SeverityDefault != "" && !knownSeverities[cfg.SeverityDefault] {
		result.errorf("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}
	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.errorf("format", cfg.Format,
			"invalid format %q; must be one of: text, table, json, sarif, diff, summary", cfg.Format)
	}
	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.errorf("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}
	if cfg.Jobs < 0 {
		result.errorf("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.errorf("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	validateRules(cfg, registry, result)
	validatePatterns(cfg, result)

	return result
}

// validateRules checks rule severities and option types. Unknown rules
// and options are warnings so configs survive rule renames.
func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	ids := make([]string, 0, len(cfg.Rules))
	for id := range cfg.Rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		ruleCfg := cfg.Rules[id]
		field := "rules." + id

		if ruleCfg.Severity != nil && !knownSeverities[*ruleCfg.Severity] {
			result.errorf(field+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}

		rule, ok := registry.GetByID(id)
		if !ok {
			result.warnf(field, id, "unknown rule %q; it will be ignored", id)
			continue
		}

		if ruleCfg.AutoFix != nil && *ruleCfg.AutoFix && !rule.CanFix() {
			result.warnf(field+".auto_fix", true, "rule %s has no fixes", id)
		}

		validateOptions(field, rule, ruleCfg.Options, result)
	}
}

// validateOptions compares option values with the types of the rule's
// defaults. Integers are accepted where a float is expected.
func validateOptions(field string, rule lint.Rule, options map[string]any, result *ValidationResult) {
	if len(options) == 0 {
		return
	}

	defaulter, ok := rule.(lint.OptionDefaulter)
	if !ok {
		result.warnf(field+".options", options, "rule %s takes no options", rule.ID())
		return
	}
	defaults := defaulter.DefaultOptions()

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := options[key]
		optField := field + ".options." + key

		def, known := defaults[key]
		if !known {
			result.warnf(optField, value, "unknown option %q for rule %s", key, rule.ID())
			continue
		}
		if want := optionKind(def); want != optionKind(value) && (want != "number" || optionKind(value) != "integer") {
			result.errorf(optField, value, "expected %s, got %s", want, optionKind(value))
		}
	}
}

// optionKind names the YAML-level type of an option value.
func optionKind(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float32, float64:
		return "number"
	case string:
		return "string"
	case []any, []string:
		return "list"
	case map[string]any:
		return "mapping"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// validatePatterns checks ignore globs and extension spellings.
func validatePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(filepath2slash(pattern)) {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.warnf(fmt.Sprintf("extensions[%d]", i), ext, "extension %q should start with a dot", ext)
		}
	}
}

// filepath2slash converts Windows separators so patterns validate alike
// on every platform.
func filepath2slash(pattern string) string {
	return strings.ReplaceAll(pattern, `\`, "/")
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidSeverity returns true if the severity string is valid.
func IsValidSeverity(s string) bool {
	return knownSeverities[s]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
