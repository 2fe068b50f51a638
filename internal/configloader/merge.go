package configloader

import (
	"maps"

	"github.com/yaklabco/a11ylint/pkg/config"
)

// fileConfig is what a config file may set. Pointer booleans distinguish
// an explicit false from an absent key, so a project file can turn off a
// setting that a user file or the defaults turned on.
type fileConfig struct {
	SeverityDefault string                       `yaml:"severity_default"`
	Rules           map[string]config.RuleConfig `yaml:"rules"`
	Ignore          []string                     `yaml:"ignore"`
	Extensions      []string                     `yaml:"extensions"`
	Markdown        struct {
		Enabled        *bool `yaml:"enabled"`
		DetectUntagged *bool `yaml:"detect_untagged"`
	} `yaml:"markdown"`
	Backups struct {
		Enabled *bool  `yaml:"enabled"`
		Mode    string `yaml:"mode"`
	} `yaml:"backups"`
}

// knownFileKeys are the top-level keys of a config file.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFileKeys = map[string]bool{
	"severity_default": true,
	"rules":            true,
	"ignore":           true,
	"extensions":       true,
	"markdown":         true,
	"backups":          true,
}

// applyFile layers a parsed config file over cfg in place.
func applyFile(cfg *config.Config, file *fileConfig) {
	if file.SeverityDefault != "" {
		cfg.SeverityDefault = file.SeverityDefault
	}
	if file.Ignore != nil {
		cfg.Ignore = file.Ignore
	}
	if file.Extensions != nil {
		cfg.Extensions = file.Extensions
	}
	if file.Markdown.Enabled != nil {
		cfg.Markdown.Enabled = *file.Markdown.Enabled
	}
	if file.Markdown.DetectUntagged != nil {
		cfg.Markdown.DetectUntagged = *file.Markdown.DetectUntagged
	}
	if file.Backups.Enabled != nil {
		cfg.Backups.Enabled = *file.Backups.Enabled
	}
	if file.Backups.Mode != "" {
		cfg.Backups.Mode = file.Backups.Mode
	}
	cfg.Rules = mergeRules(cfg.Rules, file.Rules)
}

// merge combines two configurations, with override taking precedence:
//   - scalars overwrite when set to a non-zero value
//   - booleans can only be switched on
//   - rule maps are merged deeply
//   - slices replace when non-nil
//
// It is used for flag-derived configs, where an unset flag is the zero value.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.SeverityDefault != "" {
		result.SeverityDefault = override.SeverityDefault
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.RuleFormat != "" {
		result.RuleFormat = override.RuleFormat
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Fix {
		result.Fix = true
	}
	if override.DryRun {
		result.DryRun = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}
	if override.ParallelRules {
		result.ParallelRules = true
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}

	return &result
}

// mergeRules deep-merges rule maps into a new map.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		if existing, ok := result[key]; ok {
			result[key] = mergeRuleConfig(existing, val)
		} else {
			result[key] = val
		}
	}

	return result
}

// mergeRuleConfig layers override's set fields over base. Options merge
// key by key into a fresh map.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	if override.Enabled != nil {
		result.Enabled = override.Enabled
	}
	if override.Severity != nil {
		result.Severity = override.Severity
	}
	if override.AutoFix != nil {
		result.AutoFix = override.AutoFix
	}

	if override.Options != nil {
		options := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(options, base.Options)
		maps.Copy(options, override.Options)
		result.Options = options
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
