package lint

import (
	"slices"

	"github.com/yaklabco/a11ylint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// SeverityExplicit is true when the rules: section set the severity.
	// It then overrides severities chosen by the rule per diagnostic.
	SeverityExplicit bool

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules, sorted by ID, with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
// Precedence: rule defaults, then the rules: section, then --enable/--disable.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
		Config:   nil,
	}

	if rr.Severity == "" {
		rr.Severity = config.SeverityWarning
		if cfg != nil && cfg.SeverityDefault != "" {
			rr.Severity = config.Severity(cfg.SeverityDefault)
		}
	}

	if cfg == nil {
		return rr
	}

	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil && *ruleCfg.Severity != "" {
			rr.Severity = config.Severity(*ruleCfg.Severity)
			rr.SeverityExplicit = true
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	if slices.Contains(cfg.EnableRules, rule.ID()) {
		rr.Enabled = true
	}
	if slices.Contains(cfg.DisableRules, rule.ID()) {
		rr.Enabled = false
	}

	// Auto-fix only applies under --fix.
	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}
