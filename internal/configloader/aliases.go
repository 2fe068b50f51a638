package configloader

import (
	"fmt"
	"slices"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// NormalizeRuleID converts a rule ID, name or alias to its canonical rule ID.
// Returns "" if the key names no registered rule.
func NormalizeRuleID(registry *lint.Registry, key string) string {
	id, _, ok := registry.Resolve(key)
	if !ok {
		return ""
	}
	return id
}

// TagRules returns the IDs of the rules carrying tag, in ID order.
// Tags let a configuration address a group of rules, e.g. "css" or "aria".
func TagRules(registry *lint.Registry, tag string) []string {
	var ids []string
	for _, rule := range registry.WithTag(tag) {
		ids = append(ids, rule.ID())
	}
	return ids
}

// IsTag returns true if at least one registered rule carries tag.
func IsTag(registry *lint.Registry, tag string) bool {
	return len(TagRules(registry, tag)) > 0
}

// AliasesForRule returns every alias registered for ruleID, sorted.
func AliasesForRule(registry *lint.Registry, ruleID string) []string {
	return registry.AliasesFor(ruleID)
}

// normalizeRuleKeys rewrites rule keys to canonical IDs. A tag key applies
// its settings to every rule with that tag, below any per-rule entry.
// Unknown keys are kept so validation can report them. When two keys name
// the same rule the later one in sorted key order wins, with a warning.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string)

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]

		id := NormalizeRuleID(registry, key)
		if id == "" {
			if !IsTag(registry, key) {
				normalized[key] = ruleCfg
			}
			continue
		}

		if previous, ok := seen[id]; ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					previous, key, id, key))
			ruleCfg = mergeRuleConfig(normalized[id], ruleCfg)
		}
		seen[id] = key
		normalized[id] = ruleCfg
	}

	for _, key := range keys {
		if NormalizeRuleID(registry, key) != "" || !IsTag(registry, key) {
			continue
		}
		for _, id := range TagRules(registry, key) {
			normalized[id] = mergeRuleConfig(cfg.Rules[key], normalized[id])
		}
	}

	cfg.Rules = normalized
}

// normalizeRuleList rewrites --enable/--disable style lists to rule IDs.
// Tags expand to their rules. Unknown entries are reported and dropped.
func normalizeRuleList(field string, list []string, registry *lint.Registry, result *LoadResult) []string {
	if list == nil {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, entry := range list {
		if id := NormalizeRuleID(registry, entry); id != "" {
			out = append(out, id)
			continue
		}
		if ids := TagRules(registry, entry); len(ids) > 0 {
			out = append(out, ids...)
			continue
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: unknown rule %q ignored", field, entry))
	}

	slices.Sort(out)
	return slices.Compact(out)
}
