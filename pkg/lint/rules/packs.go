package rules

import "github.com/yaklabco/a11ylint/pkg/config"

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .a11ylint.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "recommended", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// RecommendedPack enables every rule at the severity it ships with.
func RecommendedPack() Pack {
	return Pack{
		Name:        "recommended",
		Description: "Every rule at its default severity",
		Rules: map[string]config.RuleConfig{
			"A11Y001": enabled("error"),   // img-alt
			"A11Y002": enabled("error"),   // focus-outline
			"A11Y003": enabled("warning"), // heading-order
			"A11Y004": enabled("error"),   // accessible-name
			"A11Y005": enabled("warning"), // link-href
			"A11Y006": enabled("error"),   // color-contrast
			"A11Y007": enabled("warning"), // table-headers
			"A11Y008": enabledDefault(),   // aria-role: severity varies per finding
			"A11Y009": enabled("error"),   // html-lang
			"A11Y010": enabled("warning"), // tabindex-positive
			"A11Y011": enabled("error"),   // duplicate-id
			"A11Y012": enabled("warning"), // landmark-main
		},
	}
}

// StrictPack turns every rule into an error and tightens the options that
// default to leniency.
func StrictPack() Pack {
	pack := Pack{
		Name:        "strict",
		Description: "Every rule as an error; decorative images must be marked and placeholder links are rejected",
		Rules: map[string]config.RuleConfig{
			"A11Y002": enabled("error"), // focus-outline
			"A11Y003": enabled("error"), // heading-order
			"A11Y004": enabled("error"), // accessible-name
			"A11Y006": enabled("error"), // color-contrast
			"A11Y007": enabled("error"), // table-headers
			"A11Y008": enabled("error"), // aria-role
			"A11Y009": enabled("error"), // html-lang
			"A11Y010": enabled("error"), // tabindex-positive
			"A11Y011": enabled("error"), // duplicate-id
			"A11Y012": enabled("error"), // landmark-main
		},
	}

	pack.Rules["A11Y001"] = withOptions(enabled("error"), map[string]any{"require_decorative_marker": true})
	pack.Rules["A11Y005"] = withOptions(enabled("error"), map[string]any{"allow_placeholder": false})

	return pack
}

// LegacyPack keeps only the checks that leave content unusable with a
// screen reader or keyboard, for adopting the linter on an existing site.
func LegacyPack() Pack {
	return Pack{
		Name:        "legacy",
		Description: "Legacy pack: only blocking issues (missing alt, names, language, hidden focus)",
		Rules: map[string]config.RuleConfig{
			"A11Y001": enabled("error"), // img-alt
			"A11Y002": enabled("error"), // focus-outline
			"A11Y004": enabled("error"), // accessible-name
			"A11Y009": enabled("error"), // html-lang
			"A11Y003": disabled(),       // heading-order
			"A11Y005": disabled(),       // link-href
			"A11Y007": disabled(),       // table-headers
			"A11Y010": disabled(),       // tabindex-positive
			"A11Y012": disabled(),       // landmark-main
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		RecommendedPack(),
		StrictPack(),
		LegacyPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev string) config.RuleConfig {
	enabled := true
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &sev,
	}
}

// enabledDefault enables a rule without overriding the severities it
// chooses per finding.
func enabledDefault() config.RuleConfig {
	enabled := true
	return config.RuleConfig{Enabled: &enabled}
}

func disabled() config.RuleConfig {
	enabled := false
	return config.RuleConfig{Enabled: &enabled}
}

func withOptions(rc config.RuleConfig, options map[string]any) config.RuleConfig {
	rc.Options = options
	return rc
}
