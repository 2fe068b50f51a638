package rules

import "github.com/yaklabco/a11ylint/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Markup
	registry.Register(NewImgAltRule())           // A11Y001
	registry.Register(NewHeadingOrderRule())     // A11Y003
	registry.Register(NewAccessibleNameRule())   // A11Y004
	registry.Register(NewLinkHrefRule())         // A11Y005
	registry.Register(NewTableHeadersRule())     // A11Y007
	registry.Register(NewAriaRoleRule())         // A11Y008
	registry.Register(NewHTMLLangRule())         // A11Y009
	registry.Register(NewTabindexPositiveRule()) // A11Y010
	registry.Register(NewDuplicateIDRule())      // A11Y011
	registry.Register(NewLandmarkMainRule())     // A11Y012

	// Styles
	registry.Register(NewFocusOutlineRule())  // A11Y002
	registry.Register(NewColorContrastRule()) // A11Y006
}

// RegisterAxeAliases registers the axe-core rule names that map onto a
// built-in rule, so configuration written for axe can be reused.
// Several axe checks fold into one rule here, e.g. label, button-name and
// link-name all map to accessible-name (A11Y004).
func RegisterAxeAliases(registry *lint.Registry) {
	aliases := []struct{ alias, ruleID string }{
		{"image-alt", "A11Y001"},
		{"input-image-alt", "A11Y001"},
		{"area-alt", "A11Y001"},
		{"outline-none", "A11Y002"},
		{"heading-levels", "A11Y003"},
		{"page-has-heading-one", "A11Y003"},
		{"label", "A11Y004"},
		{"button-name", "A11Y004"},
		{"link-name", "A11Y004"},
		{"select-name", "A11Y004"},
		{"td-headers-attr", "A11Y007"},
		{"th-has-data-cells", "A11Y007"},
		{"aria-roles", "A11Y008"},
		{"aria-allowed-role", "A11Y008"},
		{"html-has-lang", "A11Y009"},
		{"html-lang-valid", "A11Y009"},
		{"tabindex", "A11Y010"},
		{"landmark-one-main", "A11Y012"},
	}
	for _, a := range aliases {
		registry.RegisterAlias(a.alias, a.ruleID)
	}
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAxeAliases(lint.DefaultRegistry)
}
