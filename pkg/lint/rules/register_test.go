package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	wantIDs := []string{
		"A11Y001", "A11Y002", "A11Y003", "A11Y004", "A11Y005", "A11Y006",
		"A11Y007", "A11Y008", "A11Y009", "A11Y010", "A11Y011", "A11Y012",
	}
	assert.Equal(t, wantIDs, registry.IDs())

	names := make(map[string]bool)
	for _, rule := range registry.Rules() {
		assert.NotEmpty(t, rule.Name(), rule.ID())
		assert.NotEmpty(t, rule.Description(), rule.ID())
		assert.NotEmpty(t, rule.Tags(), rule.ID())
		assert.True(t, rule.DefaultEnabled(), rule.ID())
		assert.False(t, names[rule.Name()], "duplicate rule name %q", rule.Name())
		names[rule.Name()] = true
	}
}

func TestFixableRules(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	var fixable []string
	for _, rule := range registry.Rules() {
		if rule.CanFix() {
			fixable = append(fixable, rule.ID())
		}
	}
	assert.Equal(t, []string{"A11Y008", "A11Y009"}, fixable)
}

func TestRegisterAxeAliases(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterAxeAliases(registry)

	tests := []struct {
		alias string
		want  string
	}{
		{"image-alt", "A11Y001"},
		{"button-name", "A11Y004"},
		{"link-name", "A11Y004"},
		{"aria-allowed-role", "A11Y008"},
		{"html-has-lang", "A11Y009"},
		{"landmark-one-main", "A11Y012"},
		{"color-contrast", "A11Y006"},
		{"A11Y010", "A11Y010"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			id, rule, ok := registry.Resolve(tt.alias)
			require.True(t, ok)
			assert.Equal(t, tt.want, id)
			assert.Equal(t, tt.want, rule.ID())
		})
	}
}

func TestRuleOptionDefaults(t *testing.T) {
	registry := lint.NewRegistry()
	RegisterAll(registry)

	withOptions := map[string][]string{
		"A11Y001": {"require_decorative_marker", "skip_hidden"},
		"A11Y003": {"allow_multiple_h1"},
		"A11Y005": {"allow_placeholder"},
		"A11Y006": {"large_text_pt", "large_bold_text_pt"},
		"A11Y009": {"default_lang", "validate_tags"},
	}

	for _, rule := range registry.Rules() {
		defaulter, ok := rule.(lint.OptionDefaulter)
		keys, want := withOptions[rule.ID()]
		require.Equal(t, want, ok, "%s implements OptionDefaulter", rule.ID())
		if !ok {
			continue
		}

		opts := defaulter.DefaultOptions()
		for _, key := range keys {
			assert.Contains(t, opts, key, rule.ID())
		}
	}
}

func TestDefaultRegistryPopulated(t *testing.T) {
	rule, ok := lint.DefaultRegistry.Get("img-alt")
	require.True(t, ok)
	assert.Equal(t, "A11Y001", rule.ID())
}
