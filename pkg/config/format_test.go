package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/a11ylint/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "A11Y001", "img-alt", "img-alt"},
		{"id format", config.RuleFormatID, "A11Y001", "img-alt", "A11Y001"},
		{"combined format", config.RuleFormatCombined, "A11Y001", "img-alt", "A11Y001/img-alt"},
		{"name format empty name", config.RuleFormatName, "A11Y001", "", "A11Y001"},
		{"default to name", config.RuleFormat(""), "A11Y001", "img-alt", "img-alt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleFormatIsValid(t *testing.T) {
	assert.True(t, config.RuleFormatName.IsValid())
	assert.True(t, config.RuleFormatCombined.IsValid())
	assert.False(t, config.RuleFormat("short").IsValid())
}

func TestSeverityRank(t *testing.T) {
	assert.Less(t, config.SeverityError.Rank(), config.SeverityWarning.Rank())
	assert.Less(t, config.SeverityWarning.Rank(), config.SeverityInfo.Rank())
	assert.Less(t, config.SeverityInfo.Rank(), config.Severity("bogus").Rank())
}
