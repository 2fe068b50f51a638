package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/fix"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/parser"
)

// runRule parses src as path and applies rule with the given options.
func runRule(t *testing.T, rule lint.Rule, path, src string, options map[string]any) ([]lint.Diagnostic, error) {
	t.Helper()

	router := parser.New(parser.Options{Markdown: true, DetectUntagged: true})
	doc, err := router.Parse(context.Background(), path, []byte(src))
	require.NoError(t, err)

	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}

	ruleCtx := lint.NewRuleContext(context.Background(), doc, config.NewConfig(), ruleCfg)
	return rule.Apply(ruleCtx)
}

// mustRunRule is runRule for rules that are expected not to fail.
func mustRunRule(t *testing.T, rule lint.Rule, path, src string, options map[string]any) []lint.Diagnostic {
	t.Helper()

	diags, err := runRule(t, rule, path, src, options)
	require.NoError(t, err)
	return diags
}

// applyFixes applies every fix edit carried by diags to src.
func applyFixes(t *testing.T, src string, diags []lint.Diagnostic) string {
	t.Helper()

	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	plan, err := fix.Prepare(edits, len(src))
	require.NoError(t, err)
	return string(fix.ApplyEdits([]byte(src), plan.Accepted))
}

func messages(diags []lint.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}
