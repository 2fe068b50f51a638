package configloader

import (
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/a11ylint/pkg/config"
)

func ptr[T any](v T) *T { return &v }

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		mutate       func(cfg *config.Config)
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*config.Config) {},
		},
		{
			name:       "unknown format",
			mutate:     func(cfg *config.Config) { cfg.Format = "xml" },
			wantErrors: []string{"format"},
		},
		{
			name:   "table format is accepted",
			mutate: func(cfg *config.Config) { cfg.Format = config.FormatTable },
		},
		{
			name:       "unknown rule format",
			mutate:     func(cfg *config.Config) { cfg.RuleFormat = "short" },
			wantErrors: []string{"rule_format"},
		},
		{
			name:       "negative jobs",
			mutate:     func(cfg *config.Config) { cfg.Jobs = -1 },
			wantErrors: []string{"jobs"},
		},
		{
			name: "unknown rule warns",
			mutate: func(cfg *config.Config) {
				cfg.Rules = map[string]config.RuleConfig{"A11Y999": {Enabled: ptr(true)}}
			},
			wantWarnings: []string{"rules.A11Y999"},
		},
		{
			name: "integer accepted for float option",
			mutate: func(cfg *config.Config) {
				cfg.Rules = map[string]config.RuleConfig{
					"A11Y006": {Options: map[string]any{"large_text_pt": 18}},
				}
			},
		},
		{
			name: "string for bool option",
			mutate: func(cfg *config.Config) {
				cfg.Rules = map[string]config.RuleConfig{
					"A11Y003": {Options: map[string]any{"allow_multiple_h1": "yes"}},
				}
			},
			wantErrors: []string{"rules.A11Y003.options.allow_multiple_h1"},
		},
		{
			name: "unknown option warns",
			mutate: func(cfg *config.Config) {
				cfg.Rules = map[string]config.RuleConfig{
					"A11Y009": {Options: map[string]any{"lang": "en"}},
				}
			},
			wantWarnings: []string{"rules.A11Y009.options.lang"},
		},
		{
			name: "options on a rule without options",
			mutate: func(cfg *config.Config) {
				cfg.Rules = map[string]config.RuleConfig{
					"A11Y010": {Options: map[string]any{"max": 0}},
				}
			},
			wantWarnings: []string{"rules.A11Y010.options"},
		},
		{
			name: "auto_fix on a rule with no fixes",
			mutate: func(cfg *config.Config) {
				cfg.Rules = map[string]config.RuleConfig{"A11Y006": {AutoFix: ptr(true)}}
			},
			wantWarnings: []string{"rules.A11Y006.auto_fix"},
		},
		{
			name:         "extension without dot",
			mutate:       func(cfg *config.Config) { cfg.Extensions = []string{".html", "css"} },
			wantWarnings: []string{"extensions[1]"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			testCase.mutate(cfg)

			result := ValidateWithRegistry(cfg, testRegistry())

			if got := fields(result.Errors); !slices.Equal(got, testCase.wantErrors) {
				t.Errorf("error fields = %v, want %v", got, testCase.wantErrors)
			}
			if got := fields(result.Warnings); !slices.Equal(got, testCase.wantWarnings) {
				t.Errorf("warning fields = %v, want %v", got, testCase.wantWarnings)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{
		Field:    "rules.A11Y006.severity",
		Message:  `invalid severity "loud"`,
		FilePath: ".a11ylint.yml",
		Line:     4,
	}
	want := `.a11ylint.yml:4: rules.A11Y006.severity: invalid severity "loud"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationResult_AllMessages(t *testing.T) {
	t.Parallel()

	result := &ValidationResult{}
	result.errorf("format", "xml", "bad format")
	result.warnf("rules.X", "X", "unknown rule")

	messages := result.AllMessages()
	if len(messages) != 2 {
		t.Fatalf("AllMessages() = %v", messages)
	}
	if !strings.HasPrefix(messages[0], "error: ") || !strings.HasPrefix(messages[1], "warning: ") {
		t.Errorf("AllMessages() = %v, want errors before warnings", messages)
	}
	if result.Valid() || !result.HasWarnings() {
		t.Error("Valid/HasWarnings disagree with contents")
	}
}

func TestIsValidHelpers(t *testing.T) {
	t.Parallel()

	if !IsValidSeverity("info") || IsValidSeverity("fatal") {
		t.Error("IsValidSeverity")
	}
	if !IsValidFormat(config.FormatSARIF) || IsValidFormat("xml") {
		t.Error("IsValidFormat")
	}
	if !IsValidBackupMode("sidecar") || IsValidBackupMode("cloud") {
		t.Error("IsValidBackupMode")
	}
}

func fields(errs []ValidationError) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}
