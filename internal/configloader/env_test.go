package configloader

import (
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/a11ylint/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, cfg *config.Config)
		wantErr string
	}{
		{
			name: "scalars",
			env: map[string]string{
				"A11YLINT_SEVERITY_DEFAULT": " error ",
				"A11YLINT_FORMAT":           "table",
				"A11YLINT_RULE_FORMAT":      "combined",
				"A11YLINT_JOBS":             "4",
			},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				if cfg.SeverityDefault != "error" || cfg.Format != config.FormatTable ||
					cfg.RuleFormat != config.RuleFormatCombined || cfg.Jobs != 4 {
					t.Errorf("scalars not applied: %+v", cfg)
				}
			},
		},
		{
			name: "booleans switch both ways",
			env: map[string]string{
				"A11YLINT_BACKUPS_ENABLED":  "false",
				"A11YLINT_MARKDOWN_ENABLED": "0",
				"A11YLINT_FIX":              "true",
			},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				if cfg.Backups.Enabled || cfg.Markdown.Enabled || !cfg.Fix {
					t.Errorf("booleans not applied: backups=%v markdown=%v fix=%v",
						cfg.Backups.Enabled, cfg.Markdown.Enabled, cfg.Fix)
				}
			},
		},
		{
			name: "lists drop blanks",
			env: map[string]string{
				"A11YLINT_IGNORE":     "dist/**, ,vendor/**,",
				"A11YLINT_EXTENSIONS": ".html,.css",
			},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				if !slices.Equal(cfg.Ignore, []string{"dist/**", "vendor/**"}) {
					t.Errorf("Ignore = %v", cfg.Ignore)
				}
				if !slices.Equal(cfg.Extensions, []string{".html", ".css"}) {
					t.Errorf("Extensions = %v", cfg.Extensions)
				}
			},
		},
		{
			name:    "bad boolean",
			env:     map[string]string{"A11YLINT_DRY_RUN": "maybe"},
			wantErr: "invalid value for A11YLINT_DRY_RUN",
		},
		{
			name:    "bad integer",
			env:     map[string]string{"A11YLINT_JOBS": "two"},
			wantErr: "invalid value for A11YLINT_JOBS",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			err := loadFromEnv(cfg, func(name string) string { return testCase.env[name] })

			if testCase.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), testCase.wantErr) {
					t.Fatalf("error = %v, want %q", err, testCase.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadFromEnv() error = %v", err)
			}
			testCase.check(t, cfg)
		})
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	names := EnvVarNames()
	if !slices.IsSorted(names) {
		t.Error("EnvVarNames() not sorted")
	}
	for _, name := range names {
		if !strings.HasPrefix(name, EnvPrefix) {
			t.Errorf("%q lacks prefix %q", name, EnvPrefix)
		}
	}
	if len(ListEnvVars()) != len(names) {
		t.Error("ListEnvVars and EnvVarNames disagree")
	}
}
