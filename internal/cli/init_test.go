package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/a11ylint/internal/cli"
	"github.com/yaklabco/a11ylint/internal/configloader"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// loadGenerated loads path the way lint would, ignoring every other layer.
func loadGenerated(t *testing.T, path string) *configloader.LoadResult {
	t.Helper()

	result, err := configloader.Load(context.Background(), configloader.LoadOptions{
		WorkingDir:          filepath.Dir(path),
		ExplicitPath:        path,
		IgnoreSystemConfig:  true,
		IgnoreUserConfig:    true,
		IgnoreProjectConfig: true,
		IgnoreEnv:           true,
		Registry:            lint.DefaultRegistry,
	})
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if len(result.Warnings) > 0 {
		t.Errorf("generated config has warnings: %v", result.Warnings)
	}
	return result
}

func TestInitCommand_Templates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		contains  []string
		checkRule func(t *testing.T, cfg *config.Config)
	}{
		{
			name:     "minimal",
			contains: []string{"# rules:", "large_text_pt"},
		},
		{
			name:     "full",
			args:     []string{"--full"},
			contains: []string{"A11Y001:", "A11Y012:", "large_text_pt: 18", "large_bold_text_pt: 14", "Auto-fix: yes"},
			checkRule: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				if len(cfg.Rules) != 12 {
					t.Errorf("full template configures %d rules, want 12", len(cfg.Rules))
				}
			},
		},
		{
			name:     "legacy pack",
			args:     []string{"--pack", "legacy"},
			contains: []string{"legacy pack"},
			checkRule: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				if len(cfg.Rules) == 0 {
					t.Error("pack template configures no rules")
				}
			},
		},
		{
			name:     "strict pack",
			args:     []string{"--pack", "strict"},
			contains: []string{"strict pack", "require_decorative_marker: true"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "a11ylint.yml")

			args := append([]string{"init", "--output", path}, testCase.args...)
			if _, err := execute(t, args...); err != nil {
				t.Fatalf("init failed: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read generated config: %v", err)
			}
			for _, want := range testCase.contains {
				if !strings.Contains(string(data), want) {
					t.Errorf("generated config missing %q:\n%s", want, data)
				}
			}

			result := loadGenerated(t, path)
			if testCase.checkRule != nil {
				testCase.checkRule(t, result.Config)
			}
		})
	}
}

func TestInitCommand_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		setup func(t *testing.T, path string)
	}{
		{
			name: "existing file",
			setup: func(t *testing.T, path string) {
				t.Helper()
				if err := os.WriteFile(path, []byte("format: json\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{name: "unknown pack", args: []string{"--pack", "everything"}},
		{name: "full with pack", args: []string{"--full", "--pack", "strict"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), ".a11ylint.yml")
			if testCase.setup != nil {
				testCase.setup(t, path)
			}

			args := append([]string{"init", "--output", path}, testCase.args...)
			_, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := cli.ExitCode(err); code != cli.ExitInvalidUsage {
				t.Errorf("ExitCode() = %d, want %d (err: %v)", code, cli.ExitInvalidUsage, err)
			}
		})
	}
}

func TestInitCommand_Force(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".a11ylint.yml")
	if err := os.WriteFile(path, []byte("format: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "init", "--force", "--output", path); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "format: json\n" {
		t.Error("init --force did not overwrite the file")
	}
}
