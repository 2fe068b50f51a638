package cli_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/a11ylint/internal/cli"
)

func TestLintCommand_FlagDefaults(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	lintCmd, _, err := cmd.Find([]string{"lint"})
	if err != nil {
		t.Fatalf("lint command not found: %v", err)
	}

	tests := []struct {
		flag string
		want string
	}{
		{flag: "rule-format", want: "name"},
		{flag: "summary-order", want: "rules"},
		{flag: "format", want: "text"},
		{flag: "jobs", want: "0"},
		{flag: "parallel-rules", want: "false"},
		{flag: "strict", want: "false"},
	}

	for _, testCase := range tests {
		flag := lintCmd.Flags().Lookup(testCase.flag)
		if flag == nil {
			t.Errorf("flag %q not found", testCase.flag)
			continue
		}
		if flag.DefValue != testCase.want {
			t.Errorf("--%s default = %q, want %q", testCase.flag, flag.DefValue, testCase.want)
		}
	}
}

func TestLintCommand_FormatUsageListsFormats(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	lintCmd, _, err := cmd.Find([]string{"lint"})
	if err != nil {
		t.Fatalf("lint command not found: %v", err)
	}

	usage := lintCmd.Flags().Lookup("format").Usage
	for _, format := range []string{"text", "table", "json", "sarif", "diff", "summary"} {
		if !strings.Contains(usage, format) {
			t.Errorf("--format usage %q does not mention %q", usage, format)
		}
	}
}
