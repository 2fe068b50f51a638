package lint_test

import (
	"context"
	"testing"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

const defaultTestValue = "default"

func TestNewRuleContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	doc := dom.NewDocument("index.html", []byte("<p>Hello</p>"), dom.SourceHTML)
	cfg := config.NewConfig()
	ruleCfg := &config.RuleConfig{
		Options: map[string]any{"key": "value"},
	}

	rc := lint.NewRuleContext(ctx, doc, cfg, ruleCfg)

	if rc.Ctx != ctx {
		t.Error("Ctx mismatch")
	}
	if rc.Doc != doc {
		t.Error("Doc mismatch")
	}
	if rc.Root != doc.Root {
		t.Error("Root should equal Doc.Root")
	}
	if rc.Config != cfg {
		t.Error("Config mismatch")
	}
	if rc.RuleConfig != ruleCfg {
		t.Error("RuleConfig mismatch")
	}
	if rc.Builder == nil {
		t.Error("Builder should be initialized")
	}
}

func TestNewRuleContext_NilDoc(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil)

	if rc.Root != nil {
		t.Error("Root should be nil when Doc is nil")
	}
	if rc.Index() == nil {
		t.Error("Index should be usable without a document")
	}
}

func TestRuleContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rc := lint.NewRuleContext(ctx, nil, nil, nil)

	if rc.Cancelled() {
		t.Error("should not be cancelled yet")
	}
	cancel()
	if !rc.Cancelled() {
		t.Error("should be cancelled")
	}
}

func TestRuleContext_IndexIsCached(t *testing.T) {
	t.Parallel()

	doc := parseHTML(t, `<img src="a.png"><img src="b.png">`)
	rc := lint.NewRuleContext(context.Background(), doc, nil, nil)

	first := rc.Index()
	if first != rc.Index() {
		t.Error("Index should be built once")
	}
	if got := len(first.Elements("img")); got != 2 {
		t.Errorf("expected 2 images, got %d", got)
	}
}

func TestRuleContext_Option(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ruleCfg *config.RuleConfig
		key     string
		want    any
	}{
		{name: "nil rule config", ruleCfg: nil, key: "k", want: defaultTestValue},
		{name: "nil options", ruleCfg: &config.RuleConfig{}, key: "k", want: defaultTestValue},
		{name: "missing key", ruleCfg: &config.RuleConfig{Options: map[string]any{"other": 1}}, key: "k", want: defaultTestValue},
		{name: "present key", ruleCfg: &config.RuleConfig{Options: map[string]any{"k": "set"}}, key: "k", want: "set"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rc := lint.NewRuleContext(context.Background(), nil, nil, testCase.ruleCfg)
			if got := rc.Option(testCase.key, defaultTestValue); got != testCase.want {
				t.Errorf("Option() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestRuleContext_OptionInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{name: "int", value: 3, want: 3},
		{name: "float64 from JSON", value: 4.0, want: 4},
		{name: "wrong type", value: "five", want: 9},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rc := lint.NewRuleContext(context.Background(), nil, nil,
				&config.RuleConfig{Options: map[string]any{"n": testCase.value}})
			if got := rc.OptionInt("n", 9); got != testCase.want {
				t.Errorf("OptionInt() = %d, want %d", got, testCase.want)
			}
		})
	}
}

func TestRuleContext_OptionFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{name: "float64", value: 18.5, want: 18.5},
		{name: "int from YAML", value: 18, want: 18},
		{name: "numeric string", value: "14", want: 14},
		{name: "garbage string", value: "big", want: 14},
		{name: "bool", value: true, want: 14},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rc := lint.NewRuleContext(context.Background(), nil, nil,
				&config.RuleConfig{Options: map[string]any{"large_text_pt": testCase.value}})
			if got := rc.OptionFloat("large_text_pt", 14); got != testCase.want {
				t.Errorf("OptionFloat() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestRuleContext_OptionStringAndBool(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, &config.RuleConfig{
		Options: map[string]any{
			"lang":      "en",
			"strict":    true,
			"wrongBool": "yes",
			"wrongStr":  42,
		},
	})

	if got := rc.OptionString("lang", ""); got != "en" {
		t.Errorf("OptionString(lang) = %q", got)
	}
	if got := rc.OptionString("wrongStr", defaultTestValue); got != defaultTestValue {
		t.Errorf("OptionString(wrongStr) = %q", got)
	}
	if !rc.OptionBool("strict", false) {
		t.Error("OptionBool(strict) should be true")
	}
	if rc.OptionBool("wrongBool", false) {
		t.Error("OptionBool(wrongBool) should fall back to default")
	}
}

func TestRuleContext_OptionStringSlice(t *testing.T) {
	t.Parallel()

	defaults := []string{"x"}

	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "string slice", value: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "any slice from YAML", value: []any{"a", 1, "b"}, want: []string{"a", "b"}},
		{name: "empty any slice", value: []any{1}, want: defaults},
		{name: "wrong type", value: "a", want: defaults},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rc := lint.NewRuleContext(context.Background(), nil, nil,
				&config.RuleConfig{Options: map[string]any{"roles": testCase.value}})
			got := rc.OptionStringSlice("roles", defaults)
			if len(got) != len(testCase.want) {
				t.Fatalf("OptionStringSlice() = %v, want %v", got, testCase.want)
			}
			for i := range got {
				if got[i] != testCase.want[i] {
					t.Errorf("OptionStringSlice()[%d] = %q, want %q", i, got[i], testCase.want[i])
				}
			}
		})
	}
}
