package configloader

import (
	"testing"

	"github.com/yaklabco/a11ylint/pkg/config"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Rules = map[string]config.RuleConfig{
		"A11Y006": {Severity: ptr("warning"), Options: map[string]any{"large_text_pt": 18.0}},
	}
	base.Ignore = []string{"dist/**"}

	override := &config.Config{
		Format: config.FormatJSON,
		Rules: map[string]config.RuleConfig{
			"A11Y006": {Options: map[string]any{"extra": true}},
			"A11Y012": {Enabled: ptr(true)},
		},
	}

	got := merge(base, override)

	if got.Format != config.FormatJSON {
		t.Errorf("Format = %q", got.Format)
	}
	if got.SeverityDefault != base.SeverityDefault {
		t.Errorf("zero SeverityDefault should not override: %q", got.SeverityDefault)
	}
	if len(got.Ignore) != 1 {
		t.Errorf("nil Ignore should not override: %v", got.Ignore)
	}
	if !got.Backups.Enabled {
		t.Error("false flag booleans should not switch settings off")
	}

	contrast := got.Rules["A11Y006"]
	if contrast.Severity == nil || *contrast.Severity != "warning" {
		t.Errorf("severity lost in deep merge: %+v", contrast)
	}
	if len(contrast.Options) != 2 {
		t.Errorf("options = %v, want both keys", contrast.Options)
	}
	if len(base.Rules["A11Y006"].Options) != 1 {
		t.Error("merge mutated the base options map")
	}
	if _, ok := got.Rules["A11Y012"]; !ok {
		t.Error("new rule entry missing")
	}
}

func TestApplyFile_ExplicitFalse(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	file := &fileConfig{}
	file.Backups.Enabled = ptr(false)
	file.Markdown.DetectUntagged = ptr(false)

	applyFile(cfg, file)

	if cfg.Backups.Enabled {
		t.Error("backups.enabled: false not applied")
	}
	if cfg.Markdown.DetectUntagged {
		t.Error("markdown.detect_untagged: false not applied")
	}
	if !cfg.Markdown.Enabled {
		t.Error("absent markdown.enabled changed")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	if MergeAll() != nil {
		t.Error("MergeAll() of nothing should be nil")
	}

	got := MergeAll(config.NewConfig(), &config.Config{Jobs: 2}, &config.Config{Jobs: 5})
	if got.Jobs != 5 {
		t.Errorf("Jobs = %d, want 5", got.Jobs)
	}
}
