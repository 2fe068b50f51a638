package rules

import (
	"testing"

	"github.com/yaklabco/a11ylint/pkg/lint"
)

func TestPacks(t *testing.T) {
	packs := Packs()

	expectedCount := 3
	if len(packs) != expectedCount {
		t.Errorf("got %d packs, want %d", len(packs), expectedCount)
	}

	registry := lint.NewRegistry()
	RegisterAll(registry)

	for _, pack := range packs {
		if pack.Name == "" {
			t.Error("pack has empty name")
		}
		if pack.Description == "" {
			t.Errorf("pack %q has empty description", pack.Name)
		}
		if len(pack.Rules) == 0 {
			t.Errorf("pack %q has no rules", pack.Name)
		}

		for ruleID, cfg := range pack.Rules {
			if _, ok := registry.GetByID(ruleID); !ok {
				t.Errorf("pack %q references unknown rule %q", pack.Name, ruleID)
			}
			if cfg.Enabled == nil {
				t.Errorf("pack %q rule %q has nil Enabled", pack.Name, ruleID)
			}
		}
	}
}

func TestPackByName(t *testing.T) {
	tests := []struct {
		name  string
		want  bool
		rules int
	}{
		{"recommended", true, 12},
		{"strict", true, 12},
		{"legacy", true, 9},
		{"nonexistent", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack := PackByName(tt.name)
			if tt.want {
				if pack == nil {
					t.Errorf("PackByName(%q) returned nil, want pack", tt.name)
					return
				}
				if pack.Name != tt.name {
					t.Errorf("pack.Name = %q, want %q", pack.Name, tt.name)
				}
				if len(pack.Rules) != tt.rules {
					t.Errorf("pack %q has %d rules, want %d", tt.name, len(pack.Rules), tt.rules)
				}
			} else if pack != nil {
				t.Errorf("PackByName(%q) returned pack, want nil", tt.name)
			}
		})
	}
}

func TestPackNames(t *testing.T) {
	names := PackNames()

	expected := []string{"recommended", "strict", "legacy"}
	if len(names) != len(expected) {
		t.Fatalf("got %d names, want %d", len(names), len(expected))
	}

	for i, name := range expected {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestRecommendedPackLeavesAriaRoleSeverity(t *testing.T) {
	pack := RecommendedPack()

	cfg, ok := pack.Rules["A11Y008"]
	if !ok {
		t.Fatal("recommended pack missing A11Y008")
	}
	if cfg.Severity != nil {
		t.Errorf("A11Y008 severity = %q, want unset so per-finding severities survive", *cfg.Severity)
	}
}

func TestStrictPack(t *testing.T) {
	pack := StrictPack()

	for ruleID, cfg := range pack.Rules {
		if cfg.Severity == nil || *cfg.Severity != "error" {
			t.Errorf("strict pack rule %q should be an error", ruleID)
		}
	}

	if marker, _ := pack.Rules["A11Y001"].Options["require_decorative_marker"].(bool); !marker {
		t.Error("strict pack should require decorative markers on empty alt")
	}
}

func TestLegacyPack(t *testing.T) {
	pack := LegacyPack()

	for _, ruleID := range []string{"A11Y001", "A11Y004", "A11Y009"} {
		cfg := pack.Rules[ruleID]
		if cfg.Enabled == nil || !*cfg.Enabled {
			t.Errorf("legacy pack should keep %q enabled", ruleID)
		}
	}

	cfg := pack.Rules["A11Y012"]
	if cfg.Enabled == nil || *cfg.Enabled {
		t.Error("legacy pack should disable landmark-main")
	}
}
