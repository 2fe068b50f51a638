package lint

import (
	"context"
	"strconv"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/fix"
)

// RuleContext provides all context needed by a rule to perform checks.
//
// RuleContext stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per rule invocation. Rules check
// Cancelled() between nodes.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Doc is the parsed document. Rules must not mutate it.
	Doc *dom.Document

	// Root is the tree root (convenience alias for Doc.Root).
	Root *dom.Node

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Builder accumulates text edits for auto-fix.
	Builder *fix.EditBuilder

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	// index is shared between rules for the same document.
	index *DocIndex
}

// NewRuleContext creates a RuleContext for the given document and configuration.
func NewRuleContext(
	ctx context.Context,
	doc *dom.Document,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *dom.Node
	if doc != nil {
		root = doc.Root
	}

	return &RuleContext{
		Ctx:        ctx,
		Doc:        doc,
		Root:       root,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Builder:    fix.NewEditBuilder(),
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Index returns the element index for the document, building it on first use.
func (rc *RuleContext) Index() *DocIndex {
	if rc.index == nil {
		rc.index = NewDocIndex(rc.Doc)
	}
	return rc.index
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionFloat returns a rule-specific numeric option, or the default.
func (rc *RuleContext) OptionFloat(key string, defaultValue float64) float64 {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// Handle []any from YAML/JSON parsing
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
