package lint

import "github.com/yaklabco/a11ylint/pkg/config"

// BaseRule carries the catalog metadata every accessibility check shares:
// the A11Y identifier, its kebab-case name, WCAG and topic tags, and whether
// it can rewrite markup. Rules embed it and supply Apply.
type BaseRule struct {
	id       string
	name     string
	desc     string
	tags     []string
	fixable  bool
	severity config.Severity
}

// NewBaseRule describes a check. Until WithSeverity is applied its findings
// take the configured severity_default.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

// WithSeverity pins the severity the check reports at when the user has not
// configured one.
func (r BaseRule) WithSeverity(severity config.Severity) BaseRule {
	r.severity = severity
	return r
}

func (r *BaseRule) ID() string { return r.id }

func (r *BaseRule) Name() string { return r.name }

func (r *BaseRule) Description() string { return r.desc }

// DefaultEnabled is true: every registered check runs unless a pack or the
// user turns it off.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

func (r *BaseRule) DefaultSeverity() config.Severity { return r.severity }

func (r *BaseRule) Tags() []string { return r.tags }

func (r *BaseRule) CanFix() bool { return r.fixable }

// Apply finds nothing; concrete checks replace it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
