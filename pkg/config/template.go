package config

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule in Rules. If false, a short commented template is produced.
	Full bool

	// Rules describes the registered rules. Only used when Full is set.
	Rules []RuleInfo
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool

	// Options holds the rule's tunable options and their defaults.
	Options map[string]any
}

const templateHeader = `# a11ylint configuration
# Checks HTML and CSS (including markup embedded in Markdown) for accessibility issues.
`

const templateCommon = `
# Default severity for rules that do not set one: error, warning, or info
severity_default: warning

# File patterns to ignore (doublestar glob patterns, relative to the working directory)
ignore:
  - "node_modules/**"
  - "vendor/**"

# Lint HTML and CSS found in Markdown files
markdown:
  enabled: true
  # Sniff untagged fenced code blocks for HTML or CSS
  detect_untagged: true

# Backups written next to a file before --fix modifies it
backups:
  enabled: true
  mode: sidecar
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	buf.WriteString(templateCommon)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration, keyed by rule ID or name
# rules:
#   img-alt:
#     severity: error
#   color-contrast:
#     options:
#       large_text_pt: 18
`)
		return buf.Bytes()
	}

	buf.WriteString("\nrules:\n")

	rules := slices.Clone(opts.Rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		if rule.Severity != "" {
			fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
		}

		if len(rule.Options) == 0 {
			continue
		}
		buf.WriteString("    options:\n")
		keys := make([]string, 0, len(rule.Options))
		for key := range rule.Options {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			fmt.Fprintf(&buf, "      %s: %s\n", key, formatOptionValue(rule.Options[key]))
		}
	}

	return buf.Bytes()
}

func formatOptionValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}
