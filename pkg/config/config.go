// Package config defines core configuration types for a11ylint.
// These types are plain data with no dependency on the loader that fills them.
package config

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities so that errors sort before warnings and infos.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Severity *string        `mapstructure:"severity" yaml:"severity,omitempty"`
	AutoFix  *bool          `mapstructure:"auto_fix" yaml:"auto_fix,omitempty"`
	Options  map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// MarkdownConfig controls how HTML and CSS embedded in Markdown files is checked.
type MarkdownConfig struct {
	// Enabled turns on linting of .md/.markdown files.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// DetectUntagged sniffs fenced code blocks with no info string for HTML or CSS.
	DetectUntagged bool `mapstructure:"detect_untagged" yaml:"detect_untagged"`
}

// OutputFormat specifies the output format for findings.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "img-alt"
	RuleFormatID       RuleFormat = "id"       // "A11Y001"
	RuleFormatCombined RuleFormat = "combined" // "A11Y001/img-alt"
)

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderRules shows rules table first (default).
	SummaryOrderRules SummaryOrder = "rules"
	// SummaryOrderFiles shows files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderRules, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for a11ylint.
type Config struct {
	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Extensions overrides the set of file extensions that are linted.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Markdown configures checking of markup embedded in Markdown documents.
	Markdown MarkdownConfig `mapstructure:"markdown" yaml:"markdown"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `mapstructure:"-" yaml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel file workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// ParallelRules evaluates the rules for a single file concurrently.
	ParallelRules bool `mapstructure:"-" yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `mapstructure:"-" yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Ignore:          nil,
		Markdown: MarkdownConfig{
			Enabled:        true,
			DetectUntagged: true,
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format:     FormatText,
		RuleFormat: RuleFormatName,
		Jobs:       0, // 0 means use NumCPU
	}
}
