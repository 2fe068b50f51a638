package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
)

// EnvPrefix is the prefix of every environment variable the loader reads.
const EnvPrefix = "A11YLINT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envVar describes one supported variable.
type envVar struct {
	suffix      string
	typ         envFieldType
	description string
	apply       func(cfg *config.Config, v envValue)
}

// envValue holds a parsed variable value.
type envValue struct {
	s     string
	b     bool
	i     int
	slice []string
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"SEVERITY_DEFAULT", envTypeString, "Default severity: error, warning, or info",
		func(c *config.Config, v envValue) { c.SeverityDefault = v.s }},
	{"FORMAT", envTypeString, "Output format: text, table, json, sarif, diff, or summary",
		func(c *config.Config, v envValue) { c.Format = config.OutputFormat(v.s) }},
	{"RULE_FORMAT", envTypeString, "Rule identifiers in output: name, id, or combined",
		func(c *config.Config, v envValue) { c.RuleFormat = config.RuleFormat(v.s) }},
	{"FIX", envTypeBool, "Apply fixes: true or false",
		func(c *config.Config, v envValue) { c.Fix = v.b }},
	{"DRY_RUN", envTypeBool, "Show fixes as a diff without writing: true or false",
		func(c *config.Config, v envValue) { c.DryRun = v.b }},
	{"JOBS", envTypeInt, "Number of parallel file workers (0 = number of CPUs)",
		func(c *config.Config, v envValue) { c.Jobs = v.i }},
	{"PARALLEL_RULES", envTypeBool, "Run the rules of one file concurrently: true or false",
		func(c *config.Config, v envValue) { c.ParallelRules = v.b }},
	{"BACKUPS_ENABLED", envTypeBool, "Write backups before fixing: true or false",
		func(c *config.Config, v envValue) { c.Backups.Enabled = v.b }},
	{"BACKUPS_MODE", envTypeString, "Backup mode: sidecar or none",
		func(c *config.Config, v envValue) { c.Backups.Mode = v.s }},
	{"NO_BACKUPS", envTypeBool, "Disable backups: true or false",
		func(c *config.Config, v envValue) { c.NoBackups = v.b }},
	{"MARKDOWN_ENABLED", envTypeBool, "Lint HTML and CSS in Markdown files: true or false",
		func(c *config.Config, v envValue) { c.Markdown.Enabled = v.b }},
	{"MARKDOWN_DETECT_UNTAGGED", envTypeBool, "Sniff untagged fenced code blocks: true or false",
		func(c *config.Config, v envValue) { c.Markdown.DetectUntagged = v.b }},
	{"IGNORE", envTypeSlice, "Comma-separated glob patterns to ignore",
		func(c *config.Config, v envValue) { c.Ignore = v.slice }},
	{"EXTENSIONS", envTypeSlice, "Comma-separated file extensions to lint",
		func(c *config.Config, v envValue) { c.Extensions = v.slice }},
	{"ENABLE", envTypeSlice, "Comma-separated rules to enable",
		func(c *config.Config, v envValue) { c.EnableRules = v.slice }},
	{"DISABLE", envTypeSlice, "Comma-separated rules to disable",
		func(c *config.Config, v envValue) { c.DisableRules = v.slice }},
}

// LoadFromEnv applies A11YLINT_* environment variables to cfg.
// Empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, ev := range envVars {
		name := EnvPrefix + ev.suffix
		raw := getenv(name)
		if raw == "" {
			continue
		}

		value, err := parseEnvValue(ev.typ, raw)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
		ev.apply(cfg, value)
	}

	return nil
}

func parseEnvValue(typ envFieldType, raw string) (envValue, error) {
	switch typ {
	case envTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("%q is not a boolean (expected true/false/1/0)", raw)
		}
		return envValue{b: b}, nil
	case envTypeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return envValue{}, fmt.Errorf("%q is not an integer", raw)
		}
		return envValue{i: i}, nil
	case envTypeSlice:
		return envValue{slice: parseSliceValue(raw)}, nil
	default:
		return envValue{s: strings.TrimSpace(raw)}, nil
	}
}

// parseSliceValue splits a comma-separated list, trimming and dropping
// empty elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for _, ev := range envVars {
		out[EnvPrefix+ev.suffix] = ev.description
	}
	return out
}

// EnvVarNames returns the supported variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envVars))
	for _, ev := range envVars {
		names = append(names, EnvPrefix+ev.suffix)
	}
	slices.Sort(names)
	return names
}
