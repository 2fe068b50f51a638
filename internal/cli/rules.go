package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/a11ylint/internal/logging"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	tag        string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags"`
	Aliases     []string `json:"aliases"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available accessibility rules",
		Long: `List all available rules with their IDs, names, descriptions, default
severity, tags, axe-core style aliases, and whether they can fix what they find.

Any of a rule's ID, name, alias or tag can be used in --enable, --disable and
the rules section of a config file.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.format != "text" && flags.format != formatJSON {
				return usageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}
			ruleFormat := config.RuleFormat(flags.ruleFormat)
			if !ruleFormat.IsValid() {
				return usageError(fmt.Errorf("invalid --rule-format %q: must be name, id or combined", flags.ruleFormat))
			}

			registry := lint.DefaultRegistry
			rules := registry.Rules()
			if flags.tag != "" {
				rules = registry.WithTag(flags.tag)
			}

			if flags.format == formatJSON {
				return outputRulesJSON(cmd.OutOrStdout(), registry, rules)
			}

			logger := logging.NewInteractive()
			logger.SetOutput(cmd.OutOrStdout())

			if len(rules) == 0 {
				logger.Info("no rules match", logging.FieldTags, flags.tag)
				logger.Info("known tags", logging.FieldTags, strings.Join(registry.Tags(), ","))
				return nil
			}

			logger.Info("available rules")

			for _, rule := range rules {
				fixable := "-"
				if rule.CanFix() {
					fixable = "yes"
				}

				keyvals := []any{
					logging.FieldSeverity, rule.DefaultSeverity(),
					logging.FieldFixable, fixable,
					logging.FieldTags, strings.Join(rule.Tags(), ","),
				}
				if aliases := registry.AliasesFor(rule.ID()); len(aliases) > 0 {
					keyvals = append(keyvals, logging.FieldAliases, strings.Join(aliases, ","))
				}
				keyvals = append(keyvals, logging.FieldDescription, rule.Description())

				logger.Info(config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()), keyvals...)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "",
		"only list rules with this tag (e.g. css, aria, wcag-1.4.3)")

	return cmd
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, registry *lint.Registry, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		aliases := registry.AliasesFor(rule.ID())
		if aliases == nil {
			aliases = []string{}
		}
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     rule.DefaultEnabled(),
			Fixable:     rule.CanFix(),
			Tags:        rule.Tags(),
			Aliases:     aliases,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
