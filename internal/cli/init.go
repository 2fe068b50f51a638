package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/a11ylint/internal/configloader"
	"github.com/yaklabco/a11ylint/internal/logging"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
	"github.com/yaklabco/a11ylint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	pack   string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new a11ylint configuration file",
		Long: `Create a new .a11ylint.yml configuration file in the current directory.

Without flags the file holds the common settings and a commented example of
per-rule configuration. --full documents every rule with its options, and
--pack starts from one of the built-in rule packs: ` + strings.Join(rules.PackNames(), ", ") + `.

Examples:
  a11ylint init                      Create a minimal .a11ylint.yml
  a11ylint init --full               Document every rule and option
  a11ylint init --pack legacy        Only the blocking checks, for existing sites
  a11ylint init --output ci.yml      Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.pack, "pack", "", "Start from a rule pack: "+strings.Join(rules.PackNames(), ", "))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .a11ylint.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	if flags.full && flags.pack != "" {
		return usageError(fmt.Errorf("--full and --pack cannot be combined"))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFiles[0]
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	var content []byte
	if flags.pack != "" {
		content, err = packTemplate(flags.pack)
		if err != nil {
			return err
		}
	} else {
		content = config.GenerateTemplate(config.TemplateOptions{
			Full:  flags.full,
			Rules: templateRules(lint.DefaultRegistry),
		})
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	switch {
	case flags.pack != "":
		logger.Info("rules preset from pack", logging.FieldPack, flags.pack)
	case flags.full:
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'a11ylint rules' to see all available rules")

	return nil
}

// templateRules describes every registered rule for the full template.
func templateRules(registry *lint.Registry) []config.RuleInfo {
	all := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(all))
	for _, rule := range all {
		info := config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
		}
		if defaulter, ok := rule.(lint.OptionDefaulter); ok {
			info.Options = defaulter.DefaultOptions()
		}
		infos = append(infos, info)
	}
	return infos
}

// packTemplate renders the default settings with the rules of a pack.
func packTemplate(name string) ([]byte, error) {
	pack := rules.PackByName(name)
	if pack == nil {
		return nil, usageError(fmt.Errorf("unknown pack %q: available packs are %s",
			name, strings.Join(rules.PackNames(), ", ")))
	}

	cfg := config.NewConfig()
	cfg.Rules = pack.Rules

	body, err := cfg.ToYAML()
	if err != nil {
		return nil, fmt.Errorf("render pack %s: %w", name, err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# a11ylint configuration (%s pack)\n# %s\n\n", pack.Name, pack.Description)
	buf.Write(body)
	return buf.Bytes(), nil
}
