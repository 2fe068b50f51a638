package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/a11ylint/internal/configloader"
	"github.com/yaklabco/a11ylint/internal/logging"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
	_ "github.com/yaklabco/a11ylint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/a11ylint/pkg/parser"
	"github.com/yaklabco/a11ylint/pkg/reporter"
	"github.com/yaklabco/a11ylint/pkg/runner"
)

type lintFlags struct {
	format       string
	ignore       []string
	enable       []string
	disable      []string
	strict       bool
	noContext    bool
	compact      bool
	perFile      bool
	watch        bool
	ruleFormat   string
	summaryOrder string
}

func newLintCommand() *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint HTML, CSS and Markdown files for accessibility issues",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint HTML, CSS and Markdown files for accessibility issues.

By default, lints every .html, .htm, .xhtml, .css, .md and .markdown file in
the current directory and its subdirectories. Hidden files and directories are
skipped. Specify paths to lint specific files or directories.

Examples:
  a11ylint lint                        # Lint current directory
  a11ylint lint site/                  # Lint a directory
  a11ylint lint index.html theme.css   # Lint specific files
  a11ylint lint --fix                  # Lint and repair fixable issues
  a11ylint lint --fix --dry-run        # Show fixes as a diff without writing
  a11ylint lint --format sarif         # SARIF 2.1.0 for code scanning
  a11ylint lint --disable css          # Skip every stylesheet rule
  a11ylint lint --strict               # Fail on warnings too
  a11ylint lint --watch site/          # Re-lint whenever a file changes`

// lintSession holds everything a lint run needs once configuration has
// been resolved. Watch mode reuses one session for every run.
type lintSession struct {
	cfg      *config.Config
	runner   *runner.Runner
	runOpts  runner.Options
	repOpts  reporter.Options
	strict   bool
	registry *lint.Registry
}

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := newLintSession(ctx, cmd, args, cfg, flags)
	if err != nil {
		return err
	}

	if flags.watch {
		return watchAndLint(ctx, session, cmd.ErrOrStderr())
	}

	code, err := session.lintOnce(ctx)
	if err != nil {
		return err
	}
	if code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrLintIssuesFound}
	}
	return nil
}

// cliConfig maps flags onto a config that only carries what the user set,
// so unset flags do not mask values from files or the environment.
func cliConfig(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) (*config.Config, error) {
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return nil, usageError(err)
		}
		cfg.Format = config.OutputFormat(format)
	}

	if changed("rule-format") {
		ruleFormat := config.RuleFormat(flags.ruleFormat)
		if !ruleFormat.IsValid() {
			return nil, usageError(fmt.Errorf("invalid --rule-format %q: must be name, id or combined", flags.ruleFormat))
		}
		cfg.RuleFormat = ruleFormat
	}

	if !config.SummaryOrder(flags.summaryOrder).IsValid() {
		return nil, usageError(fmt.Errorf("invalid --summary-order %q: must be rules or files", flags.summaryOrder))
	}

	if cfg.Jobs < 0 {
		return nil, usageError(fmt.Errorf("invalid --jobs %d: must be >= 0", cfg.Jobs))
	}

	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("enable") {
		cfg.EnableRules = flags.enable
	}
	if changed("disable") {
		cfg.DisableRules = flags.disable
	}

	// Dry-run previews fixes, so it needs fix mode to produce them.
	if cfg.DryRun {
		cfg.Fix = true
	}

	return cfg, nil
}

func newLintSession(
	ctx context.Context,
	cmd *cobra.Command,
	args []string,
	cfg *config.Config,
	flags *lintFlags,
) (*lintSession, error) {
	logger := logging.FromContext(ctx)

	cliCfg, err := cliConfig(cmd, cfg, flags)
	if err != nil {
		return nil, err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	registry := lint.DefaultRegistry

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
		Registry:     registry,
	})
	if err != nil {
		return nil, configError(errors.Join(errors.New("failed to load configuration"), err))
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	// The diff format shows pending fixes, so it previews them unless the
	// user asked for them to be written.
	if finalCfg.Format == config.FormatDiff && !finalCfg.Fix {
		finalCfg.Fix = true
		finalCfg.DryRun = true
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return nil, configError(err)
	}

	logger.Debug("configuration loaded",
		logging.FieldFormat, format,
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
	)

	router := parser.New(parser.Options{
		Markdown:       finalCfg.Markdown.Enabled,
		DetectUntagged: finalCfg.Markdown.DetectUntagged,
	})
	engine := lint.NewEngine(router, registry)
	engine.ParallelRules = finalCfg.ParallelRules

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = colorAuto
	}

	return &lintSession{
		cfg:    finalCfg,
		runner: runner.New(lint.NewPipeline(engine)),
		runOpts: runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: finalCfg.Ignore,
			Jobs:         finalCfg.Jobs,
			Config:       finalCfg,
		},
		repOpts: reporter.Options{
			Writer:       cmd.OutOrStdout(),
			ErrorWriter:  cmd.ErrOrStderr(),
			Format:       format,
			Color:        colorMode,
			ShowContext:  !flags.noContext,
			ShowSummary:  true,
			GroupByFile:  true,
			Compact:      flags.compact,
			PerFile:      flags.perFile,
			RuleFormat:   finalCfg.RuleFormat,
			SummaryOrder: config.SummaryOrder(flags.summaryOrder),
			WorkingDir:   workDir,
			Registry:     registry,
			ToolVersion:  toolVersion(cmd),
		},
		strict:   flags.strict,
		registry: registry,
	}, nil
}

// lintOnce runs discovery, linting and reporting, and returns the exit
// code the findings call for.
func (s *lintSession) lintOnce(ctx context.Context) (int, error) {
	logger := logging.FromContext(ctx)

	logger.Debug("starting lint run",
		logging.FieldPaths, s.runOpts.Paths,
		logging.FieldWorkingDir, s.runOpts.WorkingDir,
		logging.FieldJobs, s.runOpts.Jobs,
	)

	result, err := s.runner.Run(ctx, s.runOpts)
	if err != nil {
		return 0, fmt.Errorf("lint run failed: %w", err)
	}

	rep, err := reporter.New(s.repOpts)
	if err != nil {
		return 0, fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return 0, &ExitError{Code: ExitIOError, Err: fmt.Errorf("report results: %w", err)}
	}

	for _, outcome := range result.Files {
		if outcome.Result == nil {
			continue
		}
		for ruleID, ruleErr := range outcome.Result.RuleErrors {
			logger.Warn("rule failed", logging.FieldRule, ruleID, logging.FieldPath, outcome.Path, logging.FieldError, ruleErr)
		}
	}

	return ExitCodeFromResult(result, s.strict), nil
}

// toolVersion reads the version recorded on the root command.
func toolVersion(cmd *cobra.Command) string {
	if v := cmd.Root().Annotations[annotationVersion]; v != "" {
		return v
	}
	return "dev"
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "repair fixable issues in place")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes as a diff without writing them")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable (IDs, names, aliases or tags)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable (IDs, names, aliases or tags)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&cfg.ParallelRules, "parallel-rules", false, "run the rules for each file concurrently")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-run the lint whenever a watched file changes")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
}
