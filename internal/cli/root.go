// Package cli provides the Cobra command structure for a11ylint.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/a11ylint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// annotationVersion records the build version on the root command.
const annotationVersion = "a11ylint/version"

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// NewRootCommand creates the root a11ylint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug      bool
		configPath string
		color      string
	)

	rootCmd := &cobra.Command{
		Use:   "a11ylint",
		Short: "An accessibility linter for HTML and CSS",
		Long: `a11ylint checks HTML pages, stylesheets and the markup embedded in
Markdown for accessibility problems: missing text alternatives, hidden focus
indicators, skipped heading levels, unnamed controls, low color contrast,
invalid ARIA roles and more.

Findings point at the exact line and column. Two rules can repair what they
find, with dry-run diffs, race detection and backups before anything is
written.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				logging.SetLevel("debug")
			}
			switch color {
			case colorAuto, colorAlways, colorNever:
			default:
				return usageError(fmt.Errorf("invalid --color %q: must be auto, always or never", color))
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
			return nil
		},
		Annotations:   map[string]string{annotationVersion: info.Version},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", colorAuto,
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newLintCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
