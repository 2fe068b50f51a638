package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/a11ylint/internal/configloader"
	"github.com/yaklabco/a11ylint/internal/ui/pretty"
)

// HelpStyles contains the lipgloss styles used in command help.
type HelpStyles struct {
	Heading    lipgloss.Style
	Command    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	EnvVar     lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles derives help styles from the report palette so help and
// lint output look alike.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	s := pretty.NewStyles(colorEnabled)
	return &HelpStyles{
		Heading:    s.Warning,
		Command:    s.Info,
		Subcommand: s.DiffAdd,
		Flag:       s.DiffHunk,
		EnvVar:     s.Element,
		Dim:        s.Dim,
	}
}

// HelpFormatter renders styled help for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for a --color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// envHelp is one row of the Environment section.
type envHelp struct {
	Name        string
	Description string
}

func environmentHelp() []envHelp {
	descriptions := configloader.ListEnvVars()
	names := configloader.EnvVarNames()
	out := make([]envHelp, 0, len(names))
	for _, name := range names {
		out = append(out, envHelp{Name: name, Description: descriptions[name]})
	}
	return out
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"envvar":     h.styles.EnvVar.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.flagUsages,
		"rpad":       rpad,
		"join":       strings.Join,
		"trimRight":  trimTrailingWhitespaces,
		"envHelp":    environmentHelp,
		"configFiles": func() string {
			return strings.Join(configloader.ProjectConfigFiles, ", ")
		},
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}

{{- if gt (len .Aliases) 0 }}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end }}

{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end }}

{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}

{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}

{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}

{{- if not .HasParent }}

{{ heading "Configuration:" }}
  Project files searched upward from the working directory: {{ configFiles }}
  User file: $XDG_CONFIG_HOME/a11ylint/config.yaml

{{ heading "Environment:" }}
{{- range envHelp }}
  {{ envvar (rpad .Name 34) }} {{ .Description }}
{{- end }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ trimRight . }}

{{ end }}`

// flagUsages styles pflag's aligned usage block, keeping its alignment.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	usages := strings.TrimRight(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine colors the flag names and dims the value type of a line
// such as "  -o, --output string   Output file path". Description text and
// spacing are left as pflag aligned them.
func (h *HelpFormatter) styleFlagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]
	if body == "" || !strings.HasPrefix(body, "-") {
		return line
	}

	decl, rest := body, ""
	if gap := strings.Index(body, "  "); gap >= 0 {
		decl, rest = body[:gap], body[gap:]
	}

	tokens := strings.Fields(decl)
	for i, token := range tokens {
		name, comma := strings.CutSuffix(token, ",")
		if strings.HasPrefix(name, "-") {
			name = h.styles.Flag.Render(name)
		} else {
			name = h.styles.Dim.Render(name)
		}
		if comma {
			name += ","
		}
		tokens[i] = name
	}

	return indent + strings.Join(tokens, " ") + rest
}

// ApplyToCommand installs the styled help and usage output on cmd. Cobra
// hands the functions down to every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.Must(usage.Clone()).New("help").Parse(helpTemplate + `{{ template "usage" . }}`))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.ExecuteTemplate(c.OutOrStdout(), "help", c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// rpad pads s with spaces to width.
func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// trimTrailingWhitespaces removes trailing blanks from every line.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
