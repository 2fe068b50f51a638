// Package pretty renders styled terminal output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ANSI 256 palette indexes.
const (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorCyan    = lipgloss.Color("14")
	colorGray    = lipgloss.Color("8")
	colorSilver  = lipgloss.Color("7")
	colorMagenta = lipgloss.Color("13")
)

// DefaultTermWidth is used when the output is not a terminal.
const DefaultTermWidth = 100

// Styles holds every style used by the CLI.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Element    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableFixable   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newPlainStyles()
	}
	return newColorStyles()
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Info:    fg(colorBlue).Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true).Underline(true),
		Location:   fg(colorGray),
		RuleID:     fg(colorGray),
		Message:    lipgloss.NewStyle(),
		Element:    fg(colorMagenta),
		Suggestion: fg(colorGreen).Italic(true),
		SourceLine: fg(colorSilver),
		Caret:      fg(colorRed).Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		TableHeader:    fg(colorSilver).Bold(true),
		TableBorder:    fg(colorGray),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableInfoRow:   fg(colorBlue),
		TableFixable:   fg(colorGreen),
		TableLegend:    fg(colorGray).Italic(true),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newPlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain,
		FilePath: plain, Location: plain, RuleID: plain, Message: plain,
		Element: plain, Suggestion: plain, SourceLine: plain, Caret: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		TableHeader: plain, TableBorder: plain, TableErrorRow: plain, TableWarnRow: plain,
		TableInfoRow: plain, TableFixable: plain, TableLegend: plain, TableSeparator: plain,
		Dim: plain, Bold: plain,
	}
}

// IsColorEnabled resolves a --color mode of "auto", "always" or "never".
// Auto enables color only for a terminal writer when NO_COLOR is unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the column count of writer, or DefaultTermWidth.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return DefaultTermWidth
}
