package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/analysis"
	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifToolName  = "a11ylint"
	sarifToolURI   = "https://github.com/yaklabco/a11ylint"
	sarifSrcRoot   = "%SRCROOT%"
)

// SARIFOutput is the root SARIF log.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is a single analysis run.
type SARIFRun struct {
	Tool               SARIFTool                        `json:"tool"`
	OriginalURIBaseIDs map[string]SARIFArtifactLocation `json:"originalUriBaseIds,omitempty"`
	Results            []SARIFResult                    `json:"results"`
	Invocations        []SARIFInvocation                `json:"invocations,omitempty"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver carries tool metadata and the rule catalog.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one rule.
type SARIFRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription *SARIFMessage    `json:"shortDescription,omitempty"`
	DefaultConfig    *SARIFRuleConfig `json:"defaultConfiguration,omitempty"`
	Properties       *SARIFProperties `json:"properties,omitempty"`
}

// SARIFProperties is the property bag of a rule.
type SARIFProperties struct {
	Tags []string `json:"tags,omitempty"`
}

// SARIFRuleConfig holds the default level of a rule.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult is one finding.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

// SARIFMessage is a plain text message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation wraps a physical location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation is a file and a region within it.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           *SARIFRegion          `json:"region,omitempty"`
}

// SARIFArtifactLocation is a file URI, optionally relative to a base id.
type SARIFArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

// SARIFRegion is a text region. Line regions are 1-based; byte regions
// count from offset 0 and so are pointers.
type SARIFRegion struct {
	StartLine   int  `json:"startLine,omitempty"`
	StartColumn int  `json:"startColumn,omitempty"`
	EndLine     int  `json:"endLine,omitempty"`
	EndColumn   int  `json:"endColumn,omitempty"`
	ByteOffset  *int `json:"byteOffset,omitempty"`
	ByteLength  *int `json:"byteLength,omitempty"`
}

// SARIFFix is a proposed fix.
type SARIFFix struct {
	Description     SARIFMessage          `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

// SARIFArtifactChange lists the replacements in one file.
type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

// SARIFReplacement replaces a byte region with new text.
type SARIFReplacement struct {
	DeletedRegion   SARIFRegion   `json:"deletedRegion"`
	InsertedContent *SARIFMessage `json:"insertedContent,omitempty"`
}

// SARIFInvocation reports files the run could not process.
type SARIFInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification is a tool message tied to a file.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFRenderer writes the analysis report as a SARIF 2.1.0 log.
type SARIFRenderer struct {
	opts Options
}

// NewSARIFRenderer creates a new SARIF renderer.
func NewSARIFRenderer(opts Options) *SARIFRenderer {
	return &SARIFRenderer{opts: opts}
}

// Render implements Renderer.
func (r *SARIFRenderer) Render(_ context.Context, report *analysis.Report) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(r.BuildOutput(report)); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}

	return bw.Flush()
}

// BuildOutput converts report into a SARIF log.
func (r *SARIFRenderer) BuildOutput(report *analysis.Report) *SARIFOutput {
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           sarifToolName,
			Version:        r.opts.ToolVersion,
			InformationURI: sarifToolURI,
		}},
		Results: make([]SARIFResult, 0, len(report.Diagnostics)),
	}
	if r.opts.WorkingDir != "" {
		run.OriginalURIBaseIDs = map[string]SARIFArtifactLocation{
			sarifSrcRoot: {URI: strings.TrimSuffix(fileURI(r.opts.WorkingDir), "/") + "/"},
		}
	}

	run.Tool.Driver.Rules = r.rules(report)
	ruleIndex := make(map[string]int, len(run.Tool.Driver.Rules))
	for i, rule := range run.Tool.Driver.Rules {
		ruleIndex[rule.ID] = i
	}

	for _, entry := range report.Diagnostics {
		idx, ok := ruleIndex[entry.RuleID]
		if !ok {
			idx = len(run.Tool.Driver.Rules)
			ruleIndex[entry.RuleID] = idx
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{ID: entry.RuleID, Name: entry.RuleName})
		}
		run.Results = append(run.Results, r.result(entry, idx))
	}

	if len(report.FileErrors) > 0 {
		invocation := SARIFInvocation{ExecutionSuccessful: false}
		for _, fe := range report.FileErrors {
			invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, SARIFNotification{
				Level:     "error",
				Message:   SARIFMessage{Text: fe.Error},
				Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: r.artifact(fe.FilePath)}}},
			})
		}
		run.Invocations = []SARIFInvocation{invocation}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

// rules builds the catalog from the registry when one is set, otherwise
// from the rules that reported.
func (r *SARIFRenderer) rules(report *analysis.Report) []SARIFRule {
	if r.opts.Registry == nil {
		rules := make([]SARIFRule, 0, len(report.ByRule))
		for _, ra := range report.ByRule {
			rules = append(rules, SARIFRule{ID: ra.RuleID, Name: ra.RuleName})
		}
		return rules
	}

	registered := r.opts.Registry.Rules()
	rules := make([]SARIFRule, 0, len(registered))
	for _, rule := range registered {
		rules = append(rules, sarifRule(rule))
	}
	return rules
}

func sarifRule(rule lint.Rule) SARIFRule {
	out := SARIFRule{
		ID:            rule.ID(),
		Name:          rule.Name(),
		DefaultConfig: &SARIFRuleConfig{Level: sarifLevel(rule.DefaultSeverity())},
	}
	if desc := rule.Description(); desc != "" {
		out.ShortDescription = &SARIFMessage{Text: desc}
	}
	if tags := rule.Tags(); len(tags) > 0 {
		out.Properties = &SARIFProperties{Tags: tags}
	}
	return out
}

func (r *SARIFRenderer) result(entry analysis.DiagnosticEntry, ruleIndex int) SARIFResult {
	artifact := r.artifact(entry.FilePath)

	res := SARIFResult{
		RuleID:    entry.RuleID,
		RuleIndex: ruleIndex,
		Level:     sarifLevel(config.Severity(entry.Severity)),
		Message:   SARIFMessage{Text: entry.Message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: artifact,
				Region: &SARIFRegion{
					StartLine:   entry.StartLine,
					StartColumn: entry.StartColumn,
					EndLine:     entry.EndLine,
					EndColumn:   entry.EndColumn,
				},
			},
		}},
	}

	if len(entry.Fixes) > 0 {
		change := SARIFArtifactChange{ArtifactLocation: artifact}
		for _, edit := range entry.Fixes {
			offset, length := edit.StartOffset, edit.EndOffset-edit.StartOffset
			replacement := SARIFReplacement{
				DeletedRegion: SARIFRegion{ByteOffset: &offset, ByteLength: &length},
			}
			if edit.NewText != "" {
				replacement.InsertedContent = &SARIFMessage{Text: edit.NewText}
			}
			change.Replacements = append(change.Replacements, replacement)
		}

		description := entry.Suggestion
		if description == "" {
			description = entry.Message
		}
		res.Fixes = []SARIFFix{{
			Description:     SARIFMessage{Text: description},
			ArtifactChanges: []SARIFArtifactChange{change},
		}}
	}

	return res
}

// artifact returns the location of a report path. Relative paths are
// anchored to the working directory base id.
func (r *SARIFRenderer) artifact(path string) SARIFArtifactLocation {
	if filepath.IsAbs(path) {
		return SARIFArtifactLocation{URI: fileURI(path)}
	}
	loc := SARIFArtifactLocation{URI: filepath.ToSlash(path)}
	if r.opts.WorkingDir != "" {
		loc.URIBaseID = sarifSrcRoot
	}
	return loc
}

// fileURI converts an absolute path into a file URI.
func fileURI(path string) string {
	uri := filepath.ToSlash(path)
	if len(uri) > 0 && uri[0] != '/' {
		uri = "/" + uri
	}
	return "file://" + uri
}

// sarifLevel maps a severity onto a SARIF level.
func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
