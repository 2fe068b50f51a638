package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/a11ylint/pkg/config"
	"github.com/yaklabco/a11ylint/pkg/dom"
	"github.com/yaklabco/a11ylint/pkg/lint"
)

// TableHeadersRule checks that data tables identify their header cells.
type TableHeadersRule struct {
	lint.BaseRule
}

// NewTableHeadersRule creates the table headers rule.
func NewTableHeadersRule() *TableHeadersRule {
	return &TableHeadersRule{
		BaseRule: lint.NewBaseRule(
			"A11Y007",
			"table-headers",
			"Data tables must have header cells, and td headers attributes must reference them",
			[]string{"tables", "structure", "wcag-1.3.1"},
			false,
		).WithSeverity(config.SeverityWarning),
	}
}

// Apply checks each table that is not marked presentational.
func (r *TableHeadersRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, table := range ctx.Index().Elements("table") {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}
		if lint.IsPresentational(table) || lint.IsHidden(table) {
			continue
		}
		diags = append(diags, r.checkTable(ctx, table)...)
	}
	return diags, nil
}

func (r *TableHeadersRule) checkTable(ctx *lint.RuleContext, table *dom.Node) []lint.Diagnostic {
	var (
		dataCells []*dom.Node
		headerIDs = make(map[string]bool)
		hasHeader bool
	)

	for _, cell := range ownCells(table) {
		if isHeaderCell(cell) {
			hasHeader = true
			if id := cell.ID(); id != "" {
				headerIDs[id] = true
			}
			continue
		}
		dataCells = append(dataCells, cell)
	}

	if len(dataCells) == 0 {
		return nil
	}

	var diags []lint.Diagnostic
	if !hasHeader {
		diags = append(diags, lint.NewDiagnostic(r.ID(), table, "Data table has no header cells").
			WithSuggestion(`Mark header cells with <th scope="col"> or <th scope="row">, or add role="presentation" to a layout table`).
			Build())
	}

	for _, cell := range dataCells {
		for _, ref := range strings.Fields(cell.AttrValue("headers")) {
			if headerIDs[ref] {
				continue
			}
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.Doc, attrSpan(cell, "headers"),
				fmt.Sprintf("headers references %q, which is not a header cell of this table", ref)).
				WithElement(elementLabel(cell)).
				Build())
		}
	}

	return diags
}

// ownCells returns the td and th cells of table, excluding nested tables.
func ownCells(table *dom.Node) []*dom.Node {
	var cells []*dom.Node
	//nolint:errcheck // callback never fails
	dom.Walk(table, func(n *dom.Node) error {
		switch {
		case n == table:
		case n.IsElement("table"):
			return dom.SkipChildren
		case n.IsElement("td", "th"):
			cells = append(cells, n)
		}
		return nil
	})
	return cells
}

// isHeaderCell reports whether cell is a th or carries a header role.
func isHeaderCell(cell *dom.Node) bool {
	switch cell.Role() {
	case "columnheader", "rowheader":
		return true
	case "cell", "gridcell":
		return false
	}
	return cell.IsElement("th")
}
