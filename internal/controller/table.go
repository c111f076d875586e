package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"

	m "covreport.dev/pkg/covreport/internal/model"
)

// TableUI renders the below-threshold section as a table and delegates every
// other section to SimpleUI.
type TableUI struct {
	*SimpleUI
}

// NewTableUI creates a new TableUI.
func NewTableUI(simple *SimpleUI) *TableUI {
	return &TableUI{SimpleUI: simple}
}

// DisplayBelowThreshold prints the first limit findings as table rows.
func (t *TableUI) DisplayBelowThreshold(ctx context.Context, findings []m.Finding, limit int, threshold float64) {
	if err := ctx.Err(); err != nil {
		return
	}

	label := thresholdLabel(threshold)

	t.heading(fmt.Sprintf("ALL SOURCE FILES BELOW %s COVERAGE", label))

	if len(findings) == 0 {
		t.printf("\nNo source files below %s coverage found!\n", label)
		return
	}

	t.printf("\n%s", renderFindingsTable(capped(findings, limit)))
	t.displayOmitted(len(findings), limit, label)
}

func renderFindingsTable(findings []m.Finding) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Coverage", "Lines"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for _, finding := range findings {
		table.Append([]string{
			string(finding.File),
			fmt.Sprintf("%.2f%%", finding.Coverage),
			fmt.Sprintf("%d/%d", finding.LinesCovered, finding.LinesValid),
		})
	}

	table.Render()

	return tableBuffer.String()
}
