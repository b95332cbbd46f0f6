// Package console writes the user-facing results of pdfprint commands.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kpauljoseph/pdfprint/internal/budget"
	"github.com/kpauljoseph/pdfprint/pkg/models"
)

const separatorWidth = 30

var (
	failureColor = lipgloss.Color("1")
	successColor = lipgloss.Color("2")
	borderColor  = lipgloss.Color("8")
)

type Options struct {
	// Color enables ANSI colours when the writer is a terminal.
	Color bool
}

type Printer struct {
	w io.Writer

	failure lipgloss.Style
	success lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	total   lipgloss.Style
	border  lipgloss.Style
}

func NewPrinter(w io.Writer, opts Options) *Printer {
	r := lipgloss.NewRenderer(w)

	p := &Printer{
		w:       w,
		failure: r.NewStyle(),
		success: r.NewStyle(),
		header:  r.NewStyle().Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		total:   r.NewStyle().Padding(0, 1),
		border:  r.NewStyle(),
	}

	if opts.Color {
		p.failure = p.failure.Foreground(failureColor)
		p.success = p.success.Foreground(successColor)
		p.header = p.header.Bold(true)
		p.total = p.total.Bold(true)
		p.border = p.border.Foreground(borderColor)
	}

	return p
}

// TypeError reports a document that was left out because of its type.
func (p *Printer) TypeError(doc models.Document) {
	p.println(p.failure, fmt.Sprintf("TypeError: '%s' -- %s", doc.Type, doc.Path))
}

func (p *Printer) Added(doc models.Document) {
	p.println(p.success, fmt.Sprintf("Added: %s", doc.Path))
}

// ConcatResult prints failures, then successes, then the output summary.
func (p *Printer) ConcatResult(result models.ScanResult, output string) {
	fmt.Fprintln(p.w)
	for _, doc := range result.Failed {
		p.TypeError(doc)
	}
	for _, doc := range result.Succeeded {
		p.Added(doc)
	}

	fmt.Fprintln(p.w, strings.Repeat("-", separatorWidth))
	if len(result.Succeeded) == 0 {
		fmt.Fprintln(p.w, "Nothing to merge")
		return
	}
	fmt.Fprintf(p.w, "Done:  '%s'\n", output)
}

// BudgetResult prints the rejected documents followed by the budget table.
func (p *Printer) BudgetResult(report budget.Report, rejected []models.Document) {
	for _, doc := range rejected {
		p.TypeError(doc)
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.BudgetTable(report))
}

// BudgetTable renders the report with the total as its last row.
func (p *Printer) BudgetTable(report budget.Report) string {
	records := report.Records()
	last := len(records) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers(budget.Columns...).
		Rows(records...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch row {
			case table.HeaderRow:
				return p.header
			case last:
				style = p.total
			default:
				style = p.cell
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return t.String()
}

func (p *Printer) println(style lipgloss.Style, line string) {
	fmt.Fprintln(p.w, style.Render(line))
}
