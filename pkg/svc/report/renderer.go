// Package report renders diff results as per-scope tables.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/scandiweb/configdiff/pkg/svc/diff"
	"github.com/scandiweb/configdiff/pkg/svc/formatter"
)

// IdenticalMessage is printed for a scope without differences.
const IdenticalMessage = "Configs are identical!"

// Renderer writes scope reports to a writer.
type Renderer struct {
	writer    io.Writer
	formatter *formatter.Formatter
	cellStyle lipgloss.Style
}

// NewRenderer creates a renderer writing to writer and formatting cells with f.
func NewRenderer(writer io.Writer, f *formatter.Formatter) *Renderer {
	return &Renderer{
		writer:    writer,
		formatter: f,
		cellStyle: lipgloss.NewStyle().Padding(0, 1),
	}
}

// RenderAll renders every report of the result in order.
func (r *Renderer) RenderAll(result *diff.Result) error {
	if result == nil {
		return nil
	}

	for _, scopeReport := range result.Reports {
		err := r.Render(scopeReport)
		if err != nil {
			return err
		}
	}

	return nil
}

// Render writes a blank line, the scope heading and either the identical message
// or a Path/Local/Remote table with a separator between rows.
func (r *Renderer) Render(scopeReport diff.ScopeReport) error {
	_, err := fmt.Fprintf(r.writer, "\n%s\n", scopeReport.Scope.Heading())
	if err != nil {
		return fmt.Errorf("write scope heading: %w", err)
	}

	if scopeReport.Identical() {
		_, err = fmt.Fprintln(r.writer, IdenticalMessage)
		if err != nil {
			return fmt.Errorf("write identical message: %w", err)
		}

		return nil
	}

	_, err = fmt.Fprintln(r.writer, r.buildTable(scopeReport).Render())
	if err != nil {
		return fmt.Errorf("write scope table: %w", err)
	}

	return nil
}

func (r *Renderer) buildTable(scopeReport diff.ScopeReport) *table.Table {
	rows := make([][]string, 0, len(scopeReport.Rows))
	for _, row := range scopeReport.Rows {
		rows = append(rows, []string{
			r.formatter.Format(row.Path),
			r.formatter.FormatValue(row.Local),
			r.formatter.FormatValue(row.Remote),
		})
	}

	cellStyle := r.cellStyle

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Headers("Path", "Local", "Remote").
		Rows(rows...)
}
