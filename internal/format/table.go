package format

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// WriteTable renders t with a rounded border. Colors follow the writer's
// detected profile, so piped output stays plain.
func WriteTable(w io.Writer, t Tabular) error {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(t.TableHeaders()...).
		Rows(t.TableRows()...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
