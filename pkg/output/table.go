package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const cellWidth = 48

// TableConfig holds table configuration
type TableConfig struct {
	Headers []string
	Rows    [][]string
}

// RenderTable creates a styled lipgloss table with rounded borders and alternating row colors
func RenderTable(config TableConfig) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(config.Headers...).
		Rows(config.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			if row%2 == 0 {
				return tableEvenRowStyle
			}
			return tableOddRowStyle
		})

	return t.Render()
}
