package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	// Border is the border style.
	Border lipgloss.Border

	// BorderColor is the color for borders.
	BorderColor lipgloss.Color

	// HeaderStyle is the style for header cells.
	HeaderStyle lipgloss.Style

	// CellStyle is the style for regular cells.
	CellStyle lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: ColorDimGray,
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		CellStyle:   lipgloss.NewStyle(),
	}
}

// Table represents a styled table.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		style:   DefaultTableStyle(),
	}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Render renders the table to a string.
func (t *Table) Render() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle
			}
			return t.style.CellStyle
		}).
		Headers(t.headers...)

	for _, row := range t.rows {
		tbl.Row(row...)
	}
	return tbl.Render()
}
