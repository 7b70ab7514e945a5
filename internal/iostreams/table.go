package iostreams

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

// TablePrinter collects rows and writes them to Out as aligned columns.
// Headers are bold when colors are enabled; piped output is plain text.
type TablePrinter struct {
	ios     *IOStreams
	headers []string
	rows    [][]string
}

// NewTablePrinter creates a table with the given column headers.
func (s *IOStreams) NewTablePrinter(headers ...string) *TablePrinter {
	return &TablePrinter{ios: s, headers: headers}
}

// AddRow appends a row. Missing columns are left empty, extra ones dropped.
func (tp *TablePrinter) AddRow(cols ...string) {
	tp.rows = append(tp.rows, tp.normalize(cols))
}

// Render writes the table.
func (tp *TablePrinter) Render() error {
	if len(tp.headers) == 0 {
		return nil
	}
	if tp.ios.ColorEnabled() {
		return tp.renderStyled()
	}
	return tp.renderPlain()
}

func (tp *TablePrinter) renderPlain() error {
	w := tabwriter.NewWriter(tp.ios.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(tp.headers, "\t"))
	for _, row := range tp.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// renderStyled pads by rendered width, which tabwriter cannot do once
// cells carry escape sequences.
func (tp *TablePrinter) renderStyled() error {
	widths := make([]int, len(tp.headers))
	for i, h := range tp.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range tp.rows {
		for i, col := range row {
			widths[i] = max(widths[i], lipgloss.Width(col))
		}
	}

	line := func(cols []string, style lipgloss.Style) string {
		parts := make([]string, len(cols))
		for i, col := range cols {
			cell := style.Render(col)
			if i < len(cols)-1 {
				cell += strings.Repeat(" ", widths[i]-lipgloss.Width(col)+2)
			}
			parts[i] = cell
		}
		return strings.TrimRight(strings.Join(parts, ""), " ")
	}

	if _, err := fmt.Fprintln(tp.ios.Out, line(tp.headers, BoldStyle)); err != nil {
		return err
	}
	for _, row := range tp.rows {
		if _, err := fmt.Fprintln(tp.ios.Out, line(row, lipgloss.NewStyle())); err != nil {
			return err
		}
	}
	return nil
}

func (tp *TablePrinter) normalize(row []string) []string {
	cols := make([]string, len(tp.headers))
	copy(cols, row)
	return cols
}
