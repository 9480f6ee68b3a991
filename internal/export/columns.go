// Package export renders list data into the downloadable report formats.
// Handlers describe a report once as a Table; the PDF and Excel writers
// share that description.
package export

// Column describes one report column. Ratio spreads the printable PDF width
// across columns, Min keeps narrow columns readable, and Width is the Excel
// column width. AdminOnly columns are stripped for office-scoped users.
type Column struct {
	Header    string
	Ratio     float64
	Min       float64
	Width     float64
	AdminOnly bool
}

// Table is a fully materialized report: ordered columns and stringified
// cell rows. GroupCols leading columns are treated as group keys; repeated
// group values are merged (Excel) or blanked (PDF) so child rows read as
// belonging to their parent.
type Table struct {
	Title     string
	Sheet     string
	Columns   []Column
	Rows      [][]string
	GroupCols int
}

// ForRole returns the table as the given role may see it: administrators get
// everything, office users lose the AdminOnly columns and their cells.
func (t Table) ForRole(admin bool) Table {
	if admin {
		return t
	}
	keep := make([]int, 0, len(t.Columns))
	for i, c := range t.Columns {
		if !c.AdminOnly {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Columns) {
		return t
	}

	out := t
	out.Columns = make([]Column, len(keep))
	for i, idx := range keep {
		out.Columns[i] = t.Columns[idx]
	}
	out.Rows = make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]string, len(keep))
		for i, idx := range keep {
			if idx < len(row) {
				cells[i] = row[idx]
			}
		}
		out.Rows[r] = cells
	}
	if out.GroupCols > len(out.Columns) {
		out.GroupCols = len(out.Columns)
	}
	return out
}
