package view

// Option is one entry of a select control.
type Option struct {
	Value    string
	Label    string
	Disabled bool
	Selected bool
}

type Cell struct {
	Text  string
	Class string
}

type Row struct {
	Cells []Cell
	Class string
}

// Table is a rendered list. Empty is shown as a single row spanning all
// columns when there are no rows.
type Table struct {
	Headers []string
	Rows    []Row
	Empty   string
}

// IsEmpty reports whether the empty-state message should be shown.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Span is the column count used by the empty-state row.
func (t Table) Span() int {
	if len(t.Headers) == 0 {
		return 1
	}
	return len(t.Headers)
}

// Text returns the cell values of each row, for terminal output and tests.
func (t Table) Text() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		line := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			line[i] = c.Text
		}
		out = append(out, line)
	}
	return out
}

// Stat is one dashboard counter.
type Stat struct {
	Label string
	Value string
}
