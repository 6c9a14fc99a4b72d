package domain

import (
	"fmt"
	"strings"
)

// Gradebook export row layout. The first four value rows of every column carry
// metadata; student rows follow.
const (
	RowLessonTitle    = 0 // "Lesson N: ..." text
	RowAssignmentName = 1 // display name of the assignment
	RowCategory       = 2 // category label, later the lesson key
	RowPossible       = 3 // auxiliary number, later total/denominator
	FirstDataRow      = 4

	// HeaderRowCount is the number of metadata rows preceding student data.
	HeaderRowCount = FirstDataRow
)

// AssignmentsMarker is written to the category row of aggregated columns.
const AssignmentsMarker = "Assignments"

// Column is a named, ordered sequence of cell values.
type Column struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`

	// Category and LessonKey are captured while headers are normalized so
	// later stages never depend on the (overwritten) category row.
	Category  string `json:"category,omitempty"`
	LessonKey string `json:"lesson_key,omitempty"`
}

// Value returns the cell at row or "" when the column is shorter.
func (c *Column) Value(row int) string {
	if c == nil || row < 0 || row >= len(c.Values) {
		return ""
	}
	return c.Values[row]
}

// SetValue sets the cell at row, growing the column when necessary.
func (c *Column) SetValue(row int, value string) {
	if row < 0 {
		return
	}
	for len(c.Values) <= row {
		c.Values = append(c.Values, "")
	}
	c.Values[row] = value
}

// NonEmptyCount counts cells that are not the empty string.
func (c *Column) NonEmptyCount() int {
	n := 0
	for _, v := range c.Values {
		if v != "" {
			n++
		}
	}
	return n
}

// IsDataColumn reports whether the column carries a category label, i.e. it is
// an assignment or assessment column rather than an administrative one.
func (c *Column) IsDataColumn() bool {
	return len(c.Values) > RowCategory && !isBlank(c.Values[RowCategory])
}

// Table is an in-memory, column-oriented gradebook. All columns hold the same
// number of rows.
type Table struct {
	columns []*Column
	rows    int
}

// NewTable creates a table from columns, padding short columns with empty
// cells so the table stays rectangular.
func NewTable(columns ...*Column) *Table {
	t := &Table{}
	for _, c := range columns {
		if len(c.Values) > t.rows {
			t.rows = len(c.Values)
		}
	}
	for _, c := range columns {
		t.columns = append(t.columns, pad(c, t.rows))
	}
	return t
}

// NewTableFromRecords builds a table from a header record (column names) and
// value records, as produced by a CSV reader. Ragged records are padded.
func NewTableFromRecords(header []string, records [][]string) *Table {
	width := len(header)
	for _, r := range records {
		if len(r) > width {
			width = len(r)
		}
	}

	columns := make([]*Column, width)
	for i := range columns {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		values := make([]string, len(records))
		for row, r := range records {
			if i < len(r) {
				values[row] = r[i]
			}
		}
		columns[i] = &Column{Name: name, Values: values}
	}

	return &Table{columns: columns, rows: len(records)}
}

// Len returns the number of columns.
func (t *Table) Len() int {
	return len(t.columns)
}

// Rows returns the number of value rows (excluding the name row).
func (t *Table) Rows() int {
	return t.rows
}

// StudentCount returns the number of rows below the metadata header.
func (t *Table) StudentCount() int {
	if t.rows <= FirstDataRow {
		return 0
	}
	return t.rows - FirstDataRow
}

// Columns returns the columns in order. The slice is a copy; the columns are not.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column returns the column at index i or nil.
func (t *Table) Column(i int) *Column {
	if i < 0 || i >= len(t.columns) {
		return nil
	}
	return t.columns[i]
}

// ColumnByName returns the first column with the given name.
func (t *Table) ColumnByName(name string) (*Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnNames returns the current column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// CountNamed returns how many columns currently carry name.
func (t *Table) CountNamed(name string) int {
	n := 0
	for _, c := range t.columns {
		if c.Name == name {
			n++
		}
	}
	return n
}

// UniqueName appends spaces to name until no column other than self uses it.
func (t *Table) UniqueName(self *Column, name string) string {
	for t.nameTaken(self, name) {
		name += " "
	}
	return name
}

// nameTaken reports whether a column other than self carries name. self is
// expected to belong to t.
func (t *Table) nameTaken(self *Column, name string) bool {
	n := t.CountNamed(name)
	if self != nil && self.Name == name {
		n--
	}
	return n > 0
}

// DeleteColumn removes the column at index i. Subsequent columns shift left.
func (t *Table) DeleteColumn(i int) error {
	if i < 0 || i >= len(t.columns) {
		return fmt.Errorf("column index %d out of range [0,%d)", i, len(t.columns))
	}
	t.columns = append(t.columns[:i], t.columns[i+1:]...)
	return nil
}

// DeleteColumns removes every column whose name is listed, in a single pass.
// It returns the number of columns removed.
func (t *Table) DeleteColumns(names ...string) int {
	if len(names) == 0 {
		return 0
	}
	victims := make(map[string]struct{}, len(names))
	for _, n := range names {
		victims[n] = struct{}{}
	}

	kept := t.columns[:0]
	removed := 0
	for _, c := range t.columns {
		if _, ok := victims[c.Name]; ok {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(t.columns); i++ {
		t.columns[i] = nil
	}
	t.columns = kept
	return removed
}

// Records returns the table as rows of strings: the column names first, then
// one record per value row.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, t.rows+1)
	out = append(out, t.ColumnNames())
	for row := 0; row < t.rows; row++ {
		rec := make([]string, len(t.columns))
		for i, c := range t.columns {
			rec[i] = c.Value(row)
		}
		out = append(out, rec)
	}
	return out
}

func pad(c *Column, rows int) *Column {
	for len(c.Values) < rows {
		c.Values = append(c.Values, "")
	}
	return c
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
