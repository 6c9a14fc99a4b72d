package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableFromRecords_PadsRaggedRows(t *testing.T) {
	table := NewTableFromRecords(
		[]string{"A", "B"},
		[][]string{
			{"1"},
			{"2", "x", "extra"},
		},
	)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, 2, table.Rows())
	assert.Equal(t, []string{"A", "B", ""}, table.ColumnNames())
	assert.Equal(t, []string{"", "x"}, table.Column(1).Values)
	assert.Equal(t, []string{"", "extra"}, table.Column(2).Values)
}

func TestNewTable_Rectangular(t *testing.T) {
	table := NewTable(
		&Column{Name: "A", Values: []string{"1", "2", "3"}},
		&Column{Name: "B", Values: []string{"1"}},
	)
	assert.Equal(t, 3, table.Rows())
	assert.Len(t, table.Column(1).Values, 3)
}

func TestTable_DeleteColumn(t *testing.T) {
	table := NewTable(&Column{Name: "A"}, &Column{Name: "B"}, &Column{Name: "C"})

	require.NoError(t, table.DeleteColumn(1))
	assert.Equal(t, []string{"A", "C"}, table.ColumnNames())
	assert.Error(t, table.DeleteColumn(2))
	assert.Error(t, table.DeleteColumn(-1))
}

func TestTable_DeleteColumns(t *testing.T) {
	table := NewTable(&Column{Name: "A"}, &Column{Name: "B"}, &Column{Name: "C"}, &Column{Name: "D"})

	removed := table.DeleteColumns("D", "B", "missing")

	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"A", "C"}, table.ColumnNames())
	assert.Equal(t, 0, table.DeleteColumns())
}

func TestTable_UniqueName(t *testing.T) {
	a := &Column{Name: "X"}
	b := &Column{Name: "X "}
	c := &Column{Name: "Y"}
	table := NewTable(a, b, c)

	assert.Equal(t, "X  ", table.UniqueName(c, "X"))
	assert.Equal(t, "X", table.UniqueName(a, "X"))
	assert.Equal(t, 1, table.CountNamed("X"))
}

func TestTable_UniqueNameWithDuplicates(t *testing.T) {
	a := &Column{Name: "Student"}
	b := &Column{Name: "Student"}
	table := NewTable(a, b)

	assert.Equal(t, 2, table.CountNamed("Student"))
	assert.Equal(t, 0, table.CountNamed("Teacher"))
	assert.Equal(t, "Student ", table.UniqueName(a, "Student"))
	assert.Equal(t, "Teacher", table.UniqueName(nil, "Teacher"))
}

func TestTable_Records(t *testing.T) {
	table := NewTable(
		&Column{Name: "A", Values: []string{"1", "2"}},
		&Column{Name: "B", Values: []string{"3", "4"}},
	)

	assert.Equal(t, [][]string{{"A", "B"}, {"1", "3"}, {"2", "4"}}, table.Records())
}

func TestColumn_Helpers(t *testing.T) {
	c := &Column{Name: "A", Values: []string{"Lesson 1: X", "a", " ", ""}}
	assert.False(t, c.IsDataColumn())
	assert.Equal(t, 3, c.NonEmptyCount())
	assert.Equal(t, "", c.Value(10))

	c.SetValue(RowCategory, "Classwork")
	assert.True(t, c.IsDataColumn())

	var nilCol *Column
	assert.Equal(t, "", nilCol.Value(0))
}
