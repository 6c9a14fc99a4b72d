package dataprocessing

import (
	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// col builds a column from its four metadata rows followed by student cells.
func col(name, lessonTitle, assignment, category, possible string, students ...string) *domain.Column {
	values := []string{lessonTitle, assignment, category, possible}
	values = append(values, students...)
	return &domain.Column{Name: name, Values: values}
}

// names returns the current column names of t.
func names(t *domain.Table) []string {
	return t.ColumnNames()
}

func newTestProcessor() *GradebookProcessor {
	return NewGradebookProcessor(nil, DefaultOptions())
}

// normalized builds a table and runs NormalizeHeaders on it.
func normalized(columns ...*domain.Column) *domain.Table {
	t := domain.NewTable(columns...)
	newTestProcessor().NormalizeHeaders(t)
	return t
}
