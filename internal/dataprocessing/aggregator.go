package dataprocessing

import (
	"log/slog"
	"strconv"

	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// lessonGroup is the set of sibling columns sharing a lesson key, in column order.
type lessonGroup struct {
	key     string
	columns []*domain.Column
}

// groupByLesson selects the columns whose captured category belongs to
// categories and groups them by lesson key. Groups are ordered by the
// position of their first column.
func groupByLesson(t *domain.Table, categories CategorySet) []*lessonGroup {
	var groups []*lessonGroup
	index := make(map[string]*lessonGroup)
	for _, col := range t.Columns() {
		if col.Category == "" || !categories.Contains(col.Category) {
			continue
		}
		g, ok := index[col.LessonKey]
		if !ok {
			g = &lessonGroup{key: col.LessonKey}
			index[col.LessonKey] = g
			groups = append(groups, g)
		}
		g.columns = append(g.columns, col)
	}
	return groups
}

// AggregateAssignments merges the columns of each lesson that belong to the
// group's categories into the lesson's first such column. Each student cell of
// that representative becomes the number of completed assignments, row 3 the
// number of assignments merged, and row 2 the "Assignments" marker. The other
// columns of the lesson are deleted.
func (p *GradebookProcessor) AggregateAssignments(t *domain.Table, group AggregationGroup) AggregateReport {
	report := AggregateReport{Label: group.Label}

	groups := groupByLesson(t, group.Categories)
	var victims []string
	for _, g := range groups {
		first := g.columns[0]
		for row := domain.FirstDataRow; row < t.Rows(); row++ {
			sum := 0
			for _, col := range g.columns {
				sum += ParseAssignmentScore(col.Value(row))
			}
			first.SetValue(row, strconv.Itoa(sum))
		}
		first.SetValue(domain.RowPossible, strconv.Itoa(len(g.columns)))
		first.SetValue(domain.RowCategory, domain.AssignmentsMarker)

		for _, col := range g.columns[1:] {
			victims = append(victims, col.Name)
		}
		report.Groups++
		report.Merged += len(g.columns)
	}

	// Victims are matched by name, so renaming must wait until they are gone.
	t.DeleteColumns(victims...)
	if group.Rename {
		for _, g := range groups {
			first := g.columns[0]
			first.Name = t.UniqueName(first, g.key+group.Label)
		}
	}
	report.Removed = victims

	p.logger.Info("Aggregated assignment columns",
		slog.String("group", group.Label),
		slog.Int("lessons", report.Groups),
		slog.Int("merged", report.Merged),
		slog.Int("removed", len(victims)))
	return report
}
