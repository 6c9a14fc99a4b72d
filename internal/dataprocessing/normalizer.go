package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// LessonKey formats the grouping key of a unit/lesson pair, e.g. "3.2 ".
func LessonKey(unit, lesson int) string {
	return fmt.Sprintf("%d.%d ", unit, lesson)
}

// NormalizeHeaders walks the columns left to right, carrying the most recent
// unit (from the column name) and lesson (from row 0) forward. Every data
// column is renamed to "{unit}.{lesson} {assignment}", made unique, and its
// category row is replaced by the lesson key. The original category is kept
// on the column and in the returned report.
func (p *GradebookProcessor) NormalizeHeaders(t *domain.Table) HeaderReport {
	report := HeaderReport{
		Categories: make(map[string]string),
		LessonKeys: make(map[string]string),
	}

	unit, lesson := 0, 0
	for _, col := range t.Columns() {
		if !col.IsDataColumn() {
			continue
		}
		report.DataColumns++

		if n, ok := matchNumber(unitRe, col.Name); ok {
			unit = n
		}
		if n, ok := matchNumber(lessonRe, col.Value(domain.RowLessonTitle)); ok {
			lesson = n
		}
		prefix := LessonKey(unit, lesson)

		name := col.Value(domain.RowAssignmentName)
		if !strings.HasPrefix(name, prefix) {
			name = prefix + name
		}
		unique := t.UniqueName(col, name)
		if unique != name {
			report.Renamed++
			p.logger.Debug("Column name collision resolved",
				slog.String("name", name),
				slog.Int("markers", len(unique)-len(name)))
		}
		col.Name = unique

		col.Category = strings.TrimSpace(col.Value(domain.RowCategory))
		col.LessonKey = prefix
		col.SetValue(domain.RowCategory, prefix)

		report.Categories[col.Name] = col.Category
		report.LessonKeys[col.Name] = prefix
	}

	p.logger.Info("Normalized column headers",
		slog.Int("data_columns", report.DataColumns),
		slog.Int("renamed", report.Renamed))
	return report
}
