package dataprocessing

import (
	"log/slog"
	"sort"

	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// RemoveEmptyColumns deletes every column holding no more than the configured
// threshold of non-empty cells. Header rows count, so the default threshold of
// four removes columns that carry metadata but no student data. Column 0 holds
// the student names and is never removed, however small the class. It returns
// the names of the removed columns in their original order.
func (p *GradebookProcessor) RemoveEmptyColumns(t *domain.Table) []string {
	threshold := p.options.PruneThreshold

	var removed []string
	for i := t.Len() - 1; i > 0; i-- {
		col := t.Column(i)
		if col.NonEmptyCount() > threshold {
			continue
		}
		removed = append([]string{col.Name}, removed...)
		if err := t.DeleteColumn(i); err != nil {
			p.logger.Warn("Failed to delete empty column",
				slog.Int("index", i),
				slog.String("error", err.Error()))
		}
	}

	p.logger.Info("Removed empty columns",
		slog.Int("removed", len(removed)),
		slog.Int("threshold", threshold),
		slog.Int("remaining", t.Len()))
	return removed
}

// DropColumns deletes the columns at the given positions, as numbered before
// any deletion. Out-of-range positions are skipped with a warning. It returns
// the names of the dropped columns.
func (p *GradebookProcessor) DropColumns(t *domain.Table, indices ...int) []string {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	var dropped []string
	last := -1
	for _, i := range sorted {
		if i == last {
			continue
		}
		last = i
		col := t.Column(i)
		if col == nil {
			p.logger.Warn("Column to drop is out of range",
				slog.Int("index", i),
				slog.Int("columns", t.Len()))
			continue
		}
		name := col.Name
		if err := t.DeleteColumn(i); err != nil {
			continue
		}
		dropped = append([]string{name}, dropped...)
	}

	if len(dropped) > 0 {
		p.logger.Info("Dropped identifying columns", slog.Any("columns", dropped))
	}
	return dropped
}
