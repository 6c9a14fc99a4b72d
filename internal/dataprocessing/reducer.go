package dataprocessing

import (
	"log/slog"

	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// ReduceScores rewrites every student cell of the assessment columns to the
// bare numerator of its "n/d " score and stores the denominator in row 3.
// Cells without a score ("In progress", blanks, free text) are cleared.
//
// When rows disagree on the denominator the last one wins and the mismatch is
// reported; under DenominatorStrict the first mismatch aborts with a
// *MismatchError instead. Columns already rewritten before the error stay
// rewritten.
func (p *GradebookProcessor) ReduceScores(t *domain.Table, categories CategorySet) (ReduceReport, error) {
	var report ReduceReport

	for _, col := range t.Columns() {
		if col.Category == "" || !categories.Contains(col.Category) {
			continue
		}
		report.Columns++

		seen := ""
		for row := domain.FirstDataRow; row < t.Rows(); row++ {
			f, ok := ParseFraction(col.Value(row))
			if !ok {
				if col.Value(row) != "" {
					report.Cleared++
				}
				col.SetValue(row, "")
				continue
			}

			if seen != "" && seen != f.Denominator {
				mismatch := DenominatorMismatch{
					Column:   col.Name,
					Row:      row,
					Previous: seen,
					Current:  f.Denominator,
				}
				if p.options.DenominatorPolicy == DenominatorStrict {
					return report, &MismatchError{DenominatorMismatch: mismatch}
				}
				report.Mismatches = append(report.Mismatches, mismatch)
				p.logger.Warn("Assessment rows disagree on possible score",
					slog.String("column", col.Name),
					slog.Int("row", row),
					slog.String("previous", seen),
					slog.String("current", f.Denominator))
			}
			seen = f.Denominator

			col.SetValue(row, f.Numerator)
			col.SetValue(domain.RowPossible, f.Denominator)
			report.Scores++
		}
	}

	p.logger.Info("Reduced assessment scores",
		slog.Int("columns", report.Columns),
		slog.Int("scores", report.Scores),
		slog.Int("cleared", report.Cleared),
		slog.Int("denominator_mismatches", len(report.Mismatches)))
	return report, nil
}
