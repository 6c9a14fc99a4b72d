// Package dataprocessing implements the gradebook transformation engine: it
// turns a TechSmart gradebook export (one column per assignment, four metadata
// rows) into a condensed per-lesson report.
//
// # Architecture
//
// The engine is a sequence of in-place passes over a domain.Table:
//
// 1. DropColumns: removes identifying columns (student e-mail)
// 2. NormalizeHeaders: derives "{unit}.{lesson} " lesson keys and unique names
// 3. RemoveEmptyColumns: discards placeholder columns without student data
// 4. AggregateAssignments: merges assignment columns into completion counts
// 5. ReduceScores: rewrites "n/d " assessment scores to bare numerators
//
// NormalizeHeaders overwrites the category row with the lesson key, so the
// category is captured on the column (Column.Category) and every later pass
// selects columns through it.
//
// # Usage
//
//	proc := dataprocessing.NewGradebookProcessor(logger, dataprocessing.DefaultOptions())
//	taxonomy := dataprocessing.DetailedTaxonomy()
//
//	proc.DropColumns(table, 2)
//	proc.NormalizeHeaders(table)
//	proc.RemoveEmptyColumns(table)
//	for _, group := range taxonomy.Assignments {
//	    proc.AggregateAssignments(table, group)
//	}
//	report, err := proc.ReduceScores(table, taxonomy.Assessments)
//
// # Cell formats
//
// Assignment cells are read by ParseAssignmentScore: "Turned In" counts as
// completed, anything mentioning "Syntax error" does not, and "n/d " fractions
// count when n/d >= CompletionThreshold. Unrecognised text is never an error;
// it scores 0 (assignments) or is cleared (assessments).
package dataprocessing
