package dataprocessing

import (
	"errors"
	"fmt"
)

// DenominatorPolicy decides what happens when rows of an assessment column
// disagree on the possible score.
type DenominatorPolicy string

const (
	// DenominatorLastWins keeps the last observed denominator and records the
	// disagreement in the ReduceReport.
	DenominatorLastWins DenominatorPolicy = "last"
	// DenominatorStrict aborts the reduction on the first disagreement.
	DenominatorStrict DenominatorPolicy = "strict"
)

// ProcessingOptions configures the transformation stages.
type ProcessingOptions struct {
	// PruneThreshold is the maximum number of non-empty cells (header rows
	// included) a column may hold and still be treated as empty.
	PruneThreshold int

	// DenominatorPolicy applies to the score reducer.
	DenominatorPolicy DenominatorPolicy
}

// DefaultOptions returns default processing options
func DefaultOptions() ProcessingOptions {
	return ProcessingOptions{
		PruneThreshold:    4,
		DenominatorPolicy: DenominatorLastWins,
	}
}

// HeaderReport describes the outcome of header normalization.
type HeaderReport struct {
	// DataColumns is the number of columns that carried a category label.
	DataColumns int
	// Renamed counts columns that needed a collision marker.
	Renamed int
	// Categories maps each normalized column name to its original category.
	Categories map[string]string
	// LessonKeys maps each normalized column name to its lesson key.
	LessonKeys map[string]string
}

// AggregateReport describes one aggregation pass.
type AggregateReport struct {
	Label   string
	Groups  int
	Merged  int
	Removed []string
}

// ReduceReport describes a score reduction pass.
type ReduceReport struct {
	Columns    int
	Scores     int
	Cleared    int
	Mismatches []DenominatorMismatch
}

// DenominatorMismatch records rows of one column that disagree on the
// possible score.
type DenominatorMismatch struct {
	Column   string
	Row      int
	Previous string
	Current  string
}

// ErrDenominatorMismatch is returned under DenominatorStrict.
var ErrDenominatorMismatch = errors.New("inconsistent denominators")

// MismatchError carries the offending cell of a strict reduction.
type MismatchError struct {
	DenominatorMismatch
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: column %q row %d has denominator %s, expected %s",
		ErrDenominatorMismatch, e.Column, e.Row, e.Current, e.Previous)
}

func (e *MismatchError) Unwrap() error {
	return ErrDenominatorMismatch
}
