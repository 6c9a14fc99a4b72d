package operations

import (
	"strings"
	"time"
)

// Step identifiers
const (
	StageIDDropColumns = "drop_columns"
	StageIDNormalize   = "normalize_headers"
	StageIDPrune       = "prune_columns"
	StageIDReduce      = "reduce_scores"

	stageIDAggregatePrefix = "aggregate_"
)

// Step names
const (
	StageNameDropColumns = "Drop Identifying Columns"
	StageNameNormalize   = "Normalize Headers"
	StageNamePrune       = "Prune Empty Columns"
	StageNameReduce      = "Reduce Assessment Scores"
)

// Context keys for reports shared between steps
const (
	ContextKeyHeaderReport = "header_report"
	ContextKeyPruned       = "pruned_columns"
	ContextKeyDropped      = "dropped_columns"
	ContextKeyReduceReport = "reduce_report"
)

// Step metadata keys. The tracer turns these into run metrics.
const (
	MetaColumnsRemoved = "columns_removed"
	MetaColumnsMerged  = "columns_merged"
	MetaGroups         = "groups"
	MetaDataColumns    = "data_columns"
	MetaRenamed        = "renamed"
	MetaScores         = "scores"
	MetaCleared        = "cleared"
	MetaMismatches     = "denominator_mismatches"
)

// DefaultStageTimeout bounds a single step
const DefaultStageTimeout = time.Minute

// AggregateStageID returns the step ID of an aggregation group
func AggregateStageID(label string) string {
	return stageIDAggregatePrefix + strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", "_"))
}

// StepSummary is the reported outcome of one step
type StepSummary struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Status   StepStatus             `json:"status"`
	Duration time.Duration          `json:"duration"`
	Message  string                 `json:"message,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// OperationResponse represents the response from an operation execution
type OperationResponse struct {
	ID       string               `json:"id"`
	Status   OperationStatusValue `json:"status"`
	Duration time.Duration        `json:"duration"`
	Steps    []StepSummary        `json:"steps"`
	Error    string               `json:"error,omitempty"`
}
