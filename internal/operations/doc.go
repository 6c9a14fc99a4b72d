// Package operations runs the gradebook transformation as a sequence of
// steps over one loaded table.
//
// Core Components:
//
// Manager: executes the registered steps in order, records per-step state,
// applies a timeout to each step and stops at the first failure. Remaining
// steps are marked skipped.
//
// Step: a single unit of work. The gradebook steps wrap the
// dataprocessing.GradebookProcessor passes: DropColumnsStage,
// NormalizeHeadersStage, PruneColumnsStage, one AggregateStage per
// aggregation group and ReduceScoresStage.
//
// Registry: keeps steps in registration order.
//
// OperationState: the table being transformed, the per-step states and the
// reports steps publish for later steps and for the caller.
//
// OperationTracer: optional spans and metrics for runs and steps.
//
// Example usage:
//
//	processor := dataprocessing.NewGradebookProcessor(logger, dataprocessing.DefaultOptions())
//	registry, err := operations.NewGradebookRegistry(processor, operations.PipelineOptions{
//		DropColumns: []int{2},
//		Taxonomy:    dataprocessing.DetailedTaxonomy(),
//	}, logger)
//
//	manager := operations.NewManager(registry, operations.NewConfig(), logger)
//	state := operations.NewOperationState(runID, table)
//	resp, err := manager.Execute(ctx, state)
package operations
