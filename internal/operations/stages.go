package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Magendanz/TechSmartAggregator/internal/dataprocessing"
)

// checkContext returns a cancellation error when ctx is done
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// DropColumnsStage removes identifying columns by position
type DropColumnsStage struct {
	BaseStage
	processor *dataprocessing.GradebookProcessor
	indices   []int
}

// NewDropColumnsStage creates a new drop Step
func NewDropColumnsStage(processor *dataprocessing.GradebookProcessor, indices []int) *DropColumnsStage {
	return &DropColumnsStage{
		BaseStage: NewBaseStage(StageIDDropColumns, StageNameDropColumns),
		processor: processor,
		indices:   append([]int(nil), indices...),
	}
}

// Execute drops the configured columns
func (s *DropColumnsStage) Execute(ctx context.Context, state *OperationState) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	dropped := s.processor.DropColumns(state.Table(), s.indices...)
	state.SetContext(ContextKeyDropped, dropped)

	stepState := state.GetStage(s.ID())
	stepState.SetMetadata(MetaColumnsRemoved, len(dropped))
	stepState.SetMessage(fmt.Sprintf("dropped %d column(s)", len(dropped)))
	return nil
}

// NormalizeHeadersStage renames data columns to their lesson-prefixed names
type NormalizeHeadersStage struct {
	BaseStage
	processor *dataprocessing.GradebookProcessor
}

// NewNormalizeHeadersStage creates a new normalization Step
func NewNormalizeHeadersStage(processor *dataprocessing.GradebookProcessor) *NormalizeHeadersStage {
	return &NormalizeHeadersStage{
		BaseStage: NewBaseStage(StageIDNormalize, StageNameNormalize),
		processor: processor,
	}
}

// Execute normalizes the headers and publishes the HeaderReport
func (s *NormalizeHeadersStage) Execute(ctx context.Context, state *OperationState) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	report := s.processor.NormalizeHeaders(state.Table())
	state.SetContext(ContextKeyHeaderReport, report)

	stepState := state.GetStage(s.ID())
	stepState.SetMetadata(MetaDataColumns, report.DataColumns)
	stepState.SetMetadata(MetaRenamed, report.Renamed)
	stepState.SetMessage(fmt.Sprintf("normalized %d data column(s)", report.DataColumns))
	return nil
}

// PruneColumnsStage removes columns without student data
type PruneColumnsStage struct {
	BaseStage
	processor *dataprocessing.GradebookProcessor
}

// NewPruneColumnsStage creates a new pruning Step
func NewPruneColumnsStage(processor *dataprocessing.GradebookProcessor) *PruneColumnsStage {
	return &PruneColumnsStage{
		BaseStage: NewBaseStage(StageIDPrune, StageNamePrune),
		processor: processor,
	}
}

// Execute prunes empty columns
func (s *PruneColumnsStage) Execute(ctx context.Context, state *OperationState) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	removed := s.processor.RemoveEmptyColumns(state.Table())
	state.SetContext(ContextKeyPruned, removed)

	stepState := state.GetStage(s.ID())
	stepState.SetMetadata(MetaColumnsRemoved, len(removed))
	stepState.SetMessage(fmt.Sprintf("pruned %d column(s)", len(removed)))
	return nil
}

// AggregateStage folds one aggregation group into per-lesson summary columns
type AggregateStage struct {
	BaseStage
	processor *dataprocessing.GradebookProcessor
	group     dataprocessing.AggregationGroup
}

// NewAggregateStage creates an aggregation Step for one group
func NewAggregateStage(processor *dataprocessing.GradebookProcessor, group dataprocessing.AggregationGroup) *AggregateStage {
	return &AggregateStage{
		BaseStage: NewBaseStage(AggregateStageID(group.Label), "Aggregate "+group.Label),
		processor: processor,
		group:     group,
	}
}

// Validate requires normalized headers and a non-empty category set
func (s *AggregateStage) Validate(state *OperationState) error {
	if err := s.BaseStage.Validate(state); err != nil {
		return err
	}
	if len(s.group.Categories) == 0 {
		return fmt.Errorf("aggregation group %q has no categories", s.group.Label)
	}
	if _, ok := state.GetContext(ContextKeyHeaderReport); !ok {
		return fmt.Errorf("headers have not been normalized")
	}
	return nil
}

// Execute aggregates the group
func (s *AggregateStage) Execute(ctx context.Context, state *OperationState) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	report := s.processor.AggregateAssignments(state.Table(), s.group)
	state.SetContext(s.ID(), report)

	stepState := state.GetStage(s.ID())
	stepState.SetMetadata(MetaGroups, report.Groups)
	stepState.SetMetadata(MetaColumnsMerged, report.Merged)
	stepState.SetMetadata(MetaColumnsRemoved, len(report.Removed))
	stepState.SetMessage(fmt.Sprintf("%d lesson(s), %d column(s) merged", report.Groups, report.Merged))
	return nil
}

// ReduceScoresStage rewrites assessment cells to bare scores
type ReduceScoresStage struct {
	BaseStage
	processor   *dataprocessing.GradebookProcessor
	assessments dataprocessing.CategorySet
	logger      *slog.Logger
}

// NewReduceScoresStage creates a new reduction Step
func NewReduceScoresStage(processor *dataprocessing.GradebookProcessor, assessments dataprocessing.CategorySet, logger *slog.Logger) *ReduceScoresStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReduceScoresStage{
		BaseStage:   NewBaseStage(StageIDReduce, StageNameReduce),
		processor:   processor,
		assessments: assessments,
		logger:      logger.With(slog.String("step", StageIDReduce)),
	}
}

// Validate requires normalized headers
func (s *ReduceScoresStage) Validate(state *OperationState) error {
	if err := s.BaseStage.Validate(state); err != nil {
		return err
	}
	if _, ok := state.GetContext(ContextKeyHeaderReport); !ok {
		return fmt.Errorf("headers have not been normalized")
	}
	return nil
}

// Execute reduces the assessment columns
func (s *ReduceScoresStage) Execute(ctx context.Context, state *OperationState) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	report, err := s.processor.ReduceScores(state.Table(), s.assessments)
	state.SetContext(ContextKeyReduceReport, report)

	stepState := state.GetStage(s.ID())
	stepState.SetMetadata(MetaScores, report.Scores)
	stepState.SetMetadata(MetaCleared, report.Cleared)
	stepState.SetMetadata(MetaMismatches, len(report.Mismatches))
	if err != nil {
		s.logger.ErrorContext(ctx, "Denominator mismatch aborted reduction",
			slog.String("operation_id", state.ID),
			slog.String("error", err.Error()))
		return err
	}

	stepState.SetMessage(fmt.Sprintf("%d score(s) in %d column(s)", report.Scores, report.Columns))
	return nil
}

// PipelineOptions selects the steps of a gradebook run
type PipelineOptions struct {
	DropColumns []int
	Taxonomy    dataprocessing.Taxonomy
}

// NewGradebookRegistry registers the gradebook steps in execution order:
// drop, normalize, prune, one aggregation per group, reduce.
func NewGradebookRegistry(processor *dataprocessing.GradebookProcessor, opts PipelineOptions, logger *slog.Logger) (*Registry, error) {
	registry := NewRegistry()

	steps := []Step{
		NewDropColumnsStage(processor, opts.DropColumns),
		NewNormalizeHeadersStage(processor),
		NewPruneColumnsStage(processor),
	}
	for _, group := range opts.Taxonomy.Assignments {
		steps = append(steps, NewAggregateStage(processor, group))
	}
	steps = append(steps, NewReduceScoresStage(processor, opts.Taxonomy.Assessments, logger))

	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, fmt.Errorf("failed to register step %s: %w", step.ID(), err)
		}
	}
	return registry, nil
}
