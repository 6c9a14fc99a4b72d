package operations

import (
	"context"
	"log/slog"
	"time"
)

// logOperationStart logs the start of an operation execution
func (m *Manager) logOperationStart(ctx context.Context, state *OperationState, stepCount int) {
	attrs := []any{
		slog.String("operation_id", state.ID),
		slog.String("source", state.Source),
		slog.Int("step_count", stepCount),
	}
	if t := state.Table(); t != nil {
		attrs = append(attrs, slog.Int("columns", t.Len()), slog.Int("rows", t.Rows()))
	}
	m.logger.InfoContext(ctx, "operation_start", attrs...)
}

// logOperationComplete logs the completion of an operation execution
func (m *Manager) logOperationComplete(ctx context.Context, operationID string, duration time.Duration, status string) {
	m.logger.InfoContext(ctx, "operation_complete",
		slog.String("operation_id", operationID),
		slog.String("status", status),
		slog.Duration("duration", duration))
}

// logOperationError logs an operation error
func (m *Manager) logOperationError(ctx context.Context, operationID string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	m.logger.ErrorContext(ctx, "operation_error",
		slog.String("operation_id", operationID),
		slog.String("error", errorMsg))
}

// logStageStart logs the start of a Step execution
func (m *Manager) logStageStart(ctx context.Context, operationID, stageID string) {
	m.logger.DebugContext(ctx, "stage_start",
		slog.String("operation_id", operationID),
		slog.String("step", stageID))
}

// logStageComplete logs the completion of a Step execution with its report
func (m *Manager) logStageComplete(ctx context.Context, operationID, stageID string, duration time.Duration, stepState *StepState) {
	summary := stepState.snapshot()
	m.logger.InfoContext(ctx, "stage_complete",
		slog.String("operation_id", operationID),
		slog.String("step", stageID),
		slog.Duration("duration", duration),
		slog.Any("report", summary.Metadata))
}

// logStageError logs a Step error
func (m *Manager) logStageError(ctx context.Context, operationID, stageID string, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	m.logger.ErrorContext(ctx, "stage_error",
		slog.String("operation_id", operationID),
		slog.String("step", stageID),
		slog.String("error", errorMsg))
}
