package operations

import (
	"context"
	"fmt"
	"time"

	"github.com/Magendanz/TechSmartAggregator/internal/infrastructure"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "github.com/Magendanz/TechSmartAggregator/operations"
)

// OperationTracer provides OpenTelemetry instrumentation for operations.
// A nil tracer is valid and records nothing.
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a new operation tracer
func NewOperationTracer(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	metrics, err := infrastructure.CreatePipelineMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	return &OperationTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// Metrics returns the run metrics
func (pt *OperationTracer) Metrics() *infrastructure.PipelineMetrics {
	if pt == nil {
		return nil
	}
	return pt.metrics
}

// TraceOperationExecution creates a span for the entire operation execution
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, state *OperationState) (context.Context, trace.Span) {
	if pt == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation.id", state.ID),
		attribute.String("operation.source", state.Source),
	}
	if t := state.Table(); t != nil {
		attrs = append(attrs,
			attribute.Int("gradebook.columns", t.Len()),
			attribute.Int("gradebook.rows", t.Rows()))
	}

	return pt.tracer.Start(ctx, "operation.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// TraceStageExecution creates a span for individual Step execution
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID, stageID string) (context.Context, trace.Span) {
	if pt == nil {
		return ctx, trace.SpanFromContext(ctx)
	}

	return pt.tracer.Start(ctx, "operation.step."+stageID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stageID),
		),
	)
}

// RecordStageCompletion records Step completion with metrics and span attributes
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stepState *StepState, duration time.Duration, err error) {
	if pt == nil {
		return
	}

	summary := stepState.snapshot()
	infrastructure.RecordOperationStepMetrics(ctx, pt.metrics, summary.ID, duration, err == nil)

	stepAttr := metric.WithAttributes(attribute.String("step.id", summary.ID))
	for key, counter := range map[string]metric.Int64Counter{
		MetaColumnsRemoved: pt.metrics.ColumnsRemoved,
		MetaColumnsMerged:  pt.metrics.ColumnsMerged,
		MetaScores:         pt.metrics.ScoresComputed,
		MetaMismatches:     pt.metrics.DenominatorMismatches,
	} {
		if n, ok := summary.Metadata[key].(int); ok {
			span.SetAttributes(attribute.Int("step."+key, n))
			if n > 0 {
				counter.Add(ctx, int64(n), stepAttr)
			}
		}
	}

	span.SetAttributes(attribute.Float64("step.duration_seconds", duration.Seconds()))
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "step completed")
}

// RecordOperationCompletion records operation completion with metrics and span status
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, state *OperationState, err error) {
	if pt == nil {
		return
	}

	infrastructure.RecordOperationMetrics(ctx, pt.metrics, state.ID, state.Duration(), err)
	if t := state.Table(); t != nil && err == nil {
		pt.metrics.StudentsProcessed.Add(ctx, int64(t.StudentCount()))
	}

	span.SetAttributes(
		attribute.String("operation.status", string(state.GetStatus())),
		attribute.Float64("operation.duration_seconds", state.Duration().Seconds()),
	)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "operation completed")
}
