package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestOTelInitialization tests OpenTelemetry initialization
func TestOTelInitialization(t *testing.T) {
	providers, err := InitializeOTel(nil, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	// Tracing is off by default but a usable tracer is still provided.
	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)

	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestTracingToWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultOTelConfig()
	cfg.EnableTracing = true
	cfg.TraceWriter = &buf

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "aggregate")
	traceID := TraceIDFromContext(ctx)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"aggregate"`)
	assert.Contains(t, buf.String(), "boom")
}

func TestTracingToFile(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.EnableTracing = true
	cfg.TraceFile = filepath.Join(t.TempDir(), "logs", "trace.json")

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)

	_, span := providers.Tracer.Start(context.Background(), "load")
	span.End()
	require.NoError(t, providers.Shutdown(context.Background()))

	content, err := os.ReadFile(cfg.TraceFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Name":"load"`)
}

func TestTracingWithoutDestination(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.EnableTracing = true

	_, err := InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)
}

func TestTraceIDFromContextWithoutSpan(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))
	// no span; must not panic
	RecordError(context.Background(), errors.New("ignored"))
}

// TestPipelineMetrics tests metric creation and the textfile export
func TestPipelineMetrics(t *testing.T) {
	cfg := DefaultOTelConfig()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "metrics", "aggregator.prom")

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.ColumnsMerged.Add(ctx, 3)
	metrics.StudentsProcessed.Add(ctx, 25)
	RecordOperationStepMetrics(ctx, metrics, "prune", 10*time.Millisecond, true)
	RecordOperationMetrics(ctx, metrics, "run-1", time.Second, nil)
	RecordOperationMetrics(ctx, metrics, "run-2", time.Second, errors.New("bad"))

	require.NoError(t, providers.Shutdown(ctx))

	content, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "gradebook_columns_merged_total")
	assert.Contains(t, text, "gradebook_students_total")
	assert.Contains(t, text, "operation_steps_total")
	assert.Contains(t, text, "operation_errors_total")
	assert.Contains(t, text, "operation_execution_duration_seconds")
}

func TestRecordMetricsNil(t *testing.T) {
	ctx := context.Background()
	RecordOperationMetrics(ctx, nil, "x", time.Second, nil)
	RecordOperationStepMetrics(ctx, nil, "x", time.Second, false)
}
