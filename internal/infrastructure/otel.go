package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	ServiceName    = "techsmart-aggregator"
	ServiceVersion = "1.0.0"
	MeterName      = "github.com/Magendanz/TechSmartAggregator"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	// EnableTracing exports spans as JSON lines to TraceWriter, or to
	// TraceFile when no writer is given.
	EnableTracing bool
	TraceFile     string
	TraceWriter   io.Writer

	// MetricsFile receives a Prometheus text exposition on Shutdown.
	MetricsFile string
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Logger         *slog.Logger

	metricsFile string
	traceFile   *os.File
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
	}
}

// InitializeOTel sets up tracing and metrics for a single run. Metrics are
// always collected into a private registry; tracing is optional.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = GetLogger()
	}

	ctx := context.Background()

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{
		Logger:      logger,
		metricsFile: cfg.MetricsFile,
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	} else {
		providers.Tracer = noop.NewTracerProvider().Tracer(MeterName)
	}

	if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
		providers.closeTraceFile()
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.DebugContext(ctx, "OpenTelemetry initialization complete",
		slog.String("service", cfg.ServiceName),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.String("metrics_file", cfg.MetricsFile))

	return providers, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg *OTelConfig) (*resource.Resource, error) {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	), nil
}

// initializeTracing sets up OpenTelemetry tracing
func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	w := cfg.TraceWriter
	if w == nil {
		if cfg.TraceFile == "" {
			return errors.New("tracing enabled without a trace destination")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
			return fmt.Errorf("failed to create trace directory: %w", err)
		}
		f, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open trace file: %w", err)
		}
		providers.traceFile = f
		w = f
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		providers.closeTraceFile()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))

	otel.SetTracerProvider(tp)

	providers.Logger.DebugContext(ctx, "Tracing initialized", slog.String("trace_file", cfg.TraceFile))

	return nil
}

// initializeMetrics wires the OTel meter to a private Prometheus registry
func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))

	providers.Logger.DebugContext(ctx, "Metrics initialized")
	return nil
}

// WriteMetrics writes the current metric values in Prometheus text format.
func (p *OTelProviders) WriteMetrics(path string) error {
	if p.Registry == nil {
		return errors.New("metrics not initialized")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	return prometheus.WriteToTextfile(path, p.Registry)
}

// Shutdown flushes spans, writes the metrics file if one was configured
// and releases the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.metricsFile != "" {
		if err := p.WriteMetrics(p.metricsFile); err != nil {
			errs = append(errs, fmt.Errorf("metrics file: %w", err))
		}
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if err := p.closeTraceFile(); err != nil {
		errs = append(errs, fmt.Errorf("trace file: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %w", errors.Join(errs...))
	}

	p.Logger.DebugContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

func (p *OTelProviders) closeTraceFile() error {
	if p.traceFile == nil {
		return nil
	}
	err := p.traceFile.Close()
	p.traceFile = nil
	return err
}

// PipelineMetrics holds the gradebook run metrics
type PipelineMetrics struct {
	OperationExecutionsTotal   metric.Int64Counter
	OperationExecutionDuration metric.Float64Histogram
	OperationStepsTotal        metric.Int64Counter
	OperationStepDuration      metric.Float64Histogram
	OperationErrors            metric.Int64Counter

	StudentsProcessed     metric.Int64Counter
	ColumnsRemoved        metric.Int64Counter
	ColumnsMerged         metric.Int64Counter
	ScoresComputed        metric.Int64Counter
	DenominatorMismatches metric.Int64Counter
}

// CreatePipelineMetrics creates the gradebook run metrics
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	m := &PipelineMetrics{}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.OperationExecutionsTotal, "operation_executions_total", "Total number of aggregation runs"},
		{&m.OperationStepsTotal, "operation_steps_total", "Total number of pipeline steps executed"},
		{&m.OperationErrors, "operation_errors_total", "Total number of failed runs"},
		{&m.StudentsProcessed, "gradebook_students_total", "Student rows processed"},
		{&m.ColumnsRemoved, "gradebook_columns_removed_total", "Columns removed by dropping or pruning"},
		{&m.ColumnsMerged, "gradebook_columns_merged_total", "Assignment columns folded into a summary column"},
		{&m.ScoresComputed, "gradebook_scores_total", "Assessment cells reduced to a fraction"},
		{&m.DenominatorMismatches, "gradebook_denominator_mismatches_total", "Assessment denominators that changed within a column"},
	}
	for _, c := range counters {
		if *c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, err
		}
	}

	m.OperationExecutionDuration, err = meter.Float64Histogram(
		"operation_execution_duration_seconds",
		metric.WithDescription("Aggregation run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.OperationStepDuration, err = meter.Float64Histogram(
		"operation_step_duration_seconds",
		metric.WithDescription("Pipeline step duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// generateInstanceID generates a unique instance identifier
func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// RecordOperationMetrics records metrics for a finished run
func RecordOperationMetrics(ctx context.Context, metrics *PipelineMetrics, operationID string, duration time.Duration, err error) {
	if metrics == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation.id", operationID),
	}

	metrics.OperationExecutionsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))

	status := "success"
	if err != nil {
		status = "failure"
		metrics.OperationErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("error.type", fmt.Sprintf("%T", err))))
	}
	metrics.OperationExecutionDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(attribute.String("status", status)))
}

// RecordOperationStepMetrics records metrics for one pipeline step
func RecordOperationStepMetrics(ctx context.Context, metrics *PipelineMetrics, stepID string, duration time.Duration, success bool) {
	if metrics == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("step.id", stepID),
		attribute.String("status", status),
	)

	metrics.OperationStepsTotal.Add(ctx, 1, attrs)
	metrics.OperationStepDuration.Record(ctx, duration.Seconds(), attrs)
}
