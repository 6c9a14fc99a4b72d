package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Magendanz/TechSmartAggregator/internal/config"
	"github.com/Magendanz/TechSmartAggregator/internal/dataprocessing"
	"github.com/Magendanz/TechSmartAggregator/internal/exporter"
	"github.com/Magendanz/TechSmartAggregator/internal/files"
	"github.com/Magendanz/TechSmartAggregator/internal/infrastructure"
	"github.com/Magendanz/TechSmartAggregator/internal/operations"
	"github.com/Magendanz/TechSmartAggregator/internal/validation"
)

// CustomTaxonomy names a taxonomy assembled from configured groups
const CustomTaxonomy = "custom"

// Application holds everything one aggregation run needs
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Files         *files.Manager
	Loader        *files.Loader
	Validator     *validation.FileValidator
	Writer        *exporter.CSVWriter
	Viewer        Launcher // nil disables the viewer
}

// Result describes a finished run
type Result struct {
	Input    string
	Output   string
	Response *operations.OperationResponse
}

// NewApplication wires the run components from cfg
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	paths.LogPathResolution(logger)

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.ServiceVersion = config.AppVersion
	otelCfg.EnableTracing = cfg.Telemetry.TracingEnabled
	otelCfg.TraceFile = paths.TraceFile
	if cfg.Telemetry.MetricsFile != "" {
		otelCfg.MetricsFile = filepath.Join(paths.WorkingDir, cfg.Telemetry.MetricsFile)
		if filepath.IsAbs(cfg.Telemetry.MetricsFile) {
			otelCfg.MetricsFile = cfg.Telemetry.MetricsFile
		}
	}

	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: providers,
		Files:         files.NewManager(paths),
		Loader:        files.NewLoader(logger),
		Validator:     validation.NewFileValidator(logger),
		Writer:        exporter.NewCSVWriter(paths),
	}
	if cfg.Viewer.Enabled {
		a.Viewer = NewSystemLauncher(cfg.Viewer, logger)
	}
	return a, nil
}

// Run condenses the gradebook at input and writes the report. The viewer is
// launched on the saved file; a viewer failure is logged, never returned.
func (a *Application) Run(ctx context.Context, input string) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)
	logger := a.Logger.With(slog.String("run_id", runID))

	inputPath, err := a.Files.ResolveInput(input)
	if err != nil {
		return nil, err
	}
	if err := a.Validator.ValidateInputFile(inputPath); err != nil {
		return nil, err
	}

	if size, err := a.Files.GetFileSize(inputPath); err == nil {
		logger.DebugContext(ctx, "Loading gradebook",
			slog.String("input", inputPath),
			slog.Int64("bytes", size))
	}

	table, err := a.Loader.Load(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	manager, err := a.newManager(logger)
	if err != nil {
		return nil, err
	}

	state := operations.NewOperationState(runID, table)
	state.Source = inputPath

	result := &Result{Input: inputPath}
	resp, err := manager.Execute(ctx, state)
	result.Response = resp
	if err != nil {
		return result, fmt.Errorf("aggregation failed: %w", err)
	}

	output := a.Files.OutputPath(inputPath)
	if err := a.Validator.ValidateOutputDirectory(filepath.Dir(output)); err != nil {
		return result, err
	}
	if a.Files.FileExists(output) {
		logger.InfoContext(ctx, "Replacing existing report", slog.String("output", output))
	}
	if err := a.Writer.WriteTable(output, table, a.Config.Output.BOM); err != nil {
		return result, err
	}
	result.Output = output

	display := output
	if rel, err := a.Files.GetRelativePath(output); err == nil {
		display = rel
	}
	logger.InfoContext(ctx, "Report saved",
		slog.String("input", inputPath),
		slog.String("output", display),
		slog.Int("columns", table.Len()),
		slog.Int("students", table.StudentCount()),
		slog.Duration("duration", resp.Duration))

	if a.Viewer != nil {
		if err := a.Viewer.Open(ctx, output); err != nil {
			logger.WarnContext(ctx, "Could not open report viewer",
				slog.String("output", output),
				slog.String("error", err.Error()))
		}
	}

	return result, nil
}

// newManager builds the step pipeline from the pipeline configuration
func (a *Application) newManager(logger *slog.Logger) (*operations.Manager, error) {
	pipeline := a.Config.Pipeline

	taxonomy, err := BuildTaxonomy(pipeline)
	if err != nil {
		return nil, err
	}

	processor := dataprocessing.NewGradebookProcessor(logger, dataprocessing.ProcessingOptions{
		PruneThreshold:    pipeline.PruneThreshold,
		DenominatorPolicy: dataprocessing.DenominatorPolicy(pipeline.DenominatorPolicy),
	})

	registry, err := operations.NewGradebookRegistry(processor, operations.PipelineOptions{
		DropColumns: pipeline.DropColumns,
		Taxonomy:    taxonomy,
	}, logger)
	if err != nil {
		return nil, err
	}

	opCfg := operations.NewConfig()
	if pipeline.StageTimeout > 0 {
		opCfg.StageTimeout = pipeline.StageTimeout
	}

	manager := operations.NewManager(registry, opCfg, logger)
	if a.OTelProviders != nil {
		tracer, err := operations.NewOperationTracer(a.OTelProviders)
		if err != nil {
			return nil, err
		}
		manager.SetTracer(tracer)
	}

	logger.Debug("Pipeline configured",
		slog.String("taxonomy", taxonomy.Name),
		slog.Any("steps", registry.ListIDs()))
	return manager, nil
}

// Shutdown flushes telemetry
func (a *Application) Shutdown(ctx context.Context) error {
	if a.OTelProviders == nil {
		return nil
	}
	return a.OTelProviders.Shutdown(ctx)
}

// BuildTaxonomy starts from the configured preset and applies custom groups
// and assessment categories when they are set.
func BuildTaxonomy(cfg config.PipelineConfig) (dataprocessing.Taxonomy, error) {
	taxonomy, err := dataprocessing.TaxonomyByName(cfg.Preset)
	if err != nil {
		return dataprocessing.Taxonomy{}, err
	}

	if len(cfg.Groups) > 0 {
		groups := make([]dataprocessing.AggregationGroup, 0, len(cfg.Groups))
		for _, g := range cfg.Groups {
			if len(g.Categories) == 0 {
				return dataprocessing.Taxonomy{}, fmt.Errorf("aggregation group %q has no categories", g.Label)
			}
			groups = append(groups, dataprocessing.AggregationGroup{
				Label:      g.Label,
				Categories: dataprocessing.NewCategorySet(g.Categories...),
				Rename:     g.Rename,
			})
		}
		taxonomy.Assignments = groups
		taxonomy.Name = CustomTaxonomy
	}
	if len(cfg.Assessments) > 0 {
		taxonomy.Assessments = dataprocessing.NewCategorySet(cfg.Assessments...)
		taxonomy.Name = CustomTaxonomy
	}
	return taxonomy, nil
}
