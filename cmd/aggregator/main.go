// Command aggregator condenses a TechSmart gradebook export into a report
// with one column per lesson assessment and one aggregated assignments
// column per configured group.
//
// Usage:
//
//	aggregator <file.csv>
//
// The report is written to the configured output directory under the input's
// name. Settings come from aggregator.yaml and TSA_* environment variables.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Magendanz/TechSmartAggregator/internal/app"
	"github.com/Magendanz/TechSmartAggregator/internal/config"
	apperrors "github.com/Magendanz/TechSmartAggregator/internal/errors"
	"github.com/Magendanz/TechSmartAggregator/internal/infrastructure"
)

const usage = "Usage: aggregator <file.csv>"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one aggregation and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(stdout, usage)
		return 0
	}
	input := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := application.Shutdown(context.Background()); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Aggregating gradebook",
		slog.String("input", input),
		slog.String("version", config.AppVersion))

	result, err := application.Run(ctx, input)
	if err != nil {
		if apperrors.IsStructural(err) {
			logger.Error("Gradebook file could not be processed",
				slog.String("input", input),
				slog.String("error_type", string(apperrors.TypeOf(err))),
				slog.String("error", err.Error()))
			fmt.Fprintf(stderr, "File error: %v\n", err)
			return 1
		}
		logger.Error("Aggregation failed",
			slog.String("input", input),
			slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, result.Output)
	return 0
}
