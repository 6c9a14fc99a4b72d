// Package app wires a single aggregation run.
//
// # Run Flow
//
//	1. Resolve and validate the input export
//	2. Load it into a domain.Table
//	3. Build the step pipeline from the pipeline configuration
//	4. Execute the steps through operations.Manager
//	5. Write the report to <output dir>/<input name>.csv
//	6. Open the report in the platform viewer
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer application.Shutdown(context.Background())
//
//	result, err := application.Run(ctx, "Period 3.csv")
//
// # Error Handling
//
// Input and output failures are internal/errors.AppError values and step
// failures are operations.OperationError values. The app does not call
// os.Exit; the command decides the exit code. Viewer failures are logged and
// never fail the run.
package app
