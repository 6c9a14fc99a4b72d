// Package files reads gradebook exports and resolves the paths a run touches.
//
// Loader turns a CSV export (or the first sheet of an .xlsx workbook) into a
// domain.Table. Missing files fail with FILE_NOT_FOUND and unreadable content
// with MALFORMED_INPUT.
//
// Manager resolves input and output paths relative to the working directory.
//
// Example usage:
//
//	manager := files.NewManager(paths)
//	input, err := manager.ResolveInput(os.Args[1])
//
//	table, err := files.NewLoader(logger).Load(ctx, input)
package files
