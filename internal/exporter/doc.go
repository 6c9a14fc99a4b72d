// Package exporter writes condensed gradebooks as CSV.
//
// CSVWriter creates the target directory, writes the column names followed by
// every row of the table and can prefix the file with a UTF-8 BOM so Excel
// detects the encoding. Write failures surface as WRITE_FAILED errors.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	err := writer.WriteTable(paths.OutputPathFor(input), table, cfg.Output.BOM)
package exporter
