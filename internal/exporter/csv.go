package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Magendanz/TechSmartAggregator/internal/config"
	apperrors "github.com/Magendanz/TechSmartAggregator/internal/errors"
	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a new CSV writer instance. Relative paths resolve
// against the configured output directory.
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options, replacing any
// existing file. Failures are reported as WRITE_FAILED errors.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	slog.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewStorageError(dir, "failed to create directory", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return apperrors.NewStorageError(fullPath, "failed to open file", err)
	}

	if err := writeRecords(file, options); err != nil {
		file.Close()
		return apperrors.NewStorageError(fullPath, "failed to write CSV", err)
	}
	if err := file.Close(); err != nil {
		return apperrors.NewStorageError(fullPath, "failed to close file", err)
	}
	return nil
}

func writeRecords(file *os.File, options WriteOptions) error {
	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTable writes a gradebook: the column names on the first line, then
// every row including the four metadata rows.
func (w *CSVWriter) WriteTable(filePath string, table *domain.Table, bom bool) error {
	if table == nil {
		return apperrors.NewStorageError(filePath, "no table to write", nil)
	}

	records := table.Records()
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   records[0],
		Records:   records[1:],
		BOMPrefix: bom,
	})
}

// resolvePath resolves a path against the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return filepath.Join(w.paths.OutputDir, filePath)
}
