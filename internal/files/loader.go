package files

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/Magendanz/TechSmartAggregator/internal/errors"
	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// Supported input extensions. Anything else is read as CSV.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader reads gradebook exports into a domain.Table
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new gradebook loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// Load reads the export at path. The first record holds the column names;
// ragged records are padded so the table is rectangular. Workbooks are read
// from their first sheet.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(path, err)
		}
		return nil, apperrors.NewParsingError(path, "cannot stat input file", err)
	}
	if info.IsDir() {
		return nil, apperrors.NewParsingError(path, "input path is a directory", nil)
	}

	var table *domain.Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtXLSX:
		table, err = l.loadXLSX(path)
	default:
		table, err = l.loadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "Loaded gradebook",
		slog.String("path", path),
		slog.Int("columns", table.Len()),
		slog.Int("rows", table.Rows()),
		slog.Int("students", table.StudentCount()))
	return table, nil
}

func (l *Loader) loadCSV(path string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(path, err)
		}
		return nil, apperrors.NewParsingError(path, "failed to open file", err)
	}
	defer file.Close()

	table, err := ReadCSV(file)
	if err != nil {
		return nil, apperrors.NewParsingError(path, "malformed CSV", err)
	}
	return table, nil
}

func (l *Loader) loadXLSX(path string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(path, "failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError(path, "workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError(path, "failed to read sheet "+sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError(path, "sheet "+sheets[0]+" is empty", nil)
	}

	l.logger.Debug("Read workbook sheet",
		slog.String("sheet", sheets[0]),
		slog.Int("sheets", len(sheets)),
		slog.Int("rows", len(rows)))
	return domain.NewTableFromRecords(rows[0], rows[1:]), nil
}

// ReadCSV parses a CSV stream. A leading UTF-8 byte order mark is skipped and
// records may have differing lengths.
func ReadCSV(r io.Reader) (*domain.Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header record")
	}
	return domain.NewTableFromRecords(records[0], records[1:]), nil
}
