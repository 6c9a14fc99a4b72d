package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/Magendanz/TechSmartAggregator/internal/errors"
)

// FileValidator checks the files a run reads and writes before any work is done
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError(path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewParsingError(path, "failed to stat file", err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewNotFoundError(path, fmt.Errorf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewParsingError(path, "file is not readable", err)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateInputFile checks a gradebook export. Legacy .xls workbooks and
// Excel lock files are rejected; unknown extensions are read as CSV.
func (v *FileValidator) ValidateInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return apperrors.NewAppValidationError("input path is empty")
	}
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a temporary Excel file", base))
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".xlsx":
	case ".xls":
		v.logger.Error("Legacy Excel workbooks are not supported",
			slog.String("file", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("file %s is a legacy .xls workbook; save it as .xlsx or .csv", base))
	default:
		v.logger.Warn("Unrecognised extension, reading as CSV",
			slog.String("file", path),
			slog.String("extension", ext))
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(dir, "failed to create output directory", err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(dir, "output directory is not writable", err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
