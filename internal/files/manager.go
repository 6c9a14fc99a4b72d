package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Magendanz/TechSmartAggregator/internal/config"
	apperrors "github.com/Magendanz/TechSmartAggregator/internal/errors"
)

// Manager provides file management operations relative to the working
// directory of a run
type Manager struct {
	paths *config.Paths
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// FileExists checks if a regular file exists at the given path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.resolvePath(path)
	info, err := os.Stat(fullPath)
	exists := err == nil && !info.IsDir()

	slog.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// ResolveInput returns the absolute path of an input file, failing with a
// FILE_NOT_FOUND error when it does not exist
func (m *Manager) ResolveInput(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", apperrors.NewAppValidationError("input path is empty")
	}

	fullPath := m.CleanPath(path)
	info, err := os.Stat(fullPath)
	if err != nil {
		return "", apperrors.NewNotFoundError(fullPath, err)
	}
	if info.IsDir() {
		return "", apperrors.NewNotFoundError(fullPath, fmt.Errorf("path is a directory"))
	}
	return fullPath, nil
}

// OutputPath returns where the report for input is written
func (m *Manager) OutputPath(input string) string {
	return m.paths.OutputPathFor(input)
}

// GetFileSize returns the size of a file in bytes
func (m *Manager) GetFileSize(path string) (int64, error) {
	info, err := os.Stat(m.resolvePath(path))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// CleanPath returns a clean, absolute path
func (m *Manager) CleanPath(path string) string {
	return filepath.Clean(m.resolvePath(path))
}

// GetRelativePath returns the path relative to the working directory
func (m *Manager) GetRelativePath(fullPath string) (string, error) {
	return filepath.Rel(m.paths.WorkingDir, fullPath)
}

// resolvePath resolves a path relative to the working directory
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.paths.WorkingDir, path)
}
