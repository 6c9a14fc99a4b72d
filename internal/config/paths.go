package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains all the application paths
// Relative entries in the configuration resolve against the working
// directory, the same place the gradebook export is usually opened from.
type Paths struct {
	WorkingDir string
	OutputDir  string
	LogsDir    string
	LogFile    string
	TraceFile  string
}

// GetPaths resolves the configured directories to absolute paths
func GetPaths(cfg *Config) (*Paths, error) {
	if cfg == nil {
		cfg = Default()
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return &Paths{
		WorkingDir: wd,
		OutputDir:  resolve(wd, cfg.Output.Dir),
		LogsDir:    resolve(wd, filepath.Dir(cfg.Logging.FilePath)),
		LogFile:    resolve(wd, cfg.Logging.FilePath),
		TraceFile:  resolve(wd, cfg.Telemetry.TraceFile),
	}, nil
}

func resolve(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// OutputPathFor returns the report path for an input file: the input's
// base name with its extension replaced by .csv, inside OutputDir.
func (p *Paths) OutputPathFor(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(p.OutputDir, stem+OutputExtension)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("working", p.WorkingDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("log", p.LogFile),
			slog.String("trace", p.TraceFile),
		))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
