package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/Magendanz/TechSmartAggregator/internal/config"
)

// Launcher opens a saved report in the user's viewer
type Launcher interface {
	Open(ctx context.Context, path string) error
}

// viewerMethod represents a method to open a file
type viewerMethod struct {
	name string
	cmd  string
	args []string
}

// SystemLauncher opens files with the platform's default application
type SystemLauncher struct {
	command string
	goos    string
	start   func(name string, args ...string) error
	logger  *slog.Logger
}

// NewSystemLauncher creates a launcher for the current platform. A configured
// command replaces the platform default.
func NewSystemLauncher(cfg config.ViewerConfig, logger *slog.Logger) *SystemLauncher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SystemLauncher{
		command: strings.TrimSpace(cfg.Command),
		goos:    runtime.GOOS,
		start:   startDetached,
		logger:  logger.With(slog.String("component", "viewer")),
	}
}

// Open tries each method in turn and returns nil on the first that starts
func (l *SystemLauncher) Open(ctx context.Context, path string) error {
	var errs []error
	for _, method := range getViewerMethods(l.goos, l.command, path) {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.logger.DebugContext(ctx, "Attempting to open report",
			slog.String("method", method.name),
			slog.String("command", method.cmd),
			slog.Any("args", method.args))

		if err := l.start(method.cmd, method.args...); err != nil {
			l.logger.DebugContext(ctx, "Viewer method failed",
				slog.String("method", method.name),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", method.name, err))
			continue
		}

		l.logger.InfoContext(ctx, "Report opened",
			slog.String("method", method.name),
			slog.String("path", path))
		return nil
	}
	return fmt.Errorf("failed to open %s: %w", path, errors.Join(errs...))
}

// getViewerMethods returns platform-specific ways of opening path
func getViewerMethods(goos, command, path string) []viewerMethod {
	if fields := strings.Fields(command); len(fields) > 0 {
		return []viewerMethod{{
			name: "configured",
			cmd:  fields[0],
			args: append(fields[1:], path),
		}}
	}

	switch goos {
	case "windows":
		return []viewerMethod{
			{name: "explorer", cmd: "explorer", args: []string{path}},
			{name: "start_command", cmd: "cmd", args: []string{"/c", "start", "", path}},
		}
	case "darwin":
		return []viewerMethod{
			{name: "open", cmd: "open", args: []string{path}},
		}
	default:
		return []viewerMethod{
			{name: "xdg-open", cmd: "xdg-open", args: []string{path}},
		}
	}
}

// startDetached starts the viewer without waiting for it; the viewer
// outlives the run.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
