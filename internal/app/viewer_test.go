package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Magendanz/TechSmartAggregator/internal/config"
)

func TestGetViewerMethods(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		command  string
		wantCmds []string
		wantArgs []string
	}{
		{"windows", "windows", "", []string{"explorer", "cmd"}, []string{"report.csv"}},
		{"darwin", "darwin", "", []string{"open"}, []string{"report.csv"}},
		{"linux", "linux", "", []string{"xdg-open"}, []string{"report.csv"}},
		{"configured command", "linux", "libreoffice --calc", []string{"libreoffice"}, []string{"--calc", "report.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			methods := getViewerMethods(tt.goos, tt.command, "report.csv")
			var cmds []string
			for _, m := range methods {
				cmds = append(cmds, m.cmd)
			}
			assert.Equal(t, tt.wantCmds, cmds)
			assert.Equal(t, tt.wantArgs, methods[0].args)
		})
	}
}

func TestSystemLauncherFallsBack(t *testing.T) {
	var started []string
	l := NewSystemLauncher(config.ViewerConfig{Enabled: true}, discardLogger())
	l.goos = "windows"
	l.start = func(name string, args ...string) error {
		started = append(started, name)
		if name == "explorer" {
			return errors.New("not found")
		}
		return nil
	}

	require.NoError(t, l.Open(context.Background(), "report.csv"))
	assert.Equal(t, []string{"explorer", "cmd"}, started)
}

func TestSystemLauncherAllMethodsFail(t *testing.T) {
	l := NewSystemLauncher(config.ViewerConfig{Enabled: true}, discardLogger())
	l.goos = "linux"
	l.start = func(name string, args ...string) error {
		return errors.New("executable file not found")
	}

	err := l.Open(context.Background(), "report.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xdg-open")
	assert.Contains(t, err.Error(), "report.csv")
}

func TestSystemLauncherCancelled(t *testing.T) {
	l := NewSystemLauncher(config.ViewerConfig{Enabled: true}, nil)
	l.start = func(name string, args ...string) error {
		t.Fatal("nothing should start")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Open(ctx, "report.csv"), context.Canceled)
}
