package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	paths, err := GetPaths(nil)
	require.NoError(t, err)

	assert.Equal(t, wd, paths.WorkingDir)
	assert.Equal(t, filepath.Join(wd, "Output"), paths.OutputDir)
	assert.Equal(t, filepath.Join(wd, "logs"), paths.LogsDir)
	assert.Equal(t, filepath.Join(wd, "logs", "aggregator.log"), paths.LogFile)

	abs := t.TempDir()
	cfg := Default()
	cfg.Output.Dir = abs
	paths, err = GetPaths(cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(abs), paths.OutputDir)
}

func TestOutputPathFor(t *testing.T) {
	paths := &Paths{OutputDir: filepath.Join("base", "Output")}

	tests := []struct {
		input    string
		expected string
	}{
		{"grades.csv", "grades.csv"},
		{filepath.Join("downloads", "Period 3.csv"), "Period 3.csv"},
		{"gradebook.xlsx", "gradebook.csv"},
		{"noext", "noext.csv"},
		{"archive.2024.csv", "archive.2024.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, filepath.Join("base", "Output", tt.expected), paths.OutputPathFor(tt.input))
		})
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, nil, 0644))
	assert.True(t, FileExists(path))
}
