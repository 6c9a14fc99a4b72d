package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Magendanz/TechSmartAggregator/internal/config"
	apperrors "github.com/Magendanz/TechSmartAggregator/internal/errors"
	"github.com/Magendanz/TechSmartAggregator/pkg/contracts/domain"
)

// Setup test environment
func setupTestEnv(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	dir := t.TempDir()
	return NewCSVWriter(&config.Paths{WorkingDir: dir, OutputDir: filepath.Join(dir, "Output")}), dir
}

func readCSV(t *testing.T, path string) ([]byte, [][]string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	return data, records
}

func TestWriteCSV(t *testing.T) {
	writer, dir := setupTestEnv(t)

	tests := []struct {
		name    string
		file    string
		options WriteOptions
		want    [][]string
		bom     bool
	}{
		{
			name: "headers and records",
			file: "plain.csv",
			options: WriteOptions{
				Headers: []string{"First Name", "1.1 Check"},
				Records: [][]string{{"Ada", "4"}, {"Bob", ""}},
			},
			want: [][]string{{"First Name", "1.1 Check"}, {"Ada", "4"}, {"Bob", ""}},
		},
		{
			name: "quoting",
			file: "quoted.csv",
			options: WriteOptions{
				Headers: []string{"Last, First"},
				Records: [][]string{{"say \"hi\""}},
			},
			want: [][]string{{"Last, First"}, {"say \"hi\""}},
		},
		{
			name: "byte order mark",
			file: "bom.csv",
			options: WriteOptions{
				Headers:   []string{"a"},
				BOMPrefix: true,
			},
			want: [][]string{{"a"}},
			bom:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, writer.WriteCSV(tt.file, tt.options))

			data, records := readCSV(t, filepath.Join(dir, "Output", tt.file))
			assert.Equal(t, tt.want, records)
			assert.Equal(t, tt.bom, bytes.HasPrefix(data, utf8BOM))
		})
	}
}

func TestWriteCSVReplacesExistingFile(t *testing.T) {
	writer, dir := setupTestEnv(t)
	path := filepath.Join(dir, "Output", "r.csv")

	require.NoError(t, writer.WriteCSV(path, WriteOptions{Headers: []string{"a"}, Records: [][]string{{"1"}, {"2"}}}))
	require.NoError(t, writer.WriteCSV(path, WriteOptions{Headers: []string{"b"}}))

	_, records := readCSV(t, path)
	assert.Equal(t, [][]string{{"b"}}, records)
}

func TestWriteTable(t *testing.T) {
	writer, dir := setupTestEnv(t)
	table := domain.NewTable(
		&domain.Column{Name: "First Name", Values: []string{"", "", "", "", "Ada"}},
		&domain.Column{Name: "1.1 Check", Values: []string{"Lesson 1: Hello", "Check", "1.1 ", "5", "4"}},
	)

	path := filepath.Join(dir, "nested", "out", "period3.csv")
	require.NoError(t, writer.WriteTable(path, table, false))

	_, records := readCSV(t, path)
	require.Len(t, records, 6)
	assert.Equal(t, []string{"First Name", "1.1 Check"}, records[0])
	assert.Equal(t, []string{"", "1.1 "}, records[3])
	assert.Equal(t, []string{"Ada", "4"}, records[5])
}

func TestWriteTableErrors(t *testing.T) {
	writer, dir := setupTestEnv(t)

	err := writer.WriteTable("x.csv", nil, false)
	assert.ErrorIs(t, err, apperrors.ErrWriteFailed)

	// A regular file where the directory should be.
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	table := domain.NewTable(&domain.Column{Name: "a", Values: []string{"1"}})
	err = writer.WriteTable(filepath.Join(blocker, "out.csv"), table, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrWriteFailed)
	assert.Equal(t, apperrors.ErrTypeStorage, apperrors.TypeOf(err))
}
