package files

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/Magendanz/TechSmartAggregator/internal/errors"
)

func newTestLoader() *Loader {
	return NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		columns []string
		rows    int
	}{
		{
			name:    "plain",
			input:   "First Name,Unit 1: Basics\n,Lesson 1: Hello\nAda,4/5 \n",
			columns: []string{"First Name", "Unit 1: Basics"},
			rows:    2,
		},
		{
			name:    "byte order mark",
			input:   "\xEF\xBB\xBFFirst Name,Email\nAda,a@x.org\n",
			columns: []string{"First Name", "Email"},
			rows:    1,
		},
		{
			name:    "ragged records are padded",
			input:   "a,b\n1\n1,2,3\n",
			columns: []string{"a", "b", ""},
			rows:    2,
		},
		{
			name:    "quoted fields",
			input:   "\"Last, First\",b\n\"x\"\"y\",2\n",
			columns: []string{"Last, First", "b"},
			rows:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.columns, table.ColumnNames())
			assert.Equal(t, tt.rows, table.Rows())
		})
	}
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("a,\"b\n1,2\n"))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "period3.csv", "First Name,Unit 1: Basics\n,Lesson 1: Hello\n,Warm Up\n,Warm Up\n,\nAda,5/5 \n")

	table, err := newTestLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 5, table.Rows())
	assert.Equal(t, 1, table.StudentCount())

	col, ok := table.ColumnByName("Unit 1: Basics")
	require.True(t, ok)
	assert.Equal(t, "5/5 ", col.Value(4))
}

func TestLoadErrors(t *testing.T) {
	loader := newTestLoader()

	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)

	bad := writeFile(t, "bad.csv", "a,\"b\n")
	_, err = loader.Load(context.Background(), bad)
	assert.ErrorIs(t, err, apperrors.ErrMalformedInput)

	empty := writeFile(t, "empty.csv", "")
	_, err = loader.Load(context.Background(), empty)
	assert.ErrorIs(t, err, apperrors.ErrMalformedInput)

	_, err = loader.Load(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, apperrors.ErrMalformedInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.Load(ctx, bad)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"First Name", "Unit 1: Basics"},
		{"", "Lesson 1: Hello"},
		{"", "Warm Up A"},
		{"", "Warm Up"},
		{"", ""},
		{"Ada", "5/5 "},
		{"Bob"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "period3.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := newTestLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"First Name", "Unit 1: Basics"}, table.ColumnNames())
	assert.Equal(t, 6, table.Rows())

	col, _ := table.ColumnByName("Unit 1: Basics")
	assert.Equal(t, "Warm Up", col.Value(2))
	assert.Equal(t, "5/5 ", col.Value(4))
	assert.Equal(t, "", col.Value(5))
}

func TestLoadXLSXMalformed(t *testing.T) {
	path := writeFile(t, "broken.xlsx", "not a workbook")

	_, err := newTestLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMalformedInput)
}
