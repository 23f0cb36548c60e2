package converter

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registry-tools/curve-converter/internal/tabular"
	"github.com/registry-tools/curve-converter/internal/validate"
	"github.com/registry-tools/curve-converter/pkg/utils"
)

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func writeInput(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "catalog.csv",
		"Title,Artist\n  Song 1  ,Artist A\nSong 2,Artist B\n")
	output := filepath.Join(dir, "out", "curve.csv")

	c := New(testConfig(t), quietOptions())
	result := c.ConvertFile(input, output)

	require.True(t, result.Success, "error: %v", result.Error)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, StateDone, c.State())
	assert.Equal(t, 2, result.Stats.RowsRead)
	assert.Equal(t, 2, result.Stats.RowsConverted)
	assert.Equal(t, 0, result.Stats.ErrorCount)
	assert.Empty(t, result.ErrorFile)
	assert.False(t, utils.FileExists(utils.ErrorReportPath(output)))

	table, err := tabular.Read(output)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Work Title", "Artist Name", "Participant 1 Role",
			"Participant 1 Mechanical Share", "Territory"},
		table.Headers, "output columns in declared mapping order")
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Song 1", table.Rows[0]["Work Title"], "strip applied")
	assert.Equal(t, "Artist A", table.Rows[0]["Artist Name"])
	assert.Equal(t, "WW", table.Rows[0]["Territory"])
	assert.Equal(t, "Song 2", table.Rows[1]["Work Title"])
}

func TestConvertFileWritesErrorReport(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "catalog.csv",
		"Title,Artist\nSong 1,Artist A\n ,Artist B\n")
	output := filepath.Join(dir, "curve.csv")

	c := New(testConfig(t), quietOptions())
	result := c.ConvertFile(input, output)

	// Non-strict: the run still succeeds, errors surface in the report.
	require.True(t, result.Success)
	assert.Equal(t, utils.ErrorReportPath(output), result.ErrorFile)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, result.Stats.ErrorCount, len(result.Errors))

	report, err := tabular.Read(result.ErrorFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"row_index", "work_title", "error_code", "error_detail"}, report.Headers)
	require.NotEmpty(t, report.Rows)
	assert.Equal(t, "3", report.Rows[0]["row_index"], "first data row is index 2")
	assert.Equal(t, validate.UnknownTitle, report.Rows[0]["work_title"])
	assert.Equal(t, string(validate.CodeFieldError), report.Rows[0]["error_code"])
}

func TestConvertFileStrictFailsOnValidationErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "catalog.csv",
		"Title,Artist\n,Artist A\n")
	output := filepath.Join(dir, "curve.csv")

	opts := quietOptions()
	opts.Strict = true
	c := New(testConfig(t), opts)
	result := c.ConvertFile(input, output)

	require.False(t, result.Success)
	require.Error(t, result.Error)
	assert.Equal(t, StateFailed, c.State())

	// The converted output and the report are written before strict mode
	// fails the run.
	assert.True(t, utils.FileExists(output))
	assert.True(t, utils.FileExists(utils.ErrorReportPath(output)))
}

func TestConvertFileMissingInput(t *testing.T) {
	dir := t.TempDir()

	c := New(testConfig(t), quietOptions())
	result := c.ConvertFile(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"))

	require.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "not found")
	assert.Equal(t, StateFailed, c.State())
}

func TestConvertFileEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "empty.csv", "Title,Artist\n")

	c := New(testConfig(t), quietOptions())
	result := c.ConvertFile(input, filepath.Join(dir, "out.csv"))

	require.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "no data rows")
}

func TestConvertFileSizeGuard(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "catalog.csv",
		"Title,Artist\nSong 1,Artist A\n")

	opts := quietOptions()
	opts.MaxInputSize = 4
	c := New(testConfig(t), opts)
	result := c.ConvertFile(input, filepath.Join(dir, "out.csv"))

	require.False(t, result.Success)
	assert.ErrorContains(t, result.Error, "exceeds limit")
}

func TestBlankRowMarker(t *testing.T) {
	c := New(testConfig(t), quietOptions())

	record := c.blankRow(7)
	assert.Equal(t, "ERROR_ROW_7", record[validate.WorkTitleColumn])
	assert.Equal(t, "", record["Artist Name"])
	assert.Len(t, record, len(c.cfg.Columns))
}
