// =============================================================================
// Curve Converter - File Converter
// =============================================================================
//
// Orchestrates the conversion of one tabular file: read, convert row by
// row, write, and report. The converter moves through an explicit state
// machine (Idle -> Reading -> Converting -> Writing -> Done|Failed) and
// accumulates every conversion error for the side-channel error report.
//
// STRICT MODE:
//   In strict mode a row that panics aborts the whole run, and any
//   accumulated validation error flips the final result to failure even
//   though the main output file has already been written. In the default
//   mode a failing row is logged and substituted with a blank marker row,
//   and validation errors only surface through the error report.
//
// CONCURRENCY:
//   None. A Converter instance owns its error list and logger and converts
//   one file at a time; convert multiple files with separate sequential
//   invocations or separate instances.
//
// =============================================================================

package converter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/registry-tools/curve-converter/internal/mapping"
	"github.com/registry-tools/curve-converter/internal/tabular"
	"github.com/registry-tools/curve-converter/internal/transform"
	"github.com/registry-tools/curve-converter/internal/validate"
	"github.com/registry-tools/curve-converter/pkg/utils"
)

// =============================================================================
// STATES AND RESULTS
// =============================================================================

// State is the converter's position in the conversion pipeline.
type State int

const (
	StateIdle State = iota
	StateReading
	StateConverting
	StateWriting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReading:
		return "reading"
	case StateConverting:
		return "converting"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of converting one file.
type Result struct {
	// RunID identifies this conversion run in logs and reports.
	RunID string

	// InputFile and OutputFile are the paths involved.
	InputFile  string
	OutputFile string

	// ErrorFile is the path of the written error report, empty when no
	// errors were collected.
	ErrorFile string

	// Success is false on any fatal failure, and in strict mode also when
	// validation errors were collected.
	Success bool

	// Error holds the fatal error, nil on success.
	Error error

	// Errors are all collected conversion errors in encounter order.
	Errors []validate.ConversionError

	// Stats summarizes the run.
	Stats Stats
}

// Stats contains processing statistics for one run.
type Stats struct {
	RowsRead       int
	RowsConverted  int
	ErrorCount     int
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER
// =============================================================================

// Options controls a Converter's behavior.
type Options struct {
	// Strict makes row failures fatal and any validation error fail the
	// run.
	Strict bool

	// MaxInputSize rejects input files larger than this many bytes before
	// reading. Zero disables the guard.
	MaxInputSize int64

	// Logger receives progress and warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Converter converts one tabular file per call. Not safe for concurrent
// use: the run-wide error list is owned by the instance.
type Converter struct {
	cfg    *mapping.Config
	opts   Options
	rows   *RowConverter
	logger *slog.Logger
	state  State
}

// New builds a Converter from a loaded mapping configuration.
func New(cfg *mapping.Config, opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		cfg:    cfg,
		opts:   opts,
		rows:   NewRowConverter(cfg),
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the converter's current pipeline state.
func (c *Converter) State() State {
	return c.state
}

// ConvertFile reads inputPath, converts every row through the column
// mapping, writes the result to outputPath and, when errors were
// collected, a sibling error report. The main output is written before
// strict mode is allowed to fail the run, so a failing strict run still
// leaves the converted file on disk for inspection.
func (c *Converter) ConvertFile(inputPath, outputPath string) Result {
	start := time.Now()
	result := Result{
		RunID:      uuid.New().String(),
		InputFile:  inputPath,
		OutputFile: outputPath,
	}
	logger := c.logger.With(slog.String("run_id", result.RunID))

	fail := func(err error) Result {
		c.state = StateFailed
		result.Error = err
		result.Stats.ErrorCount = len(result.Errors)
		result.Stats.ProcessingTime = time.Since(start)
		logger.Error("Conversion failed", slog.String("error", err.Error()))
		return result
	}

	// =========================================================================
	// READING
	// =========================================================================

	c.state = StateReading

	if !utils.FileExists(inputPath) {
		return fail(fmt.Errorf("input file not found: %s", inputPath))
	}
	if c.opts.MaxInputSize > 0 {
		size, err := utils.FileSize(inputPath)
		if err != nil {
			return fail(fmt.Errorf("failed to stat input file: %w", err))
		}
		if size > c.opts.MaxInputSize {
			return fail(fmt.Errorf("input file is %d bytes, exceeds limit of %d", size, c.opts.MaxInputSize))
		}
	}

	table, err := tabular.Read(inputPath)
	if err != nil {
		return fail(fmt.Errorf("failed to read %s: %w", inputPath, err))
	}
	if len(table.Rows) == 0 {
		return fail(fmt.Errorf("input file has no data rows: %s", inputPath))
	}

	result.Stats.RowsRead = len(table.Rows)
	logger.Info("Loaded input file",
		slog.String("path", inputPath),
		slog.Int("rows", len(table.Rows)))

	// =========================================================================
	// CONVERTING
	// =========================================================================

	c.state = StateConverting

	converted := make([]map[string]any, 0, len(table.Rows))
	for i, row := range table.Rows {
		// First data row is index 2: 1-based with the header offset, so
		// report indexes line up with the source spreadsheet.
		rowIndex := i + 2

		record, rowErrs, rowErr := c.convertRow(row, rowIndex)
		if rowErr != nil {
			if c.opts.Strict {
				return fail(fmt.Errorf("row %d failed to convert: %w", rowIndex, rowErr))
			}
			logger.Warn("Row failed to convert, substituting blank row",
				slog.Int("row", rowIndex),
				slog.String("error", rowErr.Error()))
			record = c.blankRow(rowIndex)
		}

		result.Errors = append(result.Errors, rowErrs...)
		converted = append(converted, record)
	}

	result.Stats.RowsConverted = len(converted)
	result.Stats.ErrorCount = len(result.Errors)
	logger.Info("Converted rows",
		slog.Int("rows", len(converted)),
		slog.Int("errors", len(result.Errors)))

	// =========================================================================
	// WRITING
	// =========================================================================

	c.state = StateWriting

	if err := utils.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return fail(err)
	}

	headers := c.cfg.DestColumns()
	outputRows := make([]map[string]string, len(converted))
	for i, record := range converted {
		row := make(map[string]string, len(headers))
		for _, header := range headers {
			row[header] = transform.Stringify(record[header])
		}
		outputRows[i] = row
	}

	if err := tabular.Write(outputPath, headers, outputRows); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", outputPath, err))
	}
	logger.Info("Wrote output file", slog.String("path", outputPath))

	if len(result.Errors) > 0 {
		errorPath, err := c.writeErrorReport(outputPath, result.Errors)
		if err != nil {
			return fail(err)
		}
		result.ErrorFile = errorPath
		logger.Warn("Validation errors found",
			slog.Int("count", len(result.Errors)),
			slog.String("report", errorPath))

		// Strict mode fails the run on any accumulated error, after the
		// main output has already been written.
		if c.opts.Strict {
			return fail(fmt.Errorf("strict mode: conversion produced %d validation errors", len(result.Errors)))
		}
	}

	c.state = StateDone
	result.Success = true
	result.Stats.ProcessingTime = time.Since(start)
	return result
}

// convertRow runs the row converter with panic recovery so one poisoned
// row cannot take down the run in non-strict mode.
func (c *Converter) convertRow(row map[string]string, rowIndex int) (record map[string]any, errs []validate.ConversionError, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	record, errs = c.rows.Convert(row, rowIndex)
	return record, errs, nil
}

// blankRow builds the substitute record for a row that failed to convert:
// every destination column empty except the work title marker.
func (c *Converter) blankRow(rowIndex int) map[string]any {
	record := make(map[string]any, len(c.cfg.Columns))
	for _, col := range c.cfg.Columns {
		record[col.Dest] = ""
	}
	record[validate.WorkTitleColumn] = "ERROR_ROW_" + strconv.Itoa(rowIndex)
	return record
}

// writeErrorReport writes the collected errors as a CSV table next to the
// output file.
func (c *Converter) writeErrorReport(outputPath string, errs []validate.ConversionError) (string, error) {
	headers := []string{"row_index", "work_title", "error_code", "error_detail"}
	rows := make([]map[string]string, len(errs))
	for i, e := range errs {
		rows[i] = map[string]string{
			"row_index":    strconv.Itoa(e.RowIndex),
			"work_title":   e.WorkTitle,
			"error_code":   string(e.Code),
			"error_detail": e.Detail,
		}
	}

	path := utils.ErrorReportPath(outputPath)
	if err := tabular.Write(path, headers, rows); err != nil {
		return "", fmt.Errorf("failed to write error report: %w", err)
	}
	return path, nil
}
