// =============================================================================
// Curve Converter - Tabular File Reader
// =============================================================================
//
// This module reads header-plus-rows tables from disk, dispatching on file
// extension: .xlsx/.xls files are read with excelize, everything else is
// treated as CSV. The whole table is materialized in memory; the converter
// processes one file per invocation and never streams.
//
// =============================================================================

package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a fully-materialized input or output table.
type Table struct {
	// Headers are the cleaned column names from the first row, in file
	// order.
	Headers []string

	// Rows holds one map per data row, keyed by header name. Cells beyond
	// the header width are dropped; short rows read as "".
	Rows []map[string]string
}

// IsSpreadsheet reports whether the path carries an Excel extension.
func IsSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// Read loads a tabular file whose first row is the header. The format is
// chosen by extension.
func Read(path string) (*Table, error) {
	if IsSpreadsheet(path) {
		return readExcel(path)
	}
	return readCSV(path)
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Legacy exports have ragged rows; length is reconciled against the
	// header below instead of failing the parse.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return tableFromRecords(records)
}

func readExcel(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return tableFromRecords(records)
}

// tableFromRecords builds a Table from raw records, cleaning headers and
// skipping rows that are entirely empty.
func tableFromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("input file has no header row")
	}

	headers := cleanHeaders(records[0])
	if len(headers) == 0 {
		return nil, fmt.Errorf("input file has no usable column headers")
	}

	table := &Table{Headers: headers}
	for _, record := range records[1:] {
		if isRowEmpty(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// cleanHeaders trims whitespace and drops trailing unnamed columns, which
// spreadsheet exports commonly produce.
func cleanHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.TrimSpace(h)
	}
	for len(headers) > 0 && headers[len(headers)-1] == "" {
		headers = headers[:len(headers)-1]
	}
	return headers
}

func isRowEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
