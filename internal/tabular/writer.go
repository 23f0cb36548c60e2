// =============================================================================
// Curve Converter - Tabular File Writer
// =============================================================================
//
// Mirrors the reader's extension dispatch on the output side: .xlsx/.xls
// paths are written with excelize, everything else as CSV. Column order is
// the caller's header order; the converter passes the mapping's declared
// destination order.
//
// =============================================================================

package tabular

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// Write writes a table to path in the format implied by its extension.
// Rows are emitted in slice order with cells in header order; missing keys
// write as empty cells.
func Write(path string, headers []string, rows []map[string]string) error {
	if IsSpreadsheet(path) {
		return writeExcel(path, headers, rows)
	}
	return writeCSV(path, headers, rows)
}

func writeCSV(path string, headers []string, rows []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(headers))
	for _, row := range rows {
		for i, header := range headers {
			record[i] = row[header]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func writeExcel(path string, headers []string, rows []map[string]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range rows {
		cells := make([]interface{}, len(headers))
		for i, header := range headers {
			cells[i] = row[header]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", r+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}
