// =============================================================================
// Curve Converter - Row-Level Validation
// =============================================================================
//
// Row-level validation runs against the assembled output row, after every
// column mapping has been applied. It is independent of the per-field
// rules: a field can pass its own rule and still leave the row invalid
// (e.g. shares that individually sit in range but do not sum to 100).
//
// =============================================================================

package validate

import (
	"fmt"
	"math"
	"strings"
)

// ErrorCode classifies a conversion error for the error report.
type ErrorCode string

const (
	// CodeRequiredFieldMissing: a configured required field is blank in
	// the converted row.
	CodeRequiredFieldMissing ErrorCode = "REQUIRED_FIELD_MISSING"

	// CodeMechanicalSharesInvalid: participant mechanical shares sum to a
	// nonzero total outside tolerance of 100.
	CodeMechanicalSharesInvalid ErrorCode = "MECHANICAL_SHARES_INVALID"

	// CodePerformanceSharesInvalid: participant performance shares sum to
	// a nonzero total outside tolerance of 100.
	CodePerformanceSharesInvalid ErrorCode = "PERFORMANCE_SHARES_INVALID"

	// CodeFieldError: a per-field transform or validation problem.
	CodeFieldError ErrorCode = "FIELD_ERROR"
)

// ConversionError is one entry in the run-wide error report. Errors are
// accumulated in order and never deduplicated.
type ConversionError struct {
	// RowIndex is 1-based and offset for the header row, so the first
	// data row is index 2 and matches what a user sees in a spreadsheet.
	RowIndex int

	// WorkTitle is a best-effort label for the row, "Unknown" when the
	// converted row has no Work Title.
	WorkTitle string

	// Code classifies the error.
	Code ErrorCode

	// Detail is the human-readable message.
	Detail string
}

// WorkTitleColumn is the destination column used to label error entries.
const WorkTitleColumn = "Work Title"

// UnknownTitle labels rows whose Work Title could not be resolved.
const UnknownTitle = "Unknown"

// RowTitle resolves the best-effort work title of an assembled row.
func RowTitle(row map[string]any) string {
	if title := strings.TrimSpace(asString(row[WorkTitleColumn])); title != "" {
		return title
	}
	return UnknownTitle
}

// Row validates an assembled output row: required-field completeness and
// participant share totals. Shares are summed across the configured
// participant slots with blank or unparseable cells counting as zero; a
// total of exactly zero means no participants were declared and is never
// an error.
func (v *Validator) Row(row map[string]any, rowIndex int) []ConversionError {
	var errs []ConversionError
	title := RowTitle(row)

	for _, field := range v.rules.RequiredFields {
		if strings.TrimSpace(asString(row[field])) == "" {
			errs = append(errs, ConversionError{
				RowIndex:  rowIndex,
				WorkTitle: title,
				Code:      CodeRequiredFieldMissing,
				Detail:    fmt.Sprintf("Required field '%s' is empty", field),
			})
		}
	}

	var mechTotal, perfTotal float64
	for i := 1; i <= v.rules.MaxParticipants; i++ {
		if f, ok := asFloat(row[fmt.Sprintf("Participant %d Mechanical Share", i)]); ok {
			mechTotal += f
		}
		if f, ok := asFloat(row[fmt.Sprintf("Participant %d Performance Share", i)]); ok {
			perfTotal += f
		}
	}

	if mechTotal > 0 && math.Abs(mechTotal-100) > v.rules.ShareTolerance {
		errs = append(errs, ConversionError{
			RowIndex:  rowIndex,
			WorkTitle: title,
			Code:      CodeMechanicalSharesInvalid,
			Detail:    fmt.Sprintf("Mechanical shares total %v%%, should be 100%%", mechTotal),
		})
	}
	if perfTotal > 0 && math.Abs(perfTotal-100) > v.rules.ShareTolerance {
		errs = append(errs, ConversionError{
			RowIndex:  rowIndex,
			WorkTitle: title,
			Code:      CodePerformanceSharesInvalid,
			Detail:    fmt.Sprintf("Performance shares total %v%%, should be 100%%", perfTotal),
		})
	}

	return errs
}
