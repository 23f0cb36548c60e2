// =============================================================================
// Curve Converter - Row Converter
// =============================================================================
//
// Applies the full column mapping to one input record. Each destination
// column is resolved, transformed and validated independently; a failing
// transform records an error and falls back to the column default rather
// than aborting the row. Row-level validation then runs against the
// assembled result, not the raw input, so it sees exactly what will be
// written.
//
// =============================================================================

package converter

import (
	"fmt"

	"github.com/registry-tools/curve-converter/internal/mapping"
	"github.com/registry-tools/curve-converter/internal/transform"
	"github.com/registry-tools/curve-converter/internal/validate"
)

// RowConverter converts single input records according to the loaded
// mapping. It holds only read-only configuration and is safe to reuse
// across rows.
type RowConverter struct {
	columns   []mapping.ColumnMapping
	registry  *transform.Registry
	validator *validate.Validator
}

// NewRowConverter wires a RowConverter from the mapping configuration.
func NewRowConverter(cfg *mapping.Config) *RowConverter {
	return &RowConverter{
		columns:   cfg.Columns,
		registry:  transform.NewRegistry(cfg.Lookups),
		validator: validate.New(cfg.Lookups, cfg.Rules),
	}
}

// Convert maps one input row to the destination layout. The returned
// record holds every configured destination column; the returned errors
// are the per-field and row-level problems found while building it, in
// the order they were found. Errors never abort the row.
func (rc *RowConverter) Convert(row map[string]string, rowIndex int) (map[string]any, []validate.ConversionError) {
	result := make(map[string]any, len(rc.columns))

	// Field problems are collected as plain messages first; the work
	// title used to tag them is only known once the row is assembled.
	var fieldProblems []string

	for _, col := range rc.columns {
		var value any
		if raw, ok := row[col.Source]; col.Source != "" && ok {
			value = raw
		} else {
			value = col.Default
		}

		if col.Transform != "" {
			transformed, err := rc.applyTransform(value, col.Transform)
			if err != nil {
				fieldProblems = append(fieldProblems, fmt.Sprintf("Transform error in %s: %v", col.Dest, err))
				if col.Default != "" {
					transformed = col.Default
				} else {
					transformed = ""
				}
			}
			value = transformed
		}

		if col.Validation != "" {
			fieldProblems = append(fieldProblems, rc.validator.Field(value, col.Validation, col.Dest)...)
		}

		result[col.Dest] = value
	}

	title := validate.RowTitle(result)

	errs := make([]validate.ConversionError, 0, len(fieldProblems))
	for _, detail := range fieldProblems {
		errs = append(errs, validate.ConversionError{
			RowIndex:  rowIndex,
			WorkTitle: title,
			Code:      validate.CodeFieldError,
			Detail:    detail,
		})
	}
	errs = append(errs, rc.validator.Row(result, rowIndex)...)

	return result, errs
}

// applyTransform runs a transform, converting a handler panic into an
// error. Built-in transforms are total, but registered custom handlers are
// not under our control and must never take the row down.
func (rc *RowConverter) applyTransform(value any, name string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return rc.registry.Apply(value, name), nil
}
