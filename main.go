// =============================================================================
// Curve Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Curve Converter CLI. It initializes
// the Cobra CLI framework and delegates command execution to the cmd
// package.
//
// USAGE:
//   curveconv convert   - Convert a Master Catalog export to Curve layout
//   curveconv validate  - Validate a mapping configuration
//   curveconv version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : core conversion logic (mapping, transform, validate,
//                   tabular I/O, converter orchestration)
//   - pkg/        : shared utilities
//
// =============================================================================

package main

import (
	"github.com/registry-tools/curve-converter/cmd"
)

func main() {
	cmd.Execute()
}
