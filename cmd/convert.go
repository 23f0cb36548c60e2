// =============================================================================
// Curve Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main entry point of the
// tool. It loads the mapping configuration, runs the file converter over
// the input, and reports the outcome.
//
// COMMAND USAGE:
//   curveconv convert --in <input> --out <output> --map <mapping> [flags]
//
// FLAGS:
//   --in        : Input Excel/CSV file (Master Catalog export), required
//   --out       : Output Excel/CSV file (Curve layout), required
//   --map       : YAML mapping configuration file, required
//   --strict    : Fail the run on any validation error
//   --max-size  : Reject input files larger than this many bytes (0 = off)
//
// EXIT STATUS:
//   0 on success; 1 on missing files, configuration errors, strict-mode
//   validation failure, or any unexpected error.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registry-tools/curve-converter/internal/converter"
	"github.com/registry-tools/curve-converter/internal/mapping"
	"github.com/registry-tools/curve-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile is the path to the Master Catalog export to convert.
var inputFile string

// outputFile is the path of the converted Curve import file.
var outputFile string

// mappingFile is the path to the YAML mapping configuration.
var mappingFile string

// strict fails the run on any validation error.
var strict bool

// maxInputSize guards against oversized inputs, in bytes. Zero disables.
var maxInputSize int64

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a Master Catalog export to the Curve Work Import layout",
	Long: `The convert command reads a tabular input file (.csv, .xlsx or .xls)
whose first row is a header, applies the column mapping to every row, and
writes the converted table with columns in the mapping's declared order.

Validation errors do not stop the conversion: invalid rows are converted
as far as possible and every problem is collected into a sibling error
report (<output-base>_errors.csv). With --strict, any validation error
fails the run after the output has been written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&inputFile, "in", "", "Input Excel/CSV file (Master Catalog export)")
	convertCmd.Flags().StringVar(&outputFile, "out", "", "Output Excel/CSV file (Curve layout)")
	convertCmd.Flags().StringVar(&mappingFile, "map", "", "YAML mapping configuration file")
	convertCmd.Flags().BoolVar(&strict, "strict", false, "Fail on validation errors")
	convertCmd.Flags().Int64Var(&maxInputSize, "max-size", 0, "Maximum input file size in bytes (0 = unlimited)")

	convertCmd.MarkFlagRequired("in")
	convertCmd.MarkFlagRequired("out")
	convertCmd.MarkFlagRequired("map")
}

// =============================================================================
// MAIN CONVERSION FUNCTION
// =============================================================================

// runConvert loads the mapping and converts the input file.
func runConvert() error {
	if !utils.FileExists(mappingFile) {
		return fmt.Errorf("mapping file not found: %s", mappingFile)
	}

	cfg, err := mapping.Load(mappingFile)
	if err != nil {
		return err
	}
	logger.Debug("Loaded mapping configuration",
		"path", mappingFile,
		"columns", len(cfg.Columns))

	conv := converter.New(cfg, converter.Options{
		Strict:       strict,
		MaxInputSize: maxInputSize,
		Logger:       logger,
	})

	result := conv.ConvertFile(inputFile, outputFile)
	if !result.Success {
		return result.Error
	}

	fmt.Printf("Converted %d rows to %s\n", result.Stats.RowsConverted, result.OutputFile)
	if result.ErrorFile != "" {
		fmt.Printf("Found %d validation errors - see %s\n", result.Stats.ErrorCount, result.ErrorFile)
	} else {
		fmt.Println("No validation errors found")
	}

	return nil
}
