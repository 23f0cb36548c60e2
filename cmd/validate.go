// =============================================================================
// Curve Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads and checks a
// mapping configuration without converting anything. Useful for editing
// mapping files: structural problems (no columns, duplicate destinations,
// broken regex overrides) are reported before a conversion is attempted.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/registry-tools/curve-converter/internal/mapping"
)

// validateMappingFile is the mapping path checked by 'validate'.
var validateMappingFile string

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a mapping configuration without converting",

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := mapping.Load(validateMappingFile)
		if err != nil {
			return err
		}

		fmt.Printf("Mapping OK: %d columns, %d lookup tables, %d required fields\n",
			len(cfg.Columns), len(cfg.Lookups), len(cfg.Rules.RequiredFields))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateMappingFile, "map", "", "YAML mapping configuration file")
	validateCmd.MarkFlagRequired("map")
}
