// =============================================================================
// Curve Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All subcommands
// ('convert', 'validate', 'version') attach to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (curveconv)
//   ├── convertCmd (curveconv convert)
//   ├── validateCmd (curveconv validate)
//   └── versionCmd (curveconv version)
//
// The root command owns the logging flags: every subcommand logs through
// a slog logger configured here before it runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// logLevel controls log verbosity: debug, info, warn or error.
var logLevel string

// logFile duplicates log output to a file when set.
var logFile string

// verbose is shorthand for --log-level debug.
var verbose bool

// logger is the process-wide logger, configured in setupLogging.
var logger *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "curveconv",
	Short: "Curve Converter - Transform Master Catalog exports to Curve Work Import format",
	Long: `Curve Converter is a CLI tool that transforms music-royalty registration
records exported from the Master Catalog into the Curve Work Import layout.

The conversion is driven entirely by a declarative YAML mapping: per
destination column, a source column, an optional named transform (string
normalization, date reparsing, percentage rescaling, code formatting,
legacy free-text extraction), an optional validation rule, and a default.

Example Usage:
  curveconv convert --in catalog.xlsx --out curve.csv --map mapping.yaml
  curveconv convert --in catalog.csv --out curve.csv --map mapping.yaml --strict
  curveconv validate --map mapping.yaml`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"info",
		"Log verbosity: debug, info, warn or error",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFile,
		"log-file",
		"",
		"Also write log output to this file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output (same as --log-level debug)",
	)
}

// =============================================================================
// LOGGING SETUP
// =============================================================================

// setupLogging builds the process logger from the persistent flags.
func setupLogging() error {
	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, f)
	}

	logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
