// =============================================================================
// Curve Converter - File Utilities
// =============================================================================
//
// Small filesystem helpers shared by the CLI and the converter: directory
// creation, existence and size checks, and derivation of the error-report
// path from the main output path.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FileSize returns the size of a file in bytes.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ErrorReportPath derives the side-channel error report path from an
// output path by suffixing "_errors" before the extension and forcing a
// .csv extension: out/works.xlsx -> out/works_errors.csv.
func ErrorReportPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	base := strings.TrimSuffix(outputPath, ext)
	return base + "_errors.csv"
}
