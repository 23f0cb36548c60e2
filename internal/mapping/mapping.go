// =============================================================================
// Curve Converter - Mapping Configuration Module
// =============================================================================
//
// This module loads and validates the YAML mapping configuration that drives
// the conversion from Master Catalog exports to the Curve Work Import layout.
//
// CONFIGURATION STRUCTURE:
//   columns:          ordered list of destination-column mappings
//   lookups:          named string-to-string tables (role/society/territory)
//   validation_rules: required fields, share tolerance, participant count,
//                     optional regex overrides for ISWC/ISRC/IPI formats
//
// The mapping is loaded once at startup and is read-only afterwards. A
// missing or empty 'columns' list is a fatal configuration error: without it
// there is nothing to convert.
//
// =============================================================================

package mapping

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ErrConfiguration marks fatal mapping-file problems. Callers can test for
// it with errors.Is to distinguish bad configuration from I/O failures.
var ErrConfiguration = errors.New("configuration error")

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config is the root of the mapping document.
type Config struct {
	// Columns defines the output columns in order. The declared order is
	// exactly the column order of the output file.
	Columns []ColumnMapping `yaml:"columns"`

	// Lookups holds named code tables used by the map_* transforms and the
	// valid_role / valid_society validation rules.
	Lookups Lookups `yaml:"lookups"`

	// Rules holds row-level validation parameters.
	Rules Rules `yaml:"validation_rules"`
}

// ColumnMapping describes how a single destination column is produced.
type ColumnMapping struct {
	// Dest is the destination column header. Required and unique.
	Dest string `yaml:"dest"`

	// Source is the input column header to read from. When empty, or when
	// the input file has no such column, Default is used instead.
	Source string `yaml:"source,omitempty"`

	// Transform is the name of the transform to apply, e.g. "strip",
	// "to_date:%Y-%m-%d", "extract_writer_name". Empty means no transform.
	Transform string `yaml:"transform,omitempty"`

	// Validation is the name of the per-field validation rule, e.g.
	// "required", "iswc_format". Empty means no validation.
	Validation string `yaml:"validation,omitempty"`

	// Default is the value used when the source column is absent, and the
	// fallback when a transform fails.
	Default string `yaml:"default,omitempty"`
}

// Lookups is a set of named code tables. Lookup misses pass the original
// value through unchanged, so tables only need to list values that differ.
type Lookups map[string]map[string]string

// Well-known lookup table names.
const (
	TableRoleCodes    = "role_codes"
	TableSocietyCodes = "society_codes"
	TableTerritories  = "territories"
)

// Get returns the value mapped for key in the named table, or the key
// itself when the table or entry is missing.
func (l Lookups) Get(table, key string) string {
	if mapped, ok := l[table][key]; ok {
		return mapped
	}
	return key
}

// MappedValues returns the set of target-side values of the named table.
// Used by valid_role / valid_society, which check against the mapped codes
// rather than the legacy source spellings.
func (l Lookups) MappedValues(table string) map[string]bool {
	values := make(map[string]bool, len(l[table]))
	for _, v := range l[table] {
		values[v] = true
	}
	return values
}

// Rules holds the row-level validation parameters.
type Rules struct {
	// RequiredFields must be non-blank in every converted row.
	RequiredFields []string `yaml:"required_fields"`

	// ShareTolerance is the allowed deviation from 100 when summing
	// participant shares. Default 0.01.
	ShareTolerance float64 `yaml:"share_tolerance"`

	// MaxParticipants is the number of participant slots whose share
	// columns are summed. Default 10.
	MaxParticipants int `yaml:"max_participants"`

	// ISWCPattern, ISRCPattern and IPIPattern override the default format
	// regexes used by the iswc_format / isrc_format / ipi_format rules.
	ISWCPattern string `yaml:"iswc_pattern,omitempty"`
	ISRCPattern string `yaml:"isrc_pattern,omitempty"`
	IPIPattern  string `yaml:"ipi_pattern,omitempty"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and parses the mapping configuration from a YAML file.
// The returned Config has defaults applied and has passed structural
// validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read mapping file: %v", ErrConfiguration, err)
	}
	return Parse(data)
}

// Parse parses a mapping configuration from raw YAML bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse mapping file: %v", ErrConfiguration, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in unset validation parameters.
func applyDefaults(cfg *Config) {
	if cfg.Lookups == nil {
		cfg.Lookups = Lookups{}
	}
	if cfg.Rules.ShareTolerance == 0 {
		cfg.Rules.ShareTolerance = 0.01
	}
	if cfg.Rules.MaxParticipants == 0 {
		cfg.Rules.MaxParticipants = 10
	}
}

// validate performs structural checks on the loaded configuration.
func validate(cfg *Config) error {
	if len(cfg.Columns) == 0 {
		return fmt.Errorf("%w: mapping has no columns", ErrConfiguration)
	}

	seen := make(map[string]bool, len(cfg.Columns))
	for i, col := range cfg.Columns {
		if col.Dest == "" {
			return fmt.Errorf("%w: column %d has no dest name", ErrConfiguration, i+1)
		}
		if seen[col.Dest] {
			return fmt.Errorf("%w: duplicate dest column %q", ErrConfiguration, col.Dest)
		}
		seen[col.Dest] = true
	}

	// Regex overrides must compile now rather than at first use.
	for name, pattern := range map[string]string{
		"iswc_pattern": cfg.Rules.ISWCPattern,
		"isrc_pattern": cfg.Rules.ISRCPattern,
		"ipi_pattern":  cfg.Rules.IPIPattern,
	} {
		if pattern == "" {
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("%w: invalid %s: %v", ErrConfiguration, name, err)
		}
	}

	return nil
}

// DestColumns returns the destination column headers in declared order.
func (c *Config) DestColumns() []string {
	cols := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = col.Dest
	}
	return cols
}
