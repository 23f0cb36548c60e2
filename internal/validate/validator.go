// =============================================================================
// Curve Converter - Validation Engine
// =============================================================================
//
// This module validates transformed values and assembled rows. Errors are
// collected, never thrown: every function returns the list of problems it
// found and leaves the decision about severity to the converter (strict
// mode) and the error report.
//
// VALIDATION LEVELS:
//   1. Field-level: one named rule per call against a single value
//      (required, date_format, iswc_format, isrc_format, ipi_format,
//      share_range, valid_role, valid_society)
//   2. Row-level: required-field completeness and participant share totals
//      against the assembled output row
//
// Unknown rule names validate nothing and produce no errors, mirroring the
// pass-through behavior of unknown transform names.
//
// =============================================================================

package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/registry-tools/curve-converter/internal/mapping"
)

// Default code format patterns, overridable via validation_rules.
var (
	defaultISWCPattern = regexp.MustCompile(`^T-\d{9}-\d$`)
	defaultISRCPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{3}\d{7}$`)
	defaultIPIPattern  = regexp.MustCompile(`^\d{9}$|^\d{11}$`)

	strictDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Validator checks values against named rules using the loaded lookup
// tables and rule parameters.
type Validator struct {
	lookups mapping.Lookups
	rules   mapping.Rules

	iswcPattern *regexp.Regexp
	isrcPattern *regexp.Regexp
	ipiPattern  *regexp.Regexp
}

// New builds a Validator. Pattern overrides in rules replace the default
// ISWC/ISRC/IPI regexes; invalid overrides are rejected earlier by the
// mapping loader, so compilation errors here fall back to the defaults.
func New(lookups mapping.Lookups, rules mapping.Rules) *Validator {
	v := &Validator{
		lookups:     lookups,
		rules:       rules,
		iswcPattern: defaultISWCPattern,
		isrcPattern: defaultISRCPattern,
		ipiPattern:  defaultIPIPattern,
	}

	if p, err := regexp.Compile(rules.ISWCPattern); rules.ISWCPattern != "" && err == nil {
		v.iswcPattern = p
	}
	if p, err := regexp.Compile(rules.ISRCPattern); rules.ISRCPattern != "" && err == nil {
		v.isrcPattern = p
	}
	if p, err := regexp.Compile(rules.IPIPattern); rules.IPIPattern != "" && err == nil {
		v.ipiPattern = p
	}

	return v
}

// =============================================================================
// FIELD-LEVEL VALIDATION
// =============================================================================

// Field checks a single transformed value against one named rule and
// returns human-readable error messages. It is pure: no state is modified
// and an empty slice means the value passed.
func (v *Validator) Field(value any, rule, label string) []string {
	var errs []string
	s := asString(value)

	switch rule {
	case "required":
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("Required field '%s' is empty", label))
		}

	case "date_format":
		if s != "" && !strictDate.MatchString(s) {
			errs = append(errs, fmt.Sprintf("Invalid date format in '%s': %s", label, s))
		}

	case "iswc_format":
		if s != "" && !v.iswcPattern.MatchString(s) {
			errs = append(errs, fmt.Sprintf("Invalid ISWC format in '%s': %s", label, s))
		}

	case "isrc_format":
		// Stored ISRCs may be hyphenated for readability; the format is
		// checked on the compact form.
		if s != "" && !v.isrcPattern.MatchString(strings.ReplaceAll(s, "-", "")) {
			errs = append(errs, fmt.Sprintf("Invalid ISRC format in '%s': %s", label, s))
		}

	case "ipi_format":
		if s != "" && !v.ipiPattern.MatchString(s) {
			errs = append(errs, fmt.Sprintf("Invalid IPI format in '%s': %s", label, s))
		}

	case "share_range":
		f, ok := asFloat(value)
		if !ok {
			if s != "" {
				errs = append(errs, fmt.Sprintf("Invalid share value in '%s': %s", label, s))
			}
			break
		}
		if f < 0 || f > 100 {
			errs = append(errs, fmt.Sprintf("Share value out of range (0-100) in '%s': %v", label, f))
		}

	case "valid_role":
		if s != "" && !v.lookups.MappedValues(mapping.TableRoleCodes)[s] {
			errs = append(errs, fmt.Sprintf("Invalid role code in '%s': %s", label, s))
		}

	case "valid_society":
		if s != "" && !v.lookups.MappedValues(mapping.TableSocietyCodes)[s] {
			errs = append(errs, fmt.Sprintf("Invalid society code in '%s': %s", label, s))
		}
	}

	return errs
}

// =============================================================================
// VALUE COERCION
// =============================================================================

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// asFloat coerces a value to a share figure. An empty string counts as
// zero; anything unparseable reports !ok.
func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case nil:
		return 0, true
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
