// =============================================================================
// Curve Converter - Transform Registry
// =============================================================================
//
// This module provides the per-value transformation engine. Every transform
// is a named, total function: malformed input degrades to a safe default and
// never produces an error. Transforms are registered in an explicit table
// rather than dispatched through a conditional chain, so new transforms are
// added by registering a handler.
//
// DISPATCH RULES:
//   - A blank input (nil or empty/whitespace string) short-circuits to ""
//     before any transform runs.
//   - Unrecognized transform names pass the stripped value through
//     unchanged. This keeps old binaries forward-compatible with configs
//     that name newer transforms.
//   - Parameterized transforms (to_date:<fmt>, padleft:<width>:<char>,
//     split:<sep>) are matched by prefix; everything after the first colon
//     is the argument.
//
// =============================================================================

package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/registry-tools/curve-converter/internal/mapping"
)

// Func transforms a single stripped, non-blank value. The result is either
// a string, a float64 (percentages and shares) or a []string (split).
type Func func(value string, lk mapping.Lookups) any

// ArgFunc is a Func taking the argument of a parameterized transform name.
type ArgFunc func(value, arg string, lk mapping.Lookups) any

type prefixHandler struct {
	prefix string
	fn     ArgFunc
}

// Registry maps transform names to handlers.
type Registry struct {
	lookups  mapping.Lookups
	named    map[string]Func
	prefixed []prefixHandler
}

// NewRegistry builds a Registry with all built-in transforms registered,
// bound to the given lookup tables.
func NewRegistry(lk mapping.Lookups) *Registry {
	r := &Registry{
		lookups: lk,
		named:   make(map[string]Func),
	}

	// String operations.
	r.Register("strip", func(v string, _ mapping.Lookups) any { return v })
	r.Register("uppercase", func(v string, _ mapping.Lookups) any { return strings.ToUpper(v) })
	r.Register("lowercase", func(v string, _ mapping.Lookups) any { return strings.ToLower(v) })
	r.Register("titlecase", func(v string, _ mapping.Lookups) any { return titleCase(v) })
	r.Register("strip_diacritics", func(v string, _ mapping.Lookups) any { return stripDiacritics(v) })

	// Numeric and format transforms.
	r.Register("percent_0_100", func(v string, _ mapping.Lookups) any { return percent0100(v) })
	r.Register("percent_0_1", func(v string, _ mapping.Lookups) any { return percent01(v) })
	r.Register("format_iswc", func(v string, _ mapping.Lookups) any { return formatISWC(v) })
	r.Register("format_isrc", func(v string, _ mapping.Lookups) any { return formatISRC(v) })
	r.Register("format_ipi", func(v string, _ mapping.Lookups) any { return formatIPI(v) })
	r.Register("format_duration", func(v string, _ mapping.Lookups) any { return formatDuration(v) })

	// Lookup table transforms. Unmapped values pass through unchanged.
	r.Register("map_role", func(v string, lk mapping.Lookups) any { return lk.Get(mapping.TableRoleCodes, v) })
	r.Register("map_society", func(v string, lk mapping.Lookups) any { return lk.Get(mapping.TableSocietyCodes, v) })
	r.Register("map_territory", func(v string, lk mapping.Lookups) any { return lk.Get(mapping.TableTerritories, v) })

	// Legacy free-text extraction.
	r.Register("extract_writer_name", func(v string, _ mapping.Lookups) any { return extractWriterName(v) })
	r.Register("extract_writer_society", func(v string, _ mapping.Lookups) any { return extractWriterSociety(v) })
	r.Register("extract_writer_ipi", func(v string, _ mapping.Lookups) any { return extractWriterIPI(v) })
	r.Register("extract_mechanical_share", func(v string, _ mapping.Lookups) any { return extractMechanicalShare(v) })
	r.Register("extract_performance_share", func(v string, _ mapping.Lookups) any { return extractMechanicalShare(v) })
	r.Register("extract_additional_writer_name", func(v string, _ mapping.Lookups) any { return extractAdditionalWriterName(v) })
	r.Register("extract_additional_writer_society", func(v string, _ mapping.Lookups) any { return extractAdditionalWriterSociety(v) })
	r.Register("extract_additional_mechanical_share", func(v string, _ mapping.Lookups) any { return extractAdditionalShare(v) })
	r.Register("extract_additional_performance_share", func(v string, _ mapping.Lookups) any { return extractAdditionalShare(v) })
	r.Register("extract_publisher_name", func(v string, _ mapping.Lookups) any { return extractPublisherName(v) })
	r.Register("extract_publisher_society", func(v string, _ mapping.Lookups) any { return extractPublisherSociety(v) })
	r.Register("extract_publisher_mechanical_share", func(v string, _ mapping.Lookups) any { return extractPublisherShare(v) })
	r.Register("extract_publisher_performance_share", func(v string, _ mapping.Lookups) any { return extractPublisherShare(v) })

	// Parameterized transforms.
	r.RegisterPrefix("to_date:", func(v, arg string, _ mapping.Lookups) any { return parseDate(v, arg) })
	r.RegisterPrefix("padleft:", func(v, arg string, _ mapping.Lookups) any { return padLeft(v, arg) })
	r.RegisterPrefix("split:", func(v, arg string, _ mapping.Lookups) any { return splitValue(v, arg) })

	return r
}

// Register adds or replaces a named transform.
func (r *Registry) Register(name string, fn Func) {
	r.named[name] = fn
}

// RegisterPrefix adds a parameterized transform matched on a name prefix.
// The portion of the transform name after the prefix is passed as arg.
func (r *Registry) RegisterPrefix(prefix string, fn ArgFunc) {
	r.prefixed = append(r.prefixed, prefixHandler{prefix: prefix, fn: fn})
}

// Apply runs the named transform on a raw cell value.
//
// Blank input always yields "". Unknown transform names yield the stripped
// value unchanged.
func (r *Registry) Apply(value any, name string) any {
	if IsBlank(value) {
		return ""
	}

	v := strings.TrimSpace(Stringify(value))

	if fn, ok := r.named[name]; ok {
		return fn(v, r.lookups)
	}
	for _, h := range r.prefixed {
		if strings.HasPrefix(name, h.prefix) {
			return h.fn(v, name[len(h.prefix):], r.lookups)
		}
	}

	return v
}

// =============================================================================
// VALUE HELPERS
// =============================================================================

// IsBlank reports whether a raw cell value is nil or an empty/whitespace
// string.
func IsBlank(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) == ""
}

// Stringify renders a transformed value for output. Floats are formatted
// with minimal digits; slices (from split:) are joined with a comma, which
// only arises when a multi-value transform is misconfigured onto a
// single-value destination column.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}
