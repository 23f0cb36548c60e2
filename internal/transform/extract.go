// =============================================================================
// Curve Converter - Legacy Free-Text Extraction
// =============================================================================
//
// Master Catalog exports carry writer and publisher credits as
// semi-structured free text, e.g.
//
//   Jorge Omar Barreiro (pka "Jorge Pelegrin") (ASCAP) - 50%
//   Payday Tunes (ASCAP) obo Payday Empire Music (BMI)
//   Payday Total: 100%
//
// The extract_* transforms pull individual sub-fields out of these blocks
// with first-match pattern searches. The precedence between patterns is a
// fixed contract: later patterns are tie-break fallbacks for earlier ones
// failing, and changing the order changes which credits parse. Do not
// reorder.
//
// =============================================================================

package transform

import (
	"regexp"
	"strconv"
	"strings"
)

// The recognized performing-rights-society tokens, and the shapes the
// credit grammar is built from.
var (
	societyInParens = regexp.MustCompile(`\((ASCAP|BMI|SESAC|PRS|GEMA|SACEM|SOCAN|APRA)\)`)
	societyBareWord = regexp.MustCompile(`\b(ASCAP|BMI|SESAC|PRS|GEMA|SACEM|SOCAN|APRA)\b`)

	ipiDigits    = regexp.MustCompile(`\d{9,11}`)
	barePercent  = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	labeledTotal = regexp.MustCompile(`Payday Total:\s*(\d+(?:\.\d+)?)%`)

	publisherLead     = regexp.MustCompile(`^([^-\n]+?Payday[^-\n]*?)\s*(?:\(|obo|-)`)
	trailingSocieties = regexp.MustCompile(`\s*\([^)]*\).*$`)
)

// extractWriterName returns the text before the first '(' or ' - '
// separator: the primary writer's name in a credit block.
func extractWriterName(v string) string {
	if i := strings.IndexByte(v, '('); i >= 0 {
		v = v[:i]
	}
	if i := strings.Index(v, " - "); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

// extractWriterSociety returns the first known society code appearing in
// parentheses, e.g. "(ASCAP)" yields "ASCAP".
func extractWriterSociety(v string) string {
	if m := societyInParens.FindStringSubmatch(v); m != nil {
		return m[1]
	}
	return ""
}

// extractWriterIPI returns the first run of 9-11 digits, the shape of an
// interested-party number embedded in a CAE/IPI# field.
func extractWriterIPI(v string) string {
	return ipiDigits.FindString(v)
}

// extractMechanicalShare returns the share percentage from a shares block.
// A labeled "Payday Total: NN%" is preferred; the first bare "NN%" is the
// fallback; no percentage at all is 0.0. The performance share transform
// reuses this extractor because both shares are equal in the source format.
func extractMechanicalShare(v string) float64 {
	if m := labeledTotal.FindStringSubmatch(v); m != nil {
		return parseShare(m[1])
	}
	if m := barePercent.FindStringSubmatch(v); m != nil {
		return parseShare(m[1])
	}
	return 0.0
}

// extractAdditionalWriterName scans newline-delimited entries for the
// additional writer's name. Per line, a "Name: pct" form wins (rejecting
// name parts that are purely numeric), then a "Name - pct%" form. When no
// line matches, the first line's leading token before ':' or ' - ' is the
// fallback.
func extractAdditionalWriterName(v string) string {
	lines := strings.Split(v, "\n")
	for _, line := range lines {
		if strings.Contains(line, ":") {
			name := strings.TrimSpace(line[:strings.IndexByte(line, ':')])
			if name != "" && !isNumericName(name) {
				return name
			}
		} else if strings.Contains(line, " - ") && strings.Contains(line, "%") {
			name := strings.TrimSpace(line[:strings.Index(line, " - ")])
			if name != "" {
				return name
			}
		}
	}

	first := strings.TrimSpace(lines[0])
	if i := strings.IndexByte(first, ':'); i >= 0 {
		first = first[:i]
	}
	if i := strings.Index(first, " - "); i >= 0 {
		first = first[:i]
	}
	return strings.TrimSpace(first)
}

// isNumericName reports whether a candidate name collapses to digits once
// spaces and dots are removed, i.e. it is a share figure, not a name.
func isNumericName(name string) bool {
	cleaned := strings.ReplaceAll(name, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	if cleaned == "" {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// extractAdditionalWriterSociety returns the first known society code
// appearing as a bare word anywhere in the additional-writer text.
func extractAdditionalWriterSociety(v string) string {
	if m := societyBareWord.FindStringSubmatch(v); m != nil {
		return m[1]
	}
	return ""
}

// extractAdditionalShare returns the first bare "NN%" anywhere in the
// text, or 0.0. Performance mirrors mechanical here as well.
func extractAdditionalShare(v string) float64 {
	if m := barePercent.FindStringSubmatch(v); m != nil {
		return parseShare(m[1])
	}
	return 0.0
}

// extractPublisherName returns the publisher's name from a shares block:
// the text preceding a parenthesis, "obo", or hyphen that follows a name
// carrying the registered-publisher marker, with trailing parenthetical
// society annotations stripped. No match yields "".
func extractPublisherName(v string) string {
	m := publisherLead.FindStringSubmatch(v)
	if m == nil {
		return ""
	}
	name := strings.TrimSpace(m[1])
	name = trailingSocieties.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// extractPublisherSociety returns the first society code in parentheses in
// the publisher context.
func extractPublisherSociety(v string) string {
	if m := societyInParens.FindStringSubmatch(v); m != nil {
		return m[1]
	}
	return ""
}

// extractPublisherShare returns the labeled "Payday Total: NN%" figure.
// Unlike the writer extractors there is no bare-percent fallback: a bare
// percentage in this field belongs to an individual split line, not the
// publisher total.
func extractPublisherShare(v string) float64 {
	if m := labeledTotal.FindStringSubmatch(v); m != nil {
		return parseShare(m[1])
	}
	return 0.0
}

func parseShare(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return f
}
