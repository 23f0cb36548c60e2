// =============================================================================
// Curve Converter - Built-in Transforms
// =============================================================================
//
// Implementations of the named transforms. Each function receives a
// stripped, non-blank string (the registry handles blank short-circuiting)
// and must be total: malformed input returns a safe default instead of an
// error.
//
// =============================================================================

package transform

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	texttransform "golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// STRING OPERATIONS
// =============================================================================

var titleCaser = cases.Title(language.Und)

func titleCase(v string) string {
	return titleCaser.String(strings.ToLower(v))
}

// diacriticsRemover decomposes to NFD and drops combining marks, so
// "café" becomes "cafe".
var diacriticsRemover = texttransform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

func stripDiacritics(v string) string {
	out, _, err := texttransform.String(diacriticsRemover, v)
	if err != nil {
		return v
	}
	return out
}

// =============================================================================
// DATE PARSING
// =============================================================================

// dateLayouts is the fixed, ordered list of accepted input date patterns.
// The first layout that parses wins, so the order is part of the contract:
// ambiguous dates like 03/04/2024 resolve as month/day before day/month.
var dateLayouts = []string{
	"2006-01-02", // Y-M-D
	"01/02/2006", // M/D/Y
	"02/01/2006", // D/M/Y
	"2006/01/02", // Y/M/D
	"01-02-2006", // M-D-Y
	"02-01-2006", // D-M-Y
	"2006.01.02", // Y.M.D
	"01.02.2006", // M.D.Y
}

// strftimeTokens maps the strftime directives accepted in to_date:<fmt>
// arguments to Go reference-time layout fragments.
var strftimeTokens = strings.NewReplacer(
	"%Y", "2006",
	"%y", "06",
	"%m", "01",
	"%d", "02",
	"%H", "15",
	"%M", "04",
	"%S", "05",
)

// parseDate reparses a flexible date string and renders it in the strftime
// format given as the transform argument. Input that matches no known
// layout is returned unmodified; failing to parse a date is not an error
// at this layer.
func parseDate(v, format string) string {
	// Spreadsheet exports often carry a literal midnight timestamp.
	v = strings.TrimSuffix(v, " 00:00:00")

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t.Format(strftimeTokens.Replace(format))
		}
	}
	return v
}

// =============================================================================
// PERCENTAGES
// =============================================================================

// percent0100 normalizes a share onto the 0-100 scale. Fractional inputs
// in [0,1] are assumed to be ratios and multiplied by 100; anything larger
// is taken as already being a percentage. Unparseable input is 0.0.
func percent0100(v string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, "%", ""), 64)
	if err != nil {
		return 0.0
	}
	if f >= 0 && f <= 1 {
		f *= 100
	}
	return round(f, 2)
}

// percent01 normalizes a share onto the 0-1 scale: values above 1 are
// divided by 100. Unparseable input is 0.0.
func percent01(v string) float64 {
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, "%", ""), 64)
	if err != nil {
		return 0.0
	}
	if f > 1 {
		f /= 100
	}
	return round(f, 4)
}

func round(f float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(f*shift) / shift
}

// =============================================================================
// PADDING AND SPLITTING
// =============================================================================

// padLeft left-pads to the width in the argument using the pad character
// after the second colon, e.g. padleft:11:0. A malformed argument passes
// the value through.
func padLeft(v, arg string) string {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return v
	}
	width, err := strconv.Atoi(parts[0])
	if err != nil || width <= 0 {
		return v
	}

	runesIn := []rune(v)
	if len(runesIn) >= width {
		return v
	}

	pad := []rune(parts[1])[0]
	padding := make([]rune, width-len(runesIn))
	for i := range padding {
		padding[i] = pad
	}
	return string(padding) + v
}

// splitValue splits on the literal separator from the transform argument.
// The result is a multi-value cell; routing it to a single-value
// destination column is a configuration mistake this layer does not guard
// against.
func splitValue(v, sep string) []string {
	if sep == "" {
		return []string{v}
	}
	return strings.Split(v, sep)
}

// =============================================================================
// INDUSTRY CODE FORMATTING
// =============================================================================

var nonDigits = regexp.MustCompile(`[^0-9]`)

// formatISWC renders a work code as T-XXXXXXXXX-X. Only values that reduce
// to exactly ten digits are reformatted, which makes the transform
// idempotent; everything else passes through unchanged.
func formatISWC(v string) string {
	digits := nonDigits.ReplaceAllString(v, "")
	if len(digits) == 10 {
		return fmt.Sprintf("T-%s-%s", digits[:9], digits[9:])
	}
	return v
}

// formatISRC renders a recording code as CC-XXX-YY-NNNNN. Legacy exports
// sometimes stuff several codes into one cell separated by newlines or
// commas; only the first is kept. Values that do not clean up to twelve
// characters are returned cleaned but unformatted.
func formatISRC(v string) string {
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = strings.TrimSpace(v[:i])
	} else if i := strings.IndexByte(v, ','); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}

	v = strings.ToUpper(v)
	v = strings.ReplaceAll(v, "-", "")
	v = strings.ReplaceAll(v, " ", "")

	if len(v) == 12 {
		return fmt.Sprintf("%s-%s-%s-%s", v[:2], v[2:5], v[5:7], v[7:])
	}
	return v
}

// formatIPI strips an interested-party number down to its digits.
func formatIPI(v string) string {
	return nonDigits.ReplaceAllString(v, "")
}

// formatDuration renders a track length as zero-padded MM:SS. Values that
// already contain a colon are passed through; otherwise the value is taken
// as a count of seconds. Parse failures pass through.
func formatDuration(v string) string {
	if strings.Contains(v, ":") {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	seconds := int(f)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
