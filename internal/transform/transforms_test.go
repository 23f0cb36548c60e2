package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		format string
		want   string
	}{
		{"iso already", "2024-01-15", "%Y-%m-%d", "2024-01-15"},
		{"us slashes", "01/15/2024", "%Y-%m-%d", "2024-01-15"},
		{"year first slashes", "2024/01/15", "%Y-%m-%d", "2024-01-15"},
		{"dashes mdy", "01-15-2024", "%Y-%m-%d", "2024-01-15"},
		{"dots ymd", "2024.01.15", "%Y-%m-%d", "2024-01-15"},
		{"midnight suffix stripped", "2024-01-15 00:00:00", "%Y-%m-%d", "2024-01-15"},
		{"reformat to us", "2024-01-15", "%m/%d/%Y", "01/15/2024"},
		{"unparseable passes through", "not a date", "%Y-%m-%d", "not a date"},
		{"partial date passes through", "2024-01", "%Y-%m-%d", "2024-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDate(tt.in, tt.format))
		})
	}
}

func TestParseDateAmbiguousPrefersMonthFirst(t *testing.T) {
	// 03/04/2024 parses as March 4th, not April 3rd: M/D/Y precedes D/M/Y
	// in the layout order.
	assert.Equal(t, "2024-03-04", parseDate("03/04/2024", "%Y-%m-%d"))
}

func TestPercent0100(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0.5", 50.0},
		{"1", 100.0},
		{"75", 75.0},
		{"25%", 25.0},
		{"33.333", 33.33},
		{"0", 0.0},
		{"garbage", 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percent0100(tt.in), "percent_0_100(%q)", tt.in)
	}
}

func TestPercent01(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"50", 0.5},
		{"0.25", 0.25},
		{"100", 1.0},
		{"33.333%", 0.3333},
		{"garbage", 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percent01(tt.in), "percent_0_1(%q)", tt.in)
	}
}

func TestPercentRoundTrip(t *testing.T) {
	// percent_0_1 approximately inverts percent_0_100 for values above 1.
	assert.Equal(t, 0.755, percent01("75.5"))
	assert.Equal(t, 75.5, percent0100("75.5"))
}

func TestFormatISWC(t *testing.T) {
	assert.Equal(t, "T-123456789-0", formatISWC("1234567890"))
	assert.Equal(t, "T-123456789-0", formatISWC("T-123456789-0"))
	assert.Equal(t, "T-123456789-0", formatISWC(formatISWC("1234567890")), "idempotent")
	assert.Equal(t, "12345", formatISWC("12345"))
	assert.Equal(t, "not a code", formatISWC("not a code"))
}

func TestFormatISRC(t *testing.T) {
	assert.Equal(t, "US-RC1-76-07839", formatISRC("USRC17607839"))
	assert.Equal(t, "US-RC1-76-07839", formatISRC("us-rc1-76-07839"))
	assert.Equal(t, "US-RC1-76-07839", formatISRC("USRC17607839\nGBAYE0601498"), "first of newline list")
	assert.Equal(t, "US-RC1-76-07839", formatISRC("USRC17607839, GBAYE0601498"), "first of comma list")
	assert.Equal(t, "TOOSHORT", formatISRC("too short"))
}

func TestFormatIPI(t *testing.T) {
	assert.Equal(t, "00002162936", formatIPI("IPI# 00002162936"))
	assert.Equal(t, "123456789", formatIPI("123-456-789"))
	assert.Equal(t, "", formatIPI("no digits"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "03:45", formatDuration("225"))
	assert.Equal(t, "00:59", formatDuration("59"))
	assert.Equal(t, "10:00", formatDuration("600"))
	assert.Equal(t, "3:45", formatDuration("3:45"), "existing colon passes through")
	assert.Equal(t, "abc", formatDuration("abc"))
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "00042", padLeft("42", "5:0"))
	assert.Equal(t, "***ab", padLeft("ab", "5:*"))
	assert.Equal(t, "123456", padLeft("123456", "5:0"), "already wide enough")
	assert.Equal(t, "42", padLeft("42", "bogus"), "malformed arg passes through")
	assert.Equal(t, "42", padLeft("42", "5:"), "missing pad char passes through")
}

func TestSplitValue(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitValue("a|b|c", "|"))
	assert.Equal(t, []string{"solo"}, splitValue("solo", "|"))
	assert.Equal(t, []string{"x"}, splitValue("x", ""))
}
