package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registry-tools/curve-converter/internal/mapping"
	"github.com/registry-tools/curve-converter/internal/validate"
)

func testConfig(t *testing.T) *mapping.Config {
	t.Helper()
	cfg, err := mapping.Parse([]byte(`
columns:
  - dest: "Work Title"
    source: "Title"
    transform: "strip"
    validation: "required"
  - dest: "Artist Name"
    source: "Artist"
    transform: "strip"
  - dest: "Participant 1 Role"
    source: "Role"
    transform: "map_role"
    validation: "valid_role"
  - dest: "Participant 1 Mechanical Share"
    source: "Mech Share"
    transform: "percent_0_100"
  - dest: "Territory"
    default: "WW"

lookups:
  role_codes:
    Writer: "CA"

validation_rules:
  required_fields:
    - "Work Title"
`))
	require.NoError(t, err)
	return cfg
}

func TestRowConvert(t *testing.T) {
	rc := NewRowConverter(testConfig(t))

	record, errs := rc.Convert(map[string]string{
		"Title":      "  Song 1  ",
		"Artist":     "Artist A",
		"Role":       "Writer",
		"Mech Share": "100",
	}, 2)

	assert.Empty(t, errs)
	assert.Equal(t, "Song 1", record["Work Title"])
	assert.Equal(t, "Artist A", record["Artist Name"])
	assert.Equal(t, "CA", record["Participant 1 Role"])
	assert.Equal(t, 100.0, record["Participant 1 Mechanical Share"])
	assert.Equal(t, "WW", record["Territory"], "default fills missing source")
}

func TestRowConvertMissingSourceUsesDefault(t *testing.T) {
	rc := NewRowConverter(testConfig(t))

	// No "Artist" column in the input at all.
	record, _ := rc.Convert(map[string]string{"Title": "Song 1"}, 2)

	assert.Equal(t, "", record["Artist Name"])
	assert.Equal(t, "WW", record["Territory"])
}

func TestRowConvertCollectsFieldErrors(t *testing.T) {
	rc := NewRowConverter(testConfig(t))

	_, errs := rc.Convert(map[string]string{
		"Title": "   ",
		"Role":  "Unknown Role",
	}, 5)

	// Blank required title reports at both levels, and the unmapped role
	// fails valid_role because the miss passes the source spelling through.
	require.Len(t, errs, 3)

	assert.Equal(t, validate.CodeFieldError, errs[0].Code)
	assert.Contains(t, errs[0].Detail, "Work Title")
	assert.Equal(t, 5, errs[0].RowIndex)
	assert.Equal(t, validate.UnknownTitle, errs[0].WorkTitle)

	assert.Equal(t, validate.CodeFieldError, errs[1].Code)
	assert.Contains(t, errs[1].Detail, "Participant 1 Role")

	assert.Equal(t, validate.CodeRequiredFieldMissing, errs[2].Code)
}

func TestRowConvertPanickingTransformFallsBack(t *testing.T) {
	rc := NewRowConverter(testConfig(t))
	rc.registry.Register("explode", func(string, mapping.Lookups) any {
		panic("boom")
	})
	rc.columns = append([]mapping.ColumnMapping{}, rc.columns...)
	rc.columns = append(rc.columns, mapping.ColumnMapping{
		Dest:      "Fragile",
		Source:    "Title",
		Transform: "explode",
		Default:   "fallback",
	})

	record, errs := rc.Convert(map[string]string{"Title": "Song 1"}, 2)

	assert.Equal(t, "fallback", record["Fragile"])
	require.NotEmpty(t, errs)
	assert.Equal(t, validate.CodeFieldError, errs[0].Code)
	assert.Contains(t, errs[0].Detail, "Fragile")
}
