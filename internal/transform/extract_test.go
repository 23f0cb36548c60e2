package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWriterName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"paren separator", `Jorge Omar Barreiro (pka "Jorge Pelegrin") (ASCAP) - 50%`, "Jorge Omar Barreiro"},
		{"dash separator", "John Doe - 50%", "John Doe"},
		{"plain name", "Jane Smith", "Jane Smith"},
		{"paren before dash wins", "Jane Smith (BMI) - 25%", "Jane Smith"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractWriterName(tt.in))
		})
	}
}

func TestExtractWriterSociety(t *testing.T) {
	assert.Equal(t, "ASCAP", extractWriterSociety("Jorge Barreiro (ASCAP) - 50%"))
	assert.Equal(t, "BMI", extractWriterSociety("one (BMI) two (ASCAP)"), "first occurrence wins")
	assert.Equal(t, "", extractWriterSociety("no society here"))
	assert.Equal(t, "", extractWriterSociety("bare ASCAP without parens"))
}

func TestExtractWriterIPI(t *testing.T) {
	assert.Equal(t, "00002162936", extractWriterIPI("Barreiro (ASCAP) - 00002162936"))
	assert.Equal(t, "123456789", extractWriterIPI("IPI 123456789"))
	assert.Equal(t, "", extractWriterIPI("12345678"), "too few digits")
}

func TestExtractMechanicalShare(t *testing.T) {
	assert.Equal(t, 50.0, extractMechanicalShare("Payday Total: 50%"))
	assert.Equal(t, 33.33, extractMechanicalShare("writer 25% ... Payday Total: 33.33%"),
		"labeled total preferred over earlier bare percent")
	assert.Equal(t, 25.0, extractMechanicalShare("some writer 25% of the work"), "bare percent fallback")
	assert.Equal(t, 0.0, extractMechanicalShare("no shares at all"))
}

func TestExtractAdditionalWriterName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"colon form", "Dameon Hughes: 1.41%", "Dameon Hughes"},
		{"dash form", "Khalil Jewell - 50%", "Khalil Jewell"},
		{"numeric colon name rejected", "50.0: split\nKhalil Jewell - 25%", "Khalil Jewell"},
		{"multi line prefers first match", "Khalil Jewell - 50%\nDameon Hughes: 1.41%", "Khalil Jewell"},
		{"fallback first line token", "Solo Writer", "Solo Writer"},
		{"fallback strips separators", "Solo Writer - no percent here", "Solo Writer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAdditionalWriterName(tt.in))
		})
	}
}

func TestExtractAdditionalWriterSociety(t *testing.T) {
	assert.Equal(t, "BMI", extractAdditionalWriterSociety("Khalil Jewell BMI - 50%"))
	assert.Equal(t, "SESAC", extractAdditionalWriterSociety("name (SESAC) 25%"), "parens also match as bare word")
	assert.Equal(t, "", extractAdditionalWriterSociety("nothing known"))
}

func TestExtractAdditionalShare(t *testing.T) {
	assert.Equal(t, 50.0, extractAdditionalShare("Khalil Jewell - 50%"))
	assert.Equal(t, 1.41, extractAdditionalShare("Dameon Hughes: 1.41%"))
	assert.Equal(t, 0.0, extractAdditionalShare("no percent"))
}

func TestExtractPublisherName(t *testing.T) {
	// The publisher grammar keys on the registered-publisher marker and
	// requires leading context before it.
	assert.Equal(t, "Payday Tunes",
		extractPublisherName(" Payday Tunes (ASCAP) - Payday Total: 50%"))
	assert.Equal(t, "", extractPublisherName("Regular Music (BMI) - 50%"), "no marker, no match")
	assert.Equal(t, "", extractPublisherName("plain text"))
}

func TestExtractPublisherSociety(t *testing.T) {
	assert.Equal(t, "ASCAP", extractPublisherSociety(" Payday Tunes (ASCAP) obo writers"))
	assert.Equal(t, "", extractPublisherSociety("no society"))
}

func TestExtractPublisherShare(t *testing.T) {
	assert.Equal(t, 100.0, extractPublisherShare("Payday Total: 100%"))
	assert.Equal(t, 0.0, extractPublisherShare("bare 25% is not a publisher total"),
		"no bare-percent fallback for publishers")
}
