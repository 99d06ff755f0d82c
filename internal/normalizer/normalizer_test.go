package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "upper-cases and unifies delimiters",
			input:    "upi-ref123_alice@okbank|payment",
			expected: "UPI/REF123/ALICE@OKBANK/PAYMENT",
		},
		{
			name:     "collapses repeated delimiters",
			input:    "NEFT--CR//12345",
			expected: "NEFT/CR/12345",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  IMPS/REF  ",
			expected: "IMPS/REF",
		},
		{
			name:     "empty input yields empty output",
			input:    "",
			expected: "",
		},
		{
			name:     "mixed delimiter runs collapse to one",
			input:    "A-_|B",
			expected: "A/B",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"upi-ref123_alice@okbank|payment",
		"NEFT-CR-12552100113212-FDRL0000037-JOHN DOE",
		"ATM WDL CHG 500.00",
		"a//b--c__d||e",
		"",
		"///",
		"  spaced  out  ",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", input)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "splits on canonical delimiter preserving order",
			input:    "UPI/REF123/ALICE@OKBANK/PAYMENT",
			expected: []string{"UPI", "REF123", "ALICE@OKBANK", "PAYMENT"},
		},
		{
			name:     "drops empty segments",
			input:    "A/ /B/",
			expected: []string{"A", "B"},
		},
		{
			name:     "trims segment whitespace",
			input:    "A / B",
			expected: []string{"A", "B"},
		},
		{
			name:     "empty input yields no tokens",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}
