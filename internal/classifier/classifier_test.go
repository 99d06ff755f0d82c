package classifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"finwatch/upi-audit/internal/models"
)

func TestClassifyPrecedence(t *testing.T) {
	c := New(Config{})

	tests := []struct {
		name     string
		token    string
		expected models.TokenClass
	}{
		{"handle", "ALICE@OKBANK", models.ClassHandle},
		{"handle wins over phone digits", "9876543210@YBL", models.ClassHandle},
		{"phone", "9876543210", models.ClassPhone},
		{"phone wins over hash for long digit runs", strings.Repeat("9", 30), models.ClassPhone},
		{"hash", strings.Repeat("A1", 13), models.ClassHash},
		{"bank keyword", "HDFC0001234", models.ClassBank},
		{"bank wins over system", "SBIBANK TRANSFER", models.ClassBank},
		{"system keyword", "PAYMENT", models.ClassSystem},
		{"system keyword in reference", "REF123", models.ClassSystem},
		{"id-like", "A1B2", models.ClassIDLike},
		{"plain text", "JOHN", models.ClassText},
		{"empty token", "", models.ClassText},
		{"short digit run stays id-free text-adjacent", "12345", models.ClassText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.token))
		})
	}
}

func TestClassifyTotality(t *testing.T) {
	c := New(Config{})
	valid := map[models.TokenClass]bool{
		models.ClassHandle: true,
		models.ClassPhone:  true,
		models.ClassHash:   true,
		models.ClassBank:   true,
		models.ClassSystem: true,
		models.ClassIDLike: true,
		models.ClassText:   true,
	}

	tokens := []string{
		"", "@", "ALICE@", "123", "abc", "ABC123", "PAY",
		strings.Repeat("x", 40), "9999999999", "HDFC", "  spaced  ",
	}
	for _, token := range tokens {
		assert.True(t, valid[c.Classify(token)], "token %q must map to exactly one class", token)
	}
}

func TestClassifyConfigurableThresholds(t *testing.T) {
	c := New(Config{PhoneMinDigits: 8, HashLengthThreshold: 10})

	assert.Equal(t, models.ClassPhone, c.Classify("12345678"))
	assert.Equal(t, models.ClassHash, c.Classify("ABCDEFGHIJK"))
}

func TestClassifyCustomKeywords(t *testing.T) {
	c := New(Config{
		BankKeywords:   []string{"MYBANK"},
		SystemKeywords: []string{"SETTLEMENT"},
	})

	assert.Equal(t, models.ClassBank, c.Classify("MYBANK LTD"))
	assert.Equal(t, models.ClassSystem, c.Classify("SETTLEMENT"))
	// Defaults were replaced, so the built-in keyword no longer matches.
	assert.Equal(t, models.ClassText, c.Classify("PAYMENT"))
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	c := New(Config{})
	tokens := c.ClassifyAll([]string{"UPI", "REF123", "ALICE@OKBANK"})

	assert.Len(t, tokens, 3)
	assert.Equal(t, "UPI", tokens[0].Text)
	assert.Equal(t, models.ClassSystem, tokens[0].Class)
	assert.Equal(t, models.ClassHandle, tokens[2].Class)
}

func TestIsBankShortCode(t *testing.T) {
	c := New(Config{})

	assert.True(t, c.IsBankShortCode("SBI"))
	assert.True(t, c.IsBankShortCode("hdfc"))
	assert.False(t, c.IsBankShortCode("ALICE"))
	assert.False(t, c.IsBankShortCode("SBI1"), "codes with digits are not bare bank codes")
	assert.False(t, c.IsBankShortCode("A"))
	assert.False(t, c.IsBankShortCode(""))
}

func TestDefaultConfigFillsZeroValues(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, models.ClassPhone, c.Classify("9876543210"))
	assert.Equal(t, models.ClassBank, c.Classify("FEDERAL"))
}
