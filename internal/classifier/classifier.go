// Package classifier labels narration tokens by shape and content.
//
// Classification is a pure function of the token text plus the configured
// keyword sets, evaluated in a fixed precedence order: the first matching
// predicate wins. Keyword sets are data, not logic; deployments extend them
// through the keyword store without touching this package.
package classifier

import (
	"strings"
	"unicode"

	"finwatch/upi-audit/internal/models"
)

// Default threshold values. They are deliberately conservative: a hash is
// only assumed for very long tokens, and anything shorter than a phone
// number stays numeric.
const (
	DefaultHashLengthThreshold = 25
	DefaultPhoneMinDigits      = 10
)

// Config carries the keyword sets and thresholds the classifier and the
// extractor share. All fields are optional; zero values fall back to the
// built-in defaults.
type Config struct {
	BankKeywords        []string
	BankShortCodes      []string
	SystemKeywords      []string
	HashLengthThreshold int
	PhoneMinDigits      int
}

// DefaultConfig returns the built-in keyword sets covering the common
// Indian institutions and rail/system vocabulary seen in statement exports.
func DefaultConfig() Config {
	return Config{
		BankKeywords: []string{
			"BANK", "SBI", "HDFC", "ICICI", "AXIS", "KOTAK", "PNB",
			"CANARA", "UNION", "IDBI", "INDUSIND", "FEDERAL", "BARODA",
			"YESB", "IOB", "UCO",
		},
		BankShortCodes: []string{
			"SBI", "HDFC", "ICICI", "AXIS", "KOTAK", "PNB", "BOB",
			"UBI", "IDBI", "YBL", "IOB", "UCO", "CBI",
		},
		SystemKeywords: []string{
			"PAYMENT", "TRANSFER", "BALANCE", "UPI", "NEFT", "RTGS",
			"IMPS", "MMT", "INFT", "PAY", "CREDIT", "DEBIT", "REF",
			"TXN", "ATM", "WDL", "CHG", "POS",
		},
		HashLengthThreshold: DefaultHashLengthThreshold,
		PhoneMinDigits:      DefaultPhoneMinDigits,
	}
}

// Classifier labels tokens according to one Config. Construct it once per
// run; it is safe for concurrent reads.
type Classifier struct {
	bankKeywords   []string
	systemKeywords []string
	shortCodes     map[string]struct{}
	hashThreshold  int
	phoneMinDigits int
}

// New builds a Classifier from cfg, filling missing fields from
// DefaultConfig.
func New(cfg Config) *Classifier {
	defaults := DefaultConfig()
	if len(cfg.BankKeywords) == 0 {
		cfg.BankKeywords = defaults.BankKeywords
	}
	if len(cfg.BankShortCodes) == 0 {
		cfg.BankShortCodes = defaults.BankShortCodes
	}
	if len(cfg.SystemKeywords) == 0 {
		cfg.SystemKeywords = defaults.SystemKeywords
	}
	if cfg.HashLengthThreshold <= 0 {
		cfg.HashLengthThreshold = defaults.HashLengthThreshold
	}
	if cfg.PhoneMinDigits <= 0 {
		cfg.PhoneMinDigits = defaults.PhoneMinDigits
	}

	shortCodes := make(map[string]struct{}, len(cfg.BankShortCodes))
	for _, code := range cfg.BankShortCodes {
		shortCodes[strings.ToUpper(code)] = struct{}{}
	}

	return &Classifier{
		bankKeywords:   upperAll(cfg.BankKeywords),
		systemKeywords: upperAll(cfg.SystemKeywords),
		shortCodes:     shortCodes,
		hashThreshold:  cfg.HashLengthThreshold,
		phoneMinDigits: cfg.PhoneMinDigits,
	}
}

// Classify returns exactly one TokenClass for the token. Precedence:
// HANDLE > PHONE > HASH > BANK > SYSTEM > ID_LIKE > TEXT.
func (c *Classifier) Classify(token string) models.TokenClass {
	upper := strings.ToUpper(strings.TrimSpace(token))

	switch {
	case strings.Contains(upper, "@"):
		return models.ClassHandle
	case isAllDigits(upper) && len(upper) >= c.phoneMinDigits:
		return models.ClassPhone
	case len(upper) > c.hashThreshold:
		return models.ClassHash
	case containsAny(upper, c.bankKeywords):
		return models.ClassBank
	case containsAny(upper, c.systemKeywords):
		return models.ClassSystem
	case hasLetter(upper) && hasDigit(upper):
		return models.ClassIDLike
	default:
		return models.ClassText
	}
}

// ClassifyAll classifies every token in order.
func (c *Classifier) ClassifyAll(tokens []string) []models.Token {
	out := make([]models.Token, len(tokens))
	for i, t := range tokens {
		out[i] = models.Token{Text: t, Class: c.Classify(t)}
	}
	return out
}

// IsBankShortCode reports whether s is a bare 2-6 letter bank code
// (e.g. SBI, HDFC). The UPI extractor uses this to reject false-positive
// handles like "SBI@".
func (c *Classifier) IsBankShortCode(s string) bool {
	upper := strings.ToUpper(s)
	if len(upper) < 2 || len(upper) > 6 || !isAllLetters(upper) {
		return false
	}
	_, ok := c.shortCodes[upper]
	return ok
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isAllLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
