// Package extractor derives a canonical sender/receiver key from a
// narration, dispatching on the detected payment rail.
//
// Every branch is best-effort: a malformed or truncated narration degrades
// to "no identifier" rather than a wrong key. Keys are namespaced by
// extraction method so a UPI username and a bank account number can never
// collide in grouping.
package extractor

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"finwatch/upi-audit/internal/classifier"
	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
	"finwatch/upi-audit/internal/normalizer"
	"finwatch/upi-audit/internal/rail"
)

// Options bounds the numeric-identifier heuristics.
type Options struct {
	// MinAccountDigits / MaxAccountDigits bound the digit run accepted as
	// an account number when it sits next to an IFSC code.
	MinAccountDigits int
	// MaxAccountDigits caps every digit-run heuristic.
	MaxAccountDigits int
	// FallbackMinAccountDigits bounds the standalone digit run accepted
	// without IFSC corroboration. Higher than MinAccountDigits because a
	// bare long number is weaker evidence.
	FallbackMinAccountDigits int
}

// DefaultOptions returns the documented default bounds.
func DefaultOptions() Options {
	return Options{
		MinAccountDigits:         9,
		MaxAccountDigits:         18,
		FallbackMinAccountDigits: 11,
	}
}

// Extraction is the full per-transaction verdict: the grouping key plus the
// positional details the structured table surfaces for review.
type Extraction struct {
	Identifier models.ExtractedIdentifier
	Tokens     []models.Token
	// Handle is the first VPA-shaped token, HandleUser its username part.
	Handle     string
	HandleUser string
	// PayerName is the first free-text token preceding the handle that
	// carries no long digit run. A positional guess, REVIEW quality.
	PayerName string
	// PayerHandle is the second VPA-shaped token when the narration
	// carries both sides of the transfer.
	PayerHandle string
}

// Extractor turns narrations into Extractions. Construct once per run.
type Extractor struct {
	classifier *classifier.Classifier
	opts       Options
	logger     logging.Logger
	handleRe   *regexp.Regexp
	acctIFSCRe *regexp.Regexp
	acctBareRe *regexp.Regexp
	digitRunRe *regexp.Regexp
}

// New builds an Extractor. A nil logger falls back to the default; zero
// option fields fall back to DefaultOptions.
func New(c *classifier.Classifier, opts Options, logger logging.Logger) *Extractor {
	if c == nil {
		c = classifier.New(classifier.Config{})
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	defaults := DefaultOptions()
	if opts.MinAccountDigits <= 0 {
		opts.MinAccountDigits = defaults.MinAccountDigits
	}
	if opts.MaxAccountDigits <= 0 {
		opts.MaxAccountDigits = defaults.MaxAccountDigits
	}
	if opts.FallbackMinAccountDigits <= 0 {
		opts.FallbackMinAccountDigits = defaults.FallbackMinAccountDigits
	}

	return &Extractor{
		classifier: c,
		opts:       opts,
		logger:     logger,
		// Handle shape after normalization: username of letters, digits
		// and dots, then '@', then an optional alphanumeric suffix. The
		// suffix may be missing entirely on truncated exports.
		handleRe: regexp.MustCompile(`(?:^|[/ ])([A-Z0-9.]+)@([A-Z0-9]*)`),
		acctIFSCRe: regexp.MustCompile(fmt.Sprintf(
			`(?:^|[/ ])(\d{%d,%d})[/ ]([A-Z]{4}[A-Z0-9]{7})(?:[/ ]|$)`,
			opts.MinAccountDigits, opts.MaxAccountDigits)),
		acctBareRe: regexp.MustCompile(fmt.Sprintf(
			`(?:^|[/ ])(\d{%d,%d})(?:[/ ]|$)`,
			opts.FallbackMinAccountDigits, opts.MaxAccountDigits)),
		digitRunRe: regexp.MustCompile(`\d{8,}`),
	}
}

// Extract never fails: an unparseable description yields an Extraction with
// an empty RawKey under RailUnknown.
func (e *Extractor) Extract(description string) Extraction {
	normalized := normalizer.Normalize(description)
	tokens := e.classifier.ClassifyAll(normalizer.Tokenize(normalized))
	detected := rail.Detect(description)

	ex := Extraction{
		Identifier: models.ExtractedIdentifier{Rail: detected},
		Tokens:     tokens,
	}
	e.fillHandleFields(&ex, tokens)

	switch detected {
	case models.RailUPI:
		ex.Identifier = e.extractUPI(normalized, detected)
	case models.RailNEFT, models.RailRTGS:
		ex.Identifier = e.extractAccount(normalized, detected)
	case models.RailIMPS, models.RailINFT:
		ex.Identifier = e.extractSenderName(tokens, detected)
	default:
		// RailUnknown: no grammar applies, leave the key empty.
	}

	if ex.Identifier.HasKey() {
		e.logger.Debug("identifier extracted",
			logging.Field{Key: logging.FieldRail, Value: string(detected)},
			logging.Field{Key: logging.FieldRawKey, Value: ex.Identifier.RawKey},
			logging.Field{Key: logging.FieldConfidence, Value: string(ex.Identifier.Confidence)})
	}
	return ex
}

// fillHandleFields records the first and second VPA-shaped tokens plus the
// payer-name guess, mirroring the structured review table.
func (e *Extractor) fillHandleFields(ex *Extraction, tokens []models.Token) {
	for _, t := range tokens {
		if t.Class != models.ClassHandle {
			continue
		}
		if ex.Handle == "" {
			ex.Handle = t.Text
			ex.HandleUser = strings.SplitN(t.Text, "@", 2)[0]
		} else if ex.PayerHandle == "" {
			ex.PayerHandle = t.Text
			break
		}
	}

	for _, t := range tokens {
		if t.Text == ex.Handle && ex.Handle != "" {
			break
		}
		if t.Class == models.ClassText && len(t.Text) > 2 && !e.digitRunRe.MatchString(t.Text) {
			ex.PayerName = t.Text
			break
		}
	}
}

// extractUPI keys on the username segment of the first plausible VPA. The
// suffix is intentionally ignored so that name@bank1 / name@bank2 and the
// truncated name@ variant of the same physical handle collide on one key.
// That is a documented simplification, not a proven equivalence.
func (e *Extractor) extractUPI(normalized string, detected models.Rail) models.ExtractedIdentifier {
	for _, m := range e.handleRe.FindAllStringSubmatch(normalized, -1) {
		username, suffix := m[1], m[2]
		if len(suffix) == 1 {
			// A single-character suffix is neither a provider code nor a
			// clean truncation; skip it.
			continue
		}
		if e.classifier.IsBankShortCode(username) {
			// Reject false positives like "SBI@" where the bank code
			// itself sits before the separator.
			continue
		}
		return models.ExtractedIdentifier{
			RawKey:     "upi:" + strings.ToLower(username),
			Rail:       detected,
			Confidence: models.ConfidenceReliable,
		}
	}
	return models.ExtractedIdentifier{Rail: detected}
}

// extractAccount keys on a 9-18 digit run adjacent to an IFSC-shaped code.
// Without IFSC corroboration a standalone long run is accepted at REVIEW
// confidence only: it may coincide with an unrelated number in the remark.
func (e *Extractor) extractAccount(normalized string, detected models.Rail) models.ExtractedIdentifier {
	if m := e.acctIFSCRe.FindStringSubmatch(normalized); m != nil {
		return models.ExtractedIdentifier{
			RawKey:     "acct:" + m[1],
			Rail:       detected,
			Confidence: models.ConfidenceReliable,
		}
	}
	if m := e.acctBareRe.FindStringSubmatch(normalized); m != nil {
		return models.ExtractedIdentifier{
			RawKey:     "acct:" + m[1],
			Rail:       detected,
			Confidence: models.ConfidenceReview,
		}
	}
	return models.ExtractedIdentifier{Rail: detected}
}

// extractSenderName takes the second-to-last free-text segment longer than
// two characters as the human sender name. Short numeric references and
// amounts also classify as free text, so a candidate must carry at least
// one letter. Always REVIEW: names are frequently truncated and not
// guaranteed unique.
func (e *Extractor) extractSenderName(tokens []models.Token, detected models.Rail) models.ExtractedIdentifier {
	var candidates []string
	for _, t := range tokens {
		if t.Class == models.ClassText && len(t.Text) > 2 && strings.ContainsFunc(t.Text, unicode.IsLetter) {
			candidates = append(candidates, t.Text)
		}
	}

	var name string
	switch {
	case len(candidates) >= 2:
		name = candidates[len(candidates)-2]
	case len(candidates) == 1:
		name = candidates[0]
	default:
		return models.ExtractedIdentifier{Rail: detected}
	}

	return models.ExtractedIdentifier{
		RawKey:     "imps_name:" + strings.ToUpper(name),
		Rail:       detected,
		Confidence: models.ConfidenceReview,
	}
}
