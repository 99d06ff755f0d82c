// Package normalizer canonicalizes raw narration text and splits it into
// the ordered token stream the classifier and extractor work on.
//
// Statement exports delimit narration segments inconsistently with slashes,
// hyphens, underscores and pipes. Normalization folds all of them onto a
// single '/' so every downstream heuristic sees one delimiter.
package normalizer

import (
	"regexp"
	"strings"
)

var (
	delimReplacer = strings.NewReplacer("-", "/", "_", "/", "|", "/")
	multiDelim    = regexp.MustCompile(`/{2,}`)
)

// Normalize upper-cases the description, folds hyphen, underscore and pipe
// onto '/', collapses repeated delimiters and trims surrounding whitespace.
// It is idempotent: Normalize(Normalize(x)) == Normalize(x). Empty input
// yields the empty string, never an error.
func Normalize(text string) string {
	text = strings.ToUpper(text)
	text = delimReplacer.Replace(text)
	text = multiDelim.ReplaceAllString(text, "/")
	return strings.TrimSpace(text)
}

// Tokenize splits a normalized description on the canonical delimiter,
// trims each segment and drops empty ones. Order is preserved; positional
// heuristics depend on it.
func Tokenize(normalized string) []string {
	if normalized == "" {
		return nil
	}

	parts := strings.Split(normalized, "/")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}
