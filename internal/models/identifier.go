package models

// Confidence qualifies how reliable an extracted key is. REVIEW keys must be
// surfaced for manual confirmation rather than auto-flagged.
type Confidence string

const (
	ConfidenceReliable Confidence = "RELIABLE"
	ConfidenceReview   Confidence = "REVIEW"
)

// ExtractedIdentifier is the extractor's verdict for one transaction. An
// empty RawKey means no reliable identifier could be derived, which is a
// legitimate outcome for unparseable or off-rail narrations, not an error.
//
// Keys are namespaced by extraction method ("upi:", "acct:", "imps_name:")
// so identifiers of incompatible types never collide in grouping.
type ExtractedIdentifier struct {
	RawKey     string
	Rail       Rail
	Confidence Confidence
}

// HasKey reports whether an identifier was derived.
func (e ExtractedIdentifier) HasKey() bool {
	return e.RawKey != ""
}
