package reviewer

import (
	"context"
	"fmt"
	"strings"

	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

// HeuristicStrategy compares other-party labels by canonicalized text:
// labels that collapse to one form (case, spacing and punctuation ignored,
// prefix truncation allowed) are assumed to be export variants of the same
// party. Cheap, deterministic, always available.
type HeuristicStrategy struct {
	logger logging.Logger
}

// NewHeuristicStrategy creates the strategy. A nil logger falls back to
// the default.
func NewHeuristicStrategy(logger logging.Logger) *HeuristicStrategy {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &HeuristicStrategy{logger: logger}
}

func (s *HeuristicStrategy) Name() string {
	return "Heuristic"
}

// Review only considers REVIEW-confidence groups with at least two labels;
// everything else needs no assist.
func (s *HeuristicStrategy) Review(_ context.Context, group models.CounterpartyGroup) (Suggestion, bool, error) {
	if group.Confidence != string(models.ConfidenceReview) || len(group.Labels) < 2 {
		return Suggestion{}, false, nil
	}

	same := true
	base := canonicalLabel(group.Labels[0])
	for _, label := range group.Labels[1:] {
		if !labelsSimilar(base, canonicalLabel(label)) {
			same = false
			break
		}
	}

	rationale := fmt.Sprintf("%d labels collapse to distinct forms", len(group.Labels))
	if same {
		rationale = fmt.Sprintf("%d labels collapse to one canonical form", len(group.Labels))
	}

	s.logger.Debug("heuristic review",
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldRawKey, Value: group.RawKey},
		logging.Field{Key: "same_party", Value: same})

	return Suggestion{
		RawKey:    group.RawKey,
		SameParty: same,
		Rationale: rationale,
		Strategy:  s.Name(),
	}, true, nil
}

// canonicalLabel strips casing, whitespace and punctuation.
func canonicalLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(label) {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// labelsSimilar accepts equality or prefix truncation: exports routinely
// cut names short, so "RAMESH KUM" and "RAMESH KUMAR" compare equal.
func labelsSimilar(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
