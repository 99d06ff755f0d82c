// Package grouper folds extraction results into counterparty groups and
// flags keys associated with more than the configured number of distinct
// other parties.
package grouper

import (
	"sort"

	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

// DefaultDistinctThreshold flags a key once it has been seen with more
// than one distinct other party.
const DefaultDistinctThreshold = 1

// Entry is one transaction's contribution to the grouping pass.
type Entry struct {
	TransactionID string
	RawKey        string
	Label         string
	Rail          models.Rail
	Confidence    models.Confidence
}

// Engine rebuilds groups from scratch on every Fold call; there is no
// incremental update and no state shared between runs.
type Engine struct {
	threshold int
	logger    logging.Logger
}

// New creates an Engine flagging keys whose distinct-label count exceeds
// threshold. A non-positive threshold falls back to the default.
func New(threshold int, logger logging.Logger) *Engine {
	if threshold <= 0 {
		threshold = DefaultDistinctThreshold
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{threshold: threshold, logger: logger}
}

type groupState struct {
	rail       models.Rail
	confidence models.Confidence
	labels     map[string]struct{}
	txns       []string
}

// Fold aggregates entries into groups. Entries without a raw key land in
// the unidentified bucket (their transaction ids, input order). Groups are
// returned sorted by descending distinct-label count, then key ascending.
// Evidence lists keep duplicates: each contributing transaction appears
// once per contribution.
func (e *Engine) Fold(entries []Entry) (groups []models.CounterpartyGroup, unidentified []string) {
	states := make(map[string]*groupState)

	for _, entry := range entries {
		if entry.RawKey == "" {
			unidentified = append(unidentified, entry.TransactionID)
			continue
		}

		st, ok := states[entry.RawKey]
		if !ok {
			st = &groupState{
				rail:       entry.Rail,
				confidence: entry.Confidence,
				labels:     make(map[string]struct{}),
			}
			states[entry.RawKey] = st
		}
		// A REVIEW contribution taints the whole group: reviewers should
		// not auto-trust a key that ever came from a weak heuristic.
		if entry.Confidence == models.ConfidenceReview {
			st.confidence = models.ConfidenceReview
		}
		if entry.Label != "" {
			st.labels[entry.Label] = struct{}{}
		}
		st.txns = append(st.txns, entry.TransactionID)
	}

	groups = make([]models.CounterpartyGroup, 0, len(states))
	for key, st := range states {
		labels := make([]string, 0, len(st.labels))
		for label := range st.labels {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		groups = append(groups, models.CounterpartyGroup{
			RawKey:         key,
			Rail:           string(st.rail),
			Confidence:     string(st.confidence),
			Labels:         labels,
			DistinctCount:  len(labels),
			TransactionIDs: st.txns,
			Flagged:        len(labels) > e.threshold,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].DistinctCount != groups[j].DistinctCount {
			return groups[i].DistinctCount > groups[j].DistinctCount
		}
		return groups[i].RawKey < groups[j].RawKey
	})

	e.logger.Debug("grouping pass complete",
		logging.Field{Key: logging.FieldCount, Value: len(groups)})
	return groups, unidentified
}

// Flagged filters groups down to the flagged ones, preserving order.
func Flagged(groups []models.CounterpartyGroup) []models.CounterpartyGroup {
	var out []models.CounterpartyGroup
	for _, g := range groups {
		if g.Flagged {
			out = append(out, g)
		}
	}
	return out
}
