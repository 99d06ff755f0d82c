package reviewer

import (
	"context"

	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

// Reviewer runs strategies in order over the REVIEW-confidence groups of a
// run; the first strategy with an opinion wins per group.
type Reviewer struct {
	strategies []Strategy
	logger     logging.Logger
}

// New creates a Reviewer over the given strategies.
func New(logger logging.Logger, strategies ...Strategy) *Reviewer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Reviewer{strategies: strategies, logger: logger}
}

// Evaluate collects suggestions for every group any strategy had an
// opinion on. Strategy errors are logged and skipped; review assist never
// fails a run.
func (r *Reviewer) Evaluate(ctx context.Context, groups []models.CounterpartyGroup) []Suggestion {
	var suggestions []Suggestion

	for _, group := range groups {
		for _, strategy := range r.strategies {
			suggestion, ok, err := strategy.Review(ctx, group)
			if err != nil {
				r.logger.WithError(err).Warn("review strategy failed",
					logging.Field{Key: logging.FieldStrategy, Value: strategy.Name()},
					logging.Field{Key: logging.FieldRawKey, Value: group.RawKey})
				continue
			}
			if ok {
				suggestions = append(suggestions, suggestion)
				break
			}
		}
	}
	return suggestions
}
