package reviewer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

func reviewGroup(labels ...string) models.CounterpartyGroup {
	return models.CounterpartyGroup{
		RawKey:        "imps_name:RAMESH KUMAR",
		Rail:          string(models.RailIMPS),
		Confidence:    string(models.ConfidenceReview),
		Labels:        labels,
		DistinctCount: len(labels),
	}
}

func TestHeuristicSkipsReliableGroups(t *testing.T) {
	s := NewHeuristicStrategy(logging.NewMockLogger())

	group := reviewGroup("A", "B")
	group.Confidence = string(models.ConfidenceReliable)

	_, ok, err := s.Review(context.Background(), group)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHeuristicSkipsSingleLabelGroups(t *testing.T) {
	s := NewHeuristicStrategy(logging.NewMockLogger())

	_, ok, err := s.Review(context.Background(), reviewGroup("RAMESH KUMAR"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHeuristicSameParty(t *testing.T) {
	s := NewHeuristicStrategy(logging.NewMockLogger())

	tests := []struct {
		name   string
		labels []string
		same   bool
	}{
		{"case and punctuation variants", []string{"Ramesh Kumar", "RAMESH-KUMAR"}, true},
		{"truncated export variant", []string{"RAMESH KUM", "RAMESH KUMAR"}, true},
		{"distinct names", []string{"RAMESH KUMAR", "SUNITA DEVI"}, false},
		{"shared prefix only up to a point", []string{"RAMESH KUMAR", "RAMESH KUMAR", "SUNITA"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestion, ok, err := s.Review(context.Background(), reviewGroup(tt.labels...))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.same, suggestion.SameParty)
			assert.Equal(t, "Heuristic", suggestion.Strategy)
			assert.NotEmpty(t, suggestion.Rationale)
		})
	}
}

func TestCanonicalLabel(t *testing.T) {
	assert.Equal(t, "RAMESHKUMAR", canonicalLabel("Ramesh Kumar"))
	assert.Equal(t, "RAMESHKUMAR", canonicalLabel("ramesh-kumar."))
	assert.Equal(t, "", canonicalLabel("  ---  "))
}

type stubStrategy struct {
	name       string
	suggestion Suggestion
	ok         bool
	err        error
}

func (s *stubStrategy) Review(context.Context, models.CounterpartyGroup) (Suggestion, bool, error) {
	return s.suggestion, s.ok, s.err
}

func (s *stubStrategy) Name() string { return s.name }

func TestEvaluateFirstOpinionWins(t *testing.T) {
	first := &stubStrategy{name: "first", suggestion: Suggestion{Strategy: "first"}, ok: true}
	second := &stubStrategy{name: "second", suggestion: Suggestion{Strategy: "second"}, ok: true}

	r := New(logging.NewMockLogger(), first, second)
	suggestions := r.Evaluate(context.Background(), []models.CounterpartyGroup{reviewGroup("A", "B")})

	require.Len(t, suggestions, 1)
	assert.Equal(t, "first", suggestions[0].Strategy)
}

func TestEvaluateFallsThroughOnErrorAndNoOpinion(t *testing.T) {
	failing := &stubStrategy{name: "failing", err: errors.New("backend down")}
	silent := &stubStrategy{name: "silent"}
	deciding := &stubStrategy{name: "deciding", suggestion: Suggestion{Strategy: "deciding"}, ok: true}

	r := New(logging.NewMockLogger(), failing, silent, deciding)
	suggestions := r.Evaluate(context.Background(), []models.CounterpartyGroup{reviewGroup("A", "B")})

	require.Len(t, suggestions, 1)
	assert.Equal(t, "deciding", suggestions[0].Strategy)
}

func TestEvaluateNoOpinions(t *testing.T) {
	r := New(logging.NewMockLogger(), &stubStrategy{name: "silent"})
	suggestions := r.Evaluate(context.Background(), []models.CounterpartyGroup{reviewGroup("A", "B")})
	assert.Empty(t, suggestions)
}
