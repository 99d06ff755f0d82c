package reviewer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"finwatch/upi-audit/internal/logging"
	"finwatch/upi-audit/internal/models"
)

// GeminiStrategy asks a Gemini model whether the labels in a group
// plausibly denote the same party. Optional: it only runs when review
// assist is enabled and an API key is configured, and any failure degrades
// to "no opinion" so the run never blocks on the API.
type GeminiStrategy struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	logger  logging.Logger
}

// NewGeminiStrategy creates the strategy with the given model name and
// per-request timeout.
func NewGeminiStrategy(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger logging.Logger) (*GeminiStrategy, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not set")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiStrategy{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (s *GeminiStrategy) Name() string {
	return "Gemini"
}

// Close releases the underlying API client.
func (s *GeminiStrategy) Close() error {
	return s.client.Close()
}

func (s *GeminiStrategy) Review(ctx context.Context, group models.CounterpartyGroup) (Suggestion, bool, error) {
	if group.Confidence != string(models.ConfidenceReview) || len(group.Labels) < 2 {
		return Suggestion{}, false, nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"The following party names were observed on bank transactions sharing the key %q. "+
			"Bank exports truncate and reformat names. Answer YES if all names plausibly "+
			"refer to the same real-world party, otherwise NO, then a one-sentence reason.\nNames: %s",
		group.RawKey, strings.Join(group.Labels, "; "))

	resp, err := s.model.GenerateContent(reqCtx, genai.Text(prompt))
	if err != nil {
		// API failures are never fatal for the run; the group simply
		// stays on the manual-review pile.
		s.logger.WithError(err).Warn("gemini review failed",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldRawKey, Value: group.RawKey})
		return Suggestion{}, false, nil
	}

	answer := responseText(resp)
	if answer == "" {
		return Suggestion{}, false, nil
	}

	return Suggestion{
		RawKey:    group.RawKey,
		SameParty: strings.HasPrefix(strings.ToUpper(strings.TrimSpace(answer)), "YES"),
		Rationale: strings.TrimSpace(answer),
		Strategy:  s.Name(),
	}, true, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
