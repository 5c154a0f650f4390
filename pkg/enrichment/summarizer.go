package enrichment

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/minhquyminhquy/LocalLens/pkg/genai"
	"github.com/minhquyminhquy/LocalLens/pkg/models"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
)

const summaryPromptTemplate = `Summarize these reviews in 2-3 sentences:

%s`

// Summarizer condenses a review set into a short natural-language summary
// using the text model.
type Summarizer struct {
	client *genai.Client
	logger ectologger.Logger
	model  string
}

// NewSummarizer creates a new Summarizer using the given model name.
func NewSummarizer(client *genai.Client, model string, logger ectologger.Logger) *Summarizer {
	return &Summarizer{
		client: client,
		logger: logger,
		model:  model,
	}
}

// Summarize returns a 2-3 sentence summary of the reviews. An empty review
// set yields an empty summary without calling the model.
func (s *Summarizer) Summarize(ctx context.Context, reviews []models.Review) (string, error) {
	if len(reviews) == 0 {
		return "", nil
	}

	ctx, span := tracing.StartSpan(ctx, "enrichment.Summarizer.Summarize")
	defer span.End()

	blocks := make([]string, 0, len(reviews))
	for _, review := range reviews {
		blocks = append(blocks, fmt.Sprintf("Rating: %d/5\n%s", review.Rating, review.Text))
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, strings.Join(blocks, "\n\n"))

	text, err := s.client.GenerateText(ctx, s.model, prompt)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	summary := strings.TrimSpace(text)

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"reviews":        len(reviews),
		"summary_length": len(summary),
	}).Debug("Review summary generated")

	return summary, nil
}
