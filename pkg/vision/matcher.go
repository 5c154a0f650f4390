// Package vision asks the vision model which nearby establishment a photo
// depicts. It only produces the model's raw judgment text; interpreting that
// text is the matching package's job.
package vision

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/minhquyminhquy/LocalLens/pkg/genai"
	"github.com/minhquyminhquy/LocalLens/pkg/models"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
)

const promptTemplate = `Identify which restaurant from this list matches the image:

%s

Respond in JSON format:
{
    "identified_restaurant": "exact name from list",
    "restaurant_id": "place_id from the list",
    "confidence_score": 0-100,
    "reasoning": "brief explanation",
    "visible_clues": ["clue1", "clue2"]
}`

// Matcher submits a photo plus a candidate listing to the vision model.
type Matcher struct {
	client *genai.Client
	logger ectologger.Logger
	model  string
}

// NewMatcher creates a new Matcher using the given model name.
func NewMatcher(client *genai.Client, model string, logger ectologger.Logger) *Matcher {
	return &Matcher{
		client: client,
		logger: logger,
		model:  model,
	}
}

// CandidateListing renders candidates as a 1-indexed "index. name - address"
// listing, one per line, in provider order.
func CandidateListing(candidates []models.Restaurant) string {
	lines := make([]string, 0, len(candidates))
	for i, c := range candidates {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, c.Name, c.Address))
	}
	return strings.Join(lines, "\n")
}

// Judge sends the image and candidate listing to the model and returns the
// raw response text. The response is expected to embed a JSON judgment
// object, but no parsing happens here.
func (m *Matcher) Judge(ctx context.Context, image []byte, mimeType string, candidates []models.Restaurant) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "vision.Matcher.Judge")
	defer span.End()

	prompt := fmt.Sprintf(promptTemplate, CandidateListing(candidates))

	text, err := m.client.GenerateWithImage(ctx, m.model, prompt, image, mimeType)
	if err != nil {
		m.logger.WithContext(ctx).WithError(err).Error("Vision judgment failed")
		return "", httperror.NewHTTPErrorf(http.StatusBadGateway, "vision analysis failed: %s", err.Error())
	}

	m.logger.WithContext(ctx).WithFields(map[string]any{
		"model":      m.model,
		"candidates": len(candidates),
	}).Debug("Vision judgment complete")

	return text, nil
}
