package matching

import (
	"context"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/minhquyminhquy/LocalLens/pkg/metrics"
	"github.com/minhquyminhquy/LocalLens/pkg/models"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
)

// FallbackConfidence is the fixed confidence assigned when resolution
// defaults to the first nearby candidate.
const FallbackConfidence = 30

// fallbackAnnotation is appended to the reasoning whenever the fallback
// path fires, so the provenance survives into the response.
const fallbackAnnotation = "(defaulted to the nearest candidate)"

// Resolver applies the deterministic resolution policy: first candidate the
// judgment names wins; anything else falls back to candidates[0]. The policy
// is coarse on purpose and is the pipeline's central behavioral contract.
type Resolver struct {
	logger ectologger.Logger
}

// NewResolver creates a new Resolver
func NewResolver(logger ectologger.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve commits to exactly one candidate. candidates must be non-empty;
// the zero-candidate case is handled before resolution is attempted. A nil
// judgment means parsing failed upstream.
//
// A candidate matches when its name and the identified name contain each
// other case-insensitively in either direction, or its place id equals the
// claimed id exactly. The first match in provider order wins; later
// candidates are never consulted.
func (r *Resolver) Resolve(ctx context.Context, candidates []models.Restaurant, judgment *models.AIJudgment) models.ResolvedMatch {
	ctx, span := tracing.StartSpan(ctx, "matching.Resolver.Resolve")
	defer span.End()

	log := r.logger.WithContext(ctx)

	if !judgment.Empty() {
		for i := range candidates {
			if candidateMatches(&candidates[i], judgment) {
				log.WithFields(map[string]any{
					"place_id":   candidates[i].PlaceID,
					"name":       candidates[i].Name,
					"confidence": judgment.ConfidenceScore,
				}).Info("Judgment matched a nearby candidate")

				return models.ResolvedMatch{
					Restaurant:   &candidates[i],
					Confidence:   judgment.ConfidenceScore,
					Reasoning:    judgment.Reasoning,
					VisibleClues: judgment.VisibleClues,
					Source:       models.MatchSourceMatched,
					HadJudgment:  true,
				}
			}
		}
	}

	// Fallback: first candidate in provider order, fixed confidence.
	metrics.FallbackResolutionsTotal.Inc()

	resolved := models.ResolvedMatch{
		Restaurant:  &candidates[0],
		Confidence:  FallbackConfidence,
		Source:      models.MatchSourceFallback,
		HadJudgment: judgment != nil,
	}
	if judgment != nil {
		resolved.Reasoning = joinReasoning(judgment.Reasoning, fallbackAnnotation)
		resolved.VisibleClues = judgment.VisibleClues
	} else {
		resolved.Reasoning = fallbackAnnotation
	}

	log.WithFields(map[string]any{
		"place_id":     resolved.Restaurant.PlaceID,
		"had_judgment": resolved.HadJudgment,
		"candidates":   len(candidates),
	}).Info("Resolution fell back to first candidate")

	return resolved
}

func candidateMatches(candidate *models.Restaurant, judgment *models.AIJudgment) bool {
	if judgment.RestaurantID != "" && candidate.PlaceID == judgment.RestaurantID {
		return true
	}
	if judgment.IdentifiedRestaurant == "" {
		return false
	}
	return containsFold(candidate.Name, judgment.IdentifiedRestaurant) ||
		containsFold(judgment.IdentifiedRestaurant, candidate.Name)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func joinReasoning(reasoning, annotation string) string {
	if reasoning == "" {
		return annotation
	}
	return reasoning + " " + annotation
}

// AnnotateFallback attaches the fallback annotation to free-form reasoning
// text. Used when an unparsable model response stands in for the reasoning.
func AnnotateFallback(reasoning string) string {
	return joinReasoning(strings.TrimSpace(reasoning), fallbackAnnotation)
}
