// Package enrichment decorates a resolved match with place details and a
// synthesized review summary. Every failure in this package is absorbed:
// enrichment never breaks an identification that already succeeded.
package enrichment

import (
	"context"
	"sort"

	"github.com/Gobusters/ectologger"

	"github.com/minhquyminhquy/LocalLens/pkg/models"
	"github.com/minhquyminhquy/LocalLens/pkg/places"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
)

// detailsProvider is the slice of the places client enrichment needs.
type detailsProvider interface {
	PlaceDetails(ctx context.Context, placeID string) (*places.Details, error)
}

// Enricher fetches place details for a matched restaurant and selects the
// reviews used for summarization.
type Enricher struct {
	provider   detailsProvider
	summarizer *Summarizer
	logger     ectologger.Logger
	maxReviews int
}

// NewEnricher creates a new Enricher. maxReviews caps how many of the most
// recent reviews are kept and summarized.
func NewEnricher(provider detailsProvider, summarizer *Summarizer, maxReviews int, logger ectologger.Logger) *Enricher {
	return &Enricher{
		provider:   provider,
		summarizer: summarizer,
		logger:     logger,
		maxReviews: maxReviews,
	}
}

// Enrich mutates restaurant in place with contact details, opening hours and
// a review summary, and returns the reviews that fed the summary (most recent
// first). On any provider or summarization failure the restaurant is returned
// as-is with whatever was populated so far and a nil review list.
func (e *Enricher) Enrich(ctx context.Context, restaurant *models.Restaurant) []models.Review {
	ctx, span := tracing.StartSpan(ctx, "enrichment.Enricher.Enrich")
	defer span.End()

	log := e.logger.WithContext(ctx).WithField("place_id", restaurant.PlaceID)

	if restaurant.PlaceID == "" {
		return nil
	}

	details, err := e.provider.PlaceDetails(ctx, restaurant.PlaceID)
	if err != nil {
		log.WithError(err).Warn("Could not fetch place details, returning match unenriched")
		return nil
	}

	restaurant.Phone = details.Phone
	restaurant.Website = details.Website
	restaurant.TotalRatings = details.TotalRatings
	restaurant.OpeningHours = details.OpeningHours

	reviews := selectRecent(details.Reviews, e.maxReviews)

	summary, err := e.summarizer.Summarize(ctx, reviews)
	if err != nil {
		log.WithError(err).Warn("Review summarization failed, continuing without summary")
	} else {
		restaurant.ReviewSummary = summary
	}

	log.WithField("reviews", len(reviews)).Debug("Enrichment complete")

	return reviews
}

// selectRecent sorts reviews by timestamp descending and keeps at most max.
func selectRecent(reviews []models.Review, max int) []models.Review {
	sorted := make([]models.Review, len(reviews))
	copy(sorted, reviews)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time > sorted[j].Time
	})

	if len(sorted) > max {
		sorted = sorted[:max]
	}
	return sorted
}
