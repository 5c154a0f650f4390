// Package identify runs the identification pipeline: locate nearby
// candidates, judge the photo against them, resolve to exactly one match,
// then enrich and summarize.
package identify

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/minhquyminhquy/LocalLens/pkg/enrichment"
	"github.com/minhquyminhquy/LocalLens/pkg/events"
	"github.com/minhquyminhquy/LocalLens/pkg/matching"
	"github.com/minhquyminhquy/LocalLens/pkg/metrics"
	"github.com/minhquyminhquy/LocalLens/pkg/models"
	"github.com/minhquyminhquy/LocalLens/pkg/places"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
	"github.com/minhquyminhquy/LocalLens/pkg/vision"
)

// Service orchestrates the identification pipeline. It holds no mutable
// state; concurrent requests share the provider clients read-only.
type Service struct {
	places   *places.Client
	matcher  *vision.Matcher
	resolver *matching.Resolver
	enricher *enrichment.Enricher
	emitter  *events.Emitter
	logger   ectologger.Logger
}

// NewService creates a new identification service
func NewService(
	placesClient *places.Client,
	matcher *vision.Matcher,
	resolver *matching.Resolver,
	enricher *enrichment.Enricher,
	emitter *events.Emitter,
	logger ectologger.Logger,
) *Service {
	return &Service{
		places:   placesClient,
		matcher:  matcher,
		resolver: resolver,
		enricher: enricher,
		emitter:  emitter,
		logger:   logger,
	}
}

// Identify runs the full pipeline for one photo at one location. Candidate
// search and vision failures are fatal; everything downstream of resolution
// degrades instead of failing.
func (s *Service) Identify(ctx context.Context, lat, lng float64, image []byte, mimeType string) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "identify.Service.Identify")
	defer span.End()

	start := time.Now()
	log := s.logger.WithContext(ctx).WithFields(map[string]any{
		"lat": lat,
		"lng": lng,
	})

	candidates, err := s.places.NearbySearch(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		log.Info("No restaurants found nearby, returning placeholder")
		s.finish(ctx, start, &models.ResolvedMatch{Source: models.MatchSourceNoCandidates, Confidence: noCandidatesConfidence}, StatusNoCandidates, 0, lat, lng)
		return placeholderResult(), nil
	}

	raw, err := s.matcher.Judge(ctx, image, mimeType, candidates)
	if err != nil {
		return nil, err
	}

	judgment, parseErr := matching.ParseJudgment(raw)
	if parseErr != nil {
		log.WithError(parseErr).Warn("Vision response unparsable, resolving via fallback")
		judgment = nil
	}

	match := s.resolver.Resolve(ctx, candidates, judgment)
	if judgment == nil {
		// The raw model text still carries whatever explanation the model
		// gave, so it stands in for the reasoning.
		match.Reasoning = matching.AnnotateFallback(raw)
	}

	var reviews []models.Review
	if match.Restaurant != nil {
		reviews = s.enricher.Enrich(ctx, match.Restaurant)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	status := statusFor(&match)
	s.finish(ctx, start, &match, status, len(candidates), lat, lng)

	log.WithFields(map[string]any{
		"status":       status,
		"confidence":   match.Confidence,
		"match_source": string(match.Source),
		"nearby_count": len(candidates),
	}).Info("Identification complete")

	clues := match.VisibleClues
	if clues == nil {
		clues = []string{}
	}

	return &Result{
		IdentifiedRestaurant: match.Restaurant,
		Confidence:           match.Confidence,
		Reasoning:            match.Reasoning,
		VisibleClues:         clues,
		Reviews:              reviews,
		TotalReviews:         len(reviews),
		NearbyCount:          len(candidates),
		Message:              status,
	}, nil
}

func (s *Service) finish(ctx context.Context, start time.Time, match *models.ResolvedMatch, status string, nearbyCount int, lat, lng float64) {
	metrics.IdentificationsTotal.WithLabelValues(status).Inc()
	metrics.IdentificationDuration.Observe(time.Since(start).Seconds())
	s.emitter.EmitIdentified(ctx, match, status, nearbyCount, lat, lng)
}
