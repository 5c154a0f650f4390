// Package places implements the Google Places Web Service client used for
// nearby candidate search and place details lookups.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/minhquyminhquy/LocalLens/pkg/httpclient"
	"github.com/minhquyminhquy/LocalLens/pkg/metrics"
	"github.com/minhquyminhquy/LocalLens/pkg/models"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
)

// detailsFields is the fixed field set requested from the details endpoint.
const detailsFields = "name,rating,formatted_address,formatted_phone_number,website,opening_hours,price_level,reviews,user_ratings_total"

const statusOK = "OK"
const statusZeroResults = "ZERO_RESULTS"

// Config holds Places client configuration
type Config struct {
	BaseURL      string
	APIKey       string
	RadiusMeters int
	Category     string
	Timeout      time.Duration
}

// Client calls the Places Web Service. It is constructed once at startup and
// shared read-only across requests.
type Client struct {
	http   *httpclient.Client
	logger ectologger.Logger
	cfg    Config
}

// NewClient creates a new Places client
func NewClient(cfg Config, logger ectologger.Logger) *Client {
	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}

	return &Client{
		http:   httpclient.NewClient(httpCfg, logger),
		logger: logger,
		cfg:    cfg,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// NearbySearch returns establishments of the configured category around the
// given coordinate, in provider order. That order is meaningful downstream:
// the resolver's fallback picks the first element. An empty list is a valid
// outcome; any provider failure is fatal to the request.
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64) ([]models.Restaurant, error) {
	ctx, span := tracing.StartSpan(ctx, "places.Client.NearbySearch")
	defer span.End()

	log := c.logger.WithContext(ctx).WithFields(map[string]any{
		"lat":    lat,
		"lng":    lng,
		"radius": c.cfg.RadiusMeters,
	})

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("radius", fmt.Sprintf("%d", c.cfg.RadiusMeters))
	params.Set("type", c.cfg.Category)
	params.Set("key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Get(ctx, c.cfg.BaseURL+"/nearbysearch/json?"+params.Encode())
	metrics.ProviderRequestDuration.WithLabelValues("places", "nearby_search").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("places", "nearby_search", "error").Inc()
		log.WithError(err).Error("Nearby search request failed")
		return nil, httperror.NewHTTPErrorf(http.StatusBadGateway, "nearby search failed: %s", err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("places", "nearby_search", "error").Inc()
		log.WithField("status_code", resp.StatusCode).Error("Nearby search returned non-OK status")
		return nil, httperror.NewHTTPErrorf(http.StatusBadGateway, "nearby search failed with status %d", resp.StatusCode)
	}

	var body nearbySearchResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("places", "nearby_search", "error").Inc()
		return nil, httperror.NewHTTPErrorf(http.StatusBadGateway, "nearby search returned invalid response: %s", err.Error())
	}

	if body.Status != statusOK && body.Status != statusZeroResults {
		metrics.ProviderRequestsTotal.WithLabelValues("places", "nearby_search", "error").Inc()
		log.WithField("provider_status", body.Status).Error("Nearby search rejected by provider")
		return nil, httperror.NewHTTPErrorf(http.StatusBadGateway, "nearby search failed: %s", body.Status)
	}

	metrics.ProviderRequestsTotal.WithLabelValues("places", "nearby_search", "ok").Inc()

	restaurants := make([]models.Restaurant, 0, len(body.Results))
	for _, result := range body.Results {
		restaurants = append(restaurants, models.Restaurant{
			PlaceID: result.PlaceID,
			Name:    result.Name,
			Address: result.Vicinity,
			Rating:  result.Rating,
			Types:   result.Types,
			Location: models.Location{
				Lat: result.Geometry.Location.Lat,
				Lng: result.Geometry.Location.Lng,
			},
		})
	}

	log.WithField("count", len(restaurants)).Debug("Nearby search complete")

	return restaurants, nil
}

// Details is the result of a place details lookup.
type Details struct {
	Phone        string
	Website      string
	TotalRatings int
	OpeningHours []string
	Reviews      []models.Review
}

// PlaceDetails fetches contact info, opening hours and reviews for a place.
// Callers treat failures as non-fatal; this method just reports them.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*Details, error) {
	ctx, span := tracing.StartSpan(ctx, "places.Client.PlaceDetails")
	defer span.End()

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)
	params.Set("key", c.cfg.APIKey)

	start := time.Now()
	resp, err := c.http.Get(ctx, c.cfg.BaseURL+"/details/json?"+params.Encode())
	metrics.ProviderRequestDuration.WithLabelValues("places", "details").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("places", "details", "error").Inc()
		return nil, fmt.Errorf("place details request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("places", "details", "error").Inc()
		return nil, fmt.Errorf("place details failed with status %d", resp.StatusCode)
	}

	var body detailsResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("places", "details", "error").Inc()
		return nil, fmt.Errorf("place details returned invalid response: %w", err)
	}

	if body.Status != statusOK {
		metrics.ProviderRequestsTotal.WithLabelValues("places", "details", "error").Inc()
		return nil, fmt.Errorf("place details failed: %s", body.Status)
	}

	metrics.ProviderRequestsTotal.WithLabelValues("places", "details", "ok").Inc()

	details := &Details{
		Phone:        body.Result.FormattedPhoneNumber,
		Website:      body.Result.Website,
		TotalRatings: body.Result.UserRatingsTotal,
		Reviews:      make([]models.Review, 0, len(body.Result.Reviews)),
	}
	if body.Result.OpeningHours != nil {
		details.OpeningHours = body.Result.OpeningHours.WeekdayText
	}
	for _, review := range body.Result.Reviews {
		details.Reviews = append(details.Reviews, models.Review{
			Author: review.AuthorName,
			Rating: review.Rating,
			Text:   review.Text,
			Time:   review.Time,
		})
	}

	return details, nil
}
