// Package events handles event emission for completed identifications.
package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	appcontext "github.com/minhquyminhquy/LocalLens/pkg/context"
	"github.com/minhquyminhquy/LocalLens/pkg/kafka"
	"github.com/minhquyminhquy/LocalLens/pkg/models"
	"github.com/minhquyminhquy/LocalLens/pkg/tracing"
)

// Emitter publishes identification outcomes. Emission is best-effort: a
// broker failure is logged and swallowed, never surfaced to the caller.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter. A nil producer disables emission.
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// Enabled reports whether a producer is wired.
func (e *Emitter) Enabled() bool {
	return e != nil && e.producer != nil
}

// EmitIdentified publishes the outcome of an identification request.
func (e *Emitter) EmitIdentified(ctx context.Context, match *models.ResolvedMatch, status string, nearbyCount int, lat, lng float64) {
	if !e.Enabled() {
		return
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitIdentified")
	defer span.End()

	event := &kafka.IdentificationEvent{
		EventType:   "restaurant.identified",
		RequestID:   appcontext.GetRequestID(ctx),
		MatchSource: string(match.Source),
		Confidence:  match.Confidence,
		Status:      status,
		NearbyCount: nearbyCount,
		Lat:         lat,
		Lng:         lng,
	}
	if match.Restaurant != nil {
		event.PlaceID = match.Restaurant.PlaceID
		event.Name = match.Restaurant.Name
	}

	if err := e.producer.PublishIdentificationEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).Warn("Failed to emit restaurant.identified event")
	}
}
