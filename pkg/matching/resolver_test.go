package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhquyminhquy/LocalLens/pkg/logging"
	"github.com/minhquyminhquy/LocalLens/pkg/models"
)

func testCandidates() []models.Restaurant {
	return []models.Restaurant{
		{PlaceID: "1", Name: "Ravintola Aino", Address: "Pohjoisesplanadi 21"},
		{PlaceID: "2", Name: "Cafe Regatta", Address: "Merikannontie 8"},
		{PlaceID: "3", Name: "Putte's Bar & Pizza", Address: "Kalevankatu 6"},
	}
}

func TestResolver_Resolve(t *testing.T) {
	resolver := NewResolver(logging.NewNoop())
	ctx := context.Background()

	t.Run("id match wins even when name is wrong", func(t *testing.T) {
		judgment := &models.AIJudgment{
			IdentifiedRestaurant: "X",
			RestaurantID:         "2",
			ConfidenceScore:      77,
		}

		match := resolver.Resolve(ctx, testCandidates(), judgment)
		require.NotNil(t, match.Restaurant)
		assert.Equal(t, "2", match.Restaurant.PlaceID)
		assert.Equal(t, "Cafe Regatta", match.Restaurant.Name)
		assert.Equal(t, 77, match.Confidence)
		assert.Equal(t, models.MatchSourceMatched, match.Source)
		assert.True(t, match.HadJudgment)
	})

	t.Run("name containment is case-insensitive in both directions", func(t *testing.T) {
		judgment := &models.AIJudgment{
			IdentifiedRestaurant: "CAFE REGATTA (the red cottage)",
			ConfidenceScore:      64,
		}
		match := resolver.Resolve(ctx, testCandidates(), judgment)
		require.NotNil(t, match.Restaurant)
		assert.Equal(t, "2", match.Restaurant.PlaceID)
		assert.Equal(t, models.MatchSourceMatched, match.Source)

		judgment = &models.AIJudgment{
			IdentifiedRestaurant: "regatta",
			ConfidenceScore:      58,
		}
		match = resolver.Resolve(ctx, testCandidates(), judgment)
		require.NotNil(t, match.Restaurant)
		assert.Equal(t, "2", match.Restaurant.PlaceID)
	})

	t.Run("first match in provider order wins", func(t *testing.T) {
		candidates := []models.Restaurant{
			{PlaceID: "a", Name: "Pizza Palace"},
			{PlaceID: "b", Name: "Pizza Palace Downtown"},
		}
		judgment := &models.AIJudgment{
			IdentifiedRestaurant: "Pizza Palace",
			ConfidenceScore:      90,
		}

		match := resolver.Resolve(ctx, candidates, judgment)
		require.NotNil(t, match.Restaurant)
		assert.Equal(t, "a", match.Restaurant.PlaceID)
	})

	t.Run("no matching candidate falls back to first", func(t *testing.T) {
		judgment := &models.AIJudgment{
			IdentifiedRestaurant: "Some Other Place",
			RestaurantID:         "999",
			ConfidenceScore:      85,
			Reasoning:            "sign was clear",
			VisibleClues:         []string{"red sign"},
		}

		match := resolver.Resolve(ctx, testCandidates(), judgment)
		require.NotNil(t, match.Restaurant)
		assert.Equal(t, "1", match.Restaurant.PlaceID)
		assert.Equal(t, FallbackConfidence, match.Confidence)
		assert.Equal(t, models.MatchSourceFallback, match.Source)
		assert.True(t, match.HadJudgment)
		assert.Contains(t, match.Reasoning, "sign was clear")
		assert.Contains(t, match.Reasoning, "defaulted to the nearest candidate")
		assert.Equal(t, []string{"red sign"}, match.VisibleClues)
	})

	t.Run("nil judgment falls back to first", func(t *testing.T) {
		match := resolver.Resolve(ctx, testCandidates(), nil)
		require.NotNil(t, match.Restaurant)
		assert.Equal(t, "1", match.Restaurant.PlaceID)
		assert.Equal(t, FallbackConfidence, match.Confidence)
		assert.Equal(t, models.MatchSourceFallback, match.Source)
		assert.False(t, match.HadJudgment)
	})

	t.Run("empty judgment skips candidate scan", func(t *testing.T) {
		judgment := &models.AIJudgment{ConfidenceScore: 95}

		match := resolver.Resolve(ctx, testCandidates(), judgment)
		require.NotNil(t, match.Restaurant)
		assert.Equal(t, "1", match.Restaurant.PlaceID)
		assert.Equal(t, FallbackConfidence, match.Confidence)
		assert.True(t, match.HadJudgment)
	})
}

func TestAnnotateFallback(t *testing.T) {
	assert.Equal(t, "(defaulted to the nearest candidate)", AnnotateFallback(""))
	assert.Equal(t, "raw model text (defaulted to the nearest candidate)", AnnotateFallback("  raw model text \n"))
}
