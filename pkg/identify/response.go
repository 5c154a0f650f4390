package identify

import "github.com/minhquyminhquy/LocalLens/pkg/models"

// Result statuses. Exactly one appears in every response.
const (
	StatusSuccess      = "Success"
	StatusNoMatch      = "No match found"
	StatusFallback     = "Fallback mode"
	StatusNoCandidates = "No restaurants found"
)

// Result is the outward identification response.
type Result struct {
	IdentifiedRestaurant *models.Restaurant `json:"identified_restaurant"`
	Confidence           int                `json:"confidence"`
	Reasoning            string             `json:"reasoning"`
	VisibleClues         []string           `json:"visible_clues"`
	Reviews              []models.Review    `json:"reviews"`
	TotalReviews         int                `json:"total_reviews"`
	NearbyCount          int                `json:"nearby_count"`
	Message              string             `json:"message"`
}

// statusFor maps a resolution to its response status. A fallback that had a
// parseable judgment behind it reads differently from one caused by an
// unparsable response.
func statusFor(match *models.ResolvedMatch) string {
	switch match.Source {
	case models.MatchSourceMatched:
		return StatusSuccess
	case models.MatchSourceNoCandidates:
		return StatusNoCandidates
	default:
		if match.HadJudgment {
			return StatusNoMatch
		}
		return StatusFallback
	}
}

// noCandidatesConfidence is the fixed confidence reported when nothing was
// found nearby and a placeholder is returned instead.
const noCandidatesConfidence = 10

// placeholderResult is the fixed "always return something" response for the
// zero-candidates case.
func placeholderResult() *Result {
	return &Result{
		IdentifiedRestaurant: &models.Restaurant{
			Name:    "Unknown Restaurant",
			Address: "No establishments within search radius",
			Types:   []string{"restaurant"},
			OpeningHours: []string{
				"Monday: Closed",
				"Tuesday: Closed",
				"Wednesday: Closed",
				"Thursday: Closed",
				"Friday: Closed",
				"Saturday: Closed",
				"Sunday: Closed",
			},
		},
		Confidence:   noCandidatesConfidence,
		Reasoning:    "No restaurants were found within the search radius of the provided location.",
		VisibleClues: []string{},
		Reviews:      []models.Review{},
		TotalReviews: 0,
		NearbyCount:  0,
		Message:      StatusNoCandidates,
	}
}
