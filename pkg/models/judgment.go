package models

// AIJudgment is the structured interpretation extracted from the vision
// model's free-text response. Values are provider-supplied and untrusted:
// the confidence score is intended to be 0-100 but is not guaranteed, and
// the id may not correspond to any real candidate.
type AIJudgment struct {
	IdentifiedRestaurant string   `json:"identified_restaurant"`
	RestaurantID         string   `json:"restaurant_id"`
	ConfidenceScore      int      `json:"confidence_score"`
	Reasoning            string   `json:"reasoning"`
	VisibleClues         []string `json:"visible_clues"`
}

// Empty reports whether the judgment carries neither an identified name nor
// a claimed place id, in which case it cannot drive resolution.
func (j *AIJudgment) Empty() bool {
	return j == nil || (j.IdentifiedRestaurant == "" && j.RestaurantID == "")
}

// MatchSource records how a resolved match was produced.
type MatchSource string

const (
	// MatchSourceMatched means the judgment named a candidate from the set.
	MatchSourceMatched MatchSource = "matched"
	// MatchSourceFallback means resolution defaulted to the first candidate.
	MatchSourceFallback MatchSource = "fallback"
	// MatchSourceNoCandidates means the locator returned nothing nearby.
	MatchSourceNoCandidates MatchSource = "no_candidates"
)

// ResolvedMatch is the single candidate the pipeline commits to, with
// confidence and provenance. Except on the no-candidates path, Restaurant
// is always an element of the candidate set passed to the resolver.
type ResolvedMatch struct {
	Restaurant   *Restaurant
	Confidence   int
	Reasoning    string
	VisibleClues []string
	Source       MatchSource

	// HadJudgment is true when a parseable judgment existed, even if it
	// matched nothing. It distinguishes "No match found" from "Fallback mode"
	// in the response status.
	HadJudgment bool
}
