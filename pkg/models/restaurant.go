// Package models contains the domain types shared across the identification pipeline.
package models

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Restaurant is a nearby establishment returned by the place search.
// The core fields are set once by the locator; the enrichment fields start
// empty and are written exactly once by the details enricher.
type Restaurant struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Rating   float64  `json:"rating,omitempty"`
	Types    []string `json:"types"`
	Location Location `json:"location"`

	// Enrichment fields
	Phone         string   `json:"phone,omitempty"`
	Website       string   `json:"website,omitempty"`
	TotalRatings  int      `json:"total_ratings,omitempty"`
	OpeningHours  []string `json:"opening_hours,omitempty"`
	ReviewSummary string   `json:"review_summary,omitempty"`
}

// Review is a single user review as returned by the details provider.
type Review struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Time   int64  `json:"time"` // epoch seconds
}
