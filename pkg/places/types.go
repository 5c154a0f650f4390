package places

// Wire types for the Google Places Web Service responses. Only the fields the
// pipeline consumes are mapped.

type nearbySearchResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	Name             string    `json:"name"`
	Vicinity         string    `json:"vicinity,omitempty"`
	Rating           float64   `json:"rating,omitempty"`
	PlaceID          string    `json:"place_id"`
	Types            []string  `json:"types"`
	Geometry         geometry  `json:"geometry"`
	UserRatingsTotal int       `json:"user_ratings_total,omitempty"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type detailsResponse struct {
	Result       placeDetails `json:"result"`
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
}

type placeDetails struct {
	Name                 string        `json:"name"`
	Rating               float64       `json:"rating,omitempty"`
	FormattedAddress     string        `json:"formatted_address,omitempty"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Website              string        `json:"website,omitempty"`
	OpeningHours         *openingHours `json:"opening_hours,omitempty"`
	PriceLevel           int           `json:"price_level,omitempty"`
	Reviews              []placeReview `json:"reviews,omitempty"`
	UserRatingsTotal     int           `json:"user_ratings_total,omitempty"`
}

type openingHours struct {
	WeekdayText []string `json:"weekday_text,omitempty"`
}

type placeReview struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Time       int64  `json:"time"`
}
