package ticketmaster

// Raw Discovery API response shapes. Only the paths the pipeline reads are
// mapped.

type searchResponse struct {
	Embedded struct {
		Events []rawEvent `json:"events"`
	} `json:"_embedded"`
}

type rawEvent struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Dates       struct {
		Start struct {
			LocalDate string `json:"localDate"`
		} `json:"start"`
	} `json:"dates"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
		} `json:"venues"`
	} `json:"_embedded"`
	PriceRanges []priceRange `json:"priceRanges"`
}

type priceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
}
