package models

// SearchParameters is the per-source filter mapping derived from free text by
// the planner. Both sub-mappings are always present; a zero sub-mapping means
// "no filters" for Ticketmaster and "skip this source" for Eventbrite.
//
// The JSON tags match the schema the planner prompt asks the model for, so a
// well-behaved reply decodes directly.
type SearchParameters struct {
	Ticketmaster TicketmasterParams `json:"Ticketmaster"`
	Eventbrite   EventbriteParams   `json:"EventbriteScraper"`
}

// TicketmasterParams are the Discovery API filters. An empty field means
// "omit this filter".
type TicketmasterParams struct {
	City               string `json:"city,omitempty"`
	CountryCode        string `json:"countryCode,omitempty"`
	Locale             string `json:"locale,omitempty"`
	ClassificationName string `json:"classificationName,omitempty"`
	Sort               string `json:"sort,omitempty"`
}

// EventbriteParams locate a listing page. The scraper runs only when all
// three are present.
type EventbriteParams struct {
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
	Category string `json:"category,omitempty"`
}

// Complete reports whether the scraper has everything it needs.
func (p EventbriteParams) Complete() bool {
	return p.State != "" && p.City != "" && p.Category != ""
}
