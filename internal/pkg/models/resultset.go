package models

// ListingReference is a discovered event link plus the filter context that
// found it. Unlike EventRecord it carries no structured event data: the
// scraped source does not reliably provide any.
type ListingReference struct {
	State    string `json:"state"`
	City     string `json:"city"`
	Category string `json:"category"`
	URL      string `json:"url"`

	// Details holds opaque rendered-page text blocks when detail fetching
	// is enabled. Never parsed into fields.
	Details []string `json:"details,omitempty"`
}

// SearchResultSet is the per-query union of both sources' results. It lives
// for one query and is not retained.
type SearchResultSet struct {
	Ticketmaster []EventRecord      `json:"ticketmaster"`
	Eventbrite   []ListingReference `json:"eventbrite"`
}
