package models

import (
	"errors"
	"fmt"
	"strconv"
)

// Placeholders used when the API omits optional fields.
const (
	NoDescription = "No description available"
	NoPrice       = "Price information unavailable"
	NoURL         = "Link unavailable"
)

// ErrMissingField signals that a raw event lacked a required field and must
// be dropped rather than stored half-built.
var ErrMissingField = errors.New("missing required event field")

// EventRecord is a structured event parsed from the ticket API. Immutable
// once built.
type EventRecord struct {
	Name        string `json:"name"`
	Date        string `json:"date"` // ISO local date, as reported by the API
	Venue       string `json:"venue"`
	Description string `json:"description"`
	Price       string `json:"price"`
	URL         string `json:"url"`
}

// NewEventRecord builds an EventRecord, enforcing that name, date and venue
// are present. Description, price and url fall back to fixed placeholders.
func NewEventRecord(name, date, venue, description, price, url string) (EventRecord, error) {
	if name == "" {
		return EventRecord{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	if date == "" {
		return EventRecord{}, fmt.Errorf("%w: date", ErrMissingField)
	}
	if venue == "" {
		return EventRecord{}, fmt.Errorf("%w: venue", ErrMissingField)
	}

	if description == "" {
		description = NoDescription
	}
	if price == "" {
		price = NoPrice
	}
	if url == "" {
		url = NoURL
	}

	return EventRecord{
		Name:        name,
		Date:        date,
		Venue:       venue,
		Description: description,
		Price:       price,
		URL:         url,
	}, nil
}

// FormatPriceRange renders a price range the way the recommendation text
// expects it. Currency defaults to EUR when the API leaves it out.
func FormatPriceRange(min, max float64, currency string) string {
	if currency == "" {
		currency = "EUR"
	}
	return fmt.Sprintf("from %s to %s %s", formatAmount(min), formatAmount(max), currency)
}

// formatAmount drops the decimal part for whole amounts so "10" stays "10"
// rather than becoming "10.00".
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
