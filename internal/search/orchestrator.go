// Package search fans a planned query out to both event sources and merges
// the results into one SearchResultSet.
package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tripagent/tripagent/internal/pkg/export"
	"github.com/tripagent/tripagent/internal/pkg/models"
)

// TicketSource is the structured-events source. It never hard-fails: on
// error it returns whatever it accumulated.
type TicketSource interface {
	Search(ctx context.Context, params models.TicketmasterParams) []models.EventRecord
}

// ListingSource is the scraped source. Link discovery and detail fetching
// are distinct operations with distinct result shapes.
type ListingSource interface {
	EventLinks(ctx context.Context, state, city, category string) []string
	FetchDetails(ctx context.Context, links []string) map[string][]string
}

type Orchestrator struct {
	tickets      TicketSource
	listings     ListingSource
	writer       *export.Writer
	fetchDetails bool
}

func NewOrchestrator(tickets TicketSource, listings ListingSource, writer *export.Writer, fetchDetails bool) *Orchestrator {
	return &Orchestrator{
		tickets:      tickets,
		listings:     listings,
		writer:       writer,
		fetchDetails: fetchDetails,
	}
}

// Run queries both sources concurrently and persists the merged result set.
// The ticket API is always invoked, with defaults only when no filters were
// planned; the listing scraper runs only when state, city and category are
// all present. No cross-source deduplication is attempted: the two sources
// produce incomparable shapes.
func (o *Orchestrator) Run(ctx context.Context, params models.SearchParameters) (models.SearchResultSet, error) {
	var rs models.SearchResultSet

	// Each goroutine fills its own field of the result set; merging happens
	// at this join, not in a shared accumulator.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rs.Ticketmaster = o.tickets.Search(ctx, params.Ticketmaster)
	}()
	go func() {
		defer wg.Done()
		rs.Eventbrite = o.searchListings(ctx, params.Eventbrite)
	}()
	wg.Wait()

	slog.Info("Search completed",
		"ticketmaster_events", len(rs.Ticketmaster),
		"eventbrite_listings", len(rs.Eventbrite))

	if o.writer != nil {
		if err := o.writer.Write(rs); err != nil {
			return rs, err
		}
	}

	return rs, nil
}

func (o *Orchestrator) searchListings(ctx context.Context, params models.EventbriteParams) []models.ListingReference {
	if !params.Complete() {
		return nil
	}

	links := o.listings.EventLinks(ctx, params.State, params.City, params.Category)
	if len(links) == 0 {
		return nil
	}

	var details map[string][]string
	if o.fetchDetails {
		details = o.listings.FetchDetails(ctx, links)
	}

	refs := make([]models.ListingReference, 0, len(links))
	for _, link := range links {
		refs = append(refs, models.ListingReference{
			State:    params.State,
			City:     params.City,
			Category: params.Category,
			URL:      link,
			Details:  details[link],
		})
	}

	return refs
}
