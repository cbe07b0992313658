// Package ticketmaster queries the Ticketmaster Discovery API with
// pagination. Failures degrade to partial results: the caller always gets
// whatever was accumulated before the first error.
package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tripagent/tripagent/internal/pkg/config"
	"github.com/tripagent/tripagent/internal/pkg/models"
)

type Client struct {
	baseURL    string
	apiKey     string
	maxPages   int
	pageSize   int
	httpClient *http.Client
}

func NewClient(cfg *config.TicketmasterConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxPages:   cfg.MaxPages,
		pageSize:   cfg.PageSize,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Search walks pages 0..maxPages-1 and maps raw events into EventRecords.
// Pagination stops at the first empty page or the first request-level
// failure; per-event parse failures drop that event only.
func (c *Client) Search(ctx context.Context, params models.TicketmasterParams) []models.EventRecord {
	var all []models.EventRecord

	for page := 0; page < c.maxPages; page++ {
		events, err := c.fetchPage(ctx, params, page)
		if err != nil {
			slog.Warn("Ticketmaster request failed, stopping pagination", "page", page, "error", err)
			break
		}
		if len(events) == 0 {
			break
		}

		for _, raw := range events {
			record, err := parseEvent(raw)
			if err != nil {
				slog.Warn("Dropping Ticketmaster event", "name", raw.Name, "error", err)
				continue
			}
			all = append(all, record)
		}
	}

	return all
}

func (c *Client) fetchPage(ctx context.Context, params models.TicketmasterParams, page int) ([]rawEvent, error) {
	query := url.Values{}
	setIfPresent(query, "city", params.City)
	setIfPresent(query, "countryCode", params.CountryCode)
	setIfPresent(query, "locale", params.Locale)
	setIfPresent(query, "classificationName", params.ClassificationName)
	setIfPresent(query, "sort", params.Sort)
	query.Set("apikey", c.apiKey)
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		preview := string(b)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, preview)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return out.Embedded.Events, nil
}

// parseEvent maps one raw API event into an EventRecord. Required fields
// missing means the event is rejected by the record constructor.
func parseEvent(raw rawEvent) (models.EventRecord, error) {
	venue := ""
	if len(raw.Embedded.Venues) > 0 {
		venue = raw.Embedded.Venues[0].Name
	}

	price := ""
	if len(raw.PriceRanges) > 0 {
		pr := raw.PriceRanges[0]
		price = models.FormatPriceRange(pr.Min, pr.Max, pr.Currency)
	}

	return models.NewEventRecord(raw.Name, raw.Dates.Start.LocalDate, venue, raw.Description, price, raw.URL)
}

func setIfPresent(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
