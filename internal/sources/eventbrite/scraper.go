// Package eventbrite scrapes the Eventbrite listings site: plain HTTP for
// link discovery on category pages, a headless browser for the JS-rendered
// detail pages. All selectors come from configuration, the markup changes
// too often to hard-code them.
package eventbrite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/tripagent/tripagent/internal/pkg/config"
)

// ErrSourceUnavailable covers fetch and render failures. They are logged and
// degraded to empty results, never raised to the pipeline.
var ErrSourceUnavailable = errors.New("listing source unavailable")

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Scraper struct {
	cfg config.EventbriteConfig
}

func NewScraper(cfg *config.EventbriteConfig) *Scraper {
	c := *cfg
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	return &Scraper{cfg: c}
}

// EventLinks fetches the listing page for state--city/category and extracts
// the event detail links from the card containers. Any fetch or parse error
// yields an empty sequence.
func (s *Scraper) EventLinks(ctx context.Context, state, city, category string) []string {
	if ctx.Err() != nil {
		return nil
	}

	pageURL := fmt.Sprintf("%s/%s--%s/%s", s.cfg.BaseURL, state, city, category)

	var links []string
	c := colly.NewCollector(
		colly.UserAgent(s.cfg.UserAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.cfg.Timeout)

	c.OnResponse(func(r *colly.Response) {
		found, err := ParseLinks(bytes.NewReader(r.Body), s.cfg.CardSelector, s.cfg.LinkSelector)
		if err != nil {
			slog.Warn("Eventbrite listing page did not parse", "url", pageURL, "error", err)
			return
		}
		links = found
	})

	c.OnError(func(r *colly.Response, err error) {
		slog.Warn("Eventbrite listing page fetch failed", "url", pageURL, "status", r.StatusCode,
			"error", fmt.Errorf("%w: %v", ErrSourceUnavailable, err))
	})

	if err := c.Visit(pageURL); err != nil {
		slog.Warn("Eventbrite visit failed", "url", pageURL, "error", err)
		return nil
	}
	c.Wait()

	slog.Info("Eventbrite links discovered", "url", pageURL, "count", len(links))
	return links
}

// ParseLinks extracts event links from listing-page HTML: every element
// matching cardSelector contributes the href of its nested linkSelector
// anchor, in document order.
func ParseLinks(r io.Reader, cardSelector, linkSelector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse listing HTML: %w", err)
	}

	var links []string
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		if href, ok := card.Find(linkSelector).First().Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})

	return links, nil
}
