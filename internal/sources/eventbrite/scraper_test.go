package eventbrite

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tripagent/tripagent/internal/pkg/config"
)

const listingHTML = `<html><body>
<div class="search-results">
  <div class="event-card-details">
    <h3>Jazz at the Park</h3>
    <a class="event-card-link" href="https://www.eventbrite.com/e/jazz-at-the-park-1"></a>
  </div>
  <div class="event-card-details">
    <a class="event-card-link" href="https://www.eventbrite.com/e/open-mic-2"></a>
  </div>
  <div class="event-card-details">
    <span>card without a link anchor</span>
  </div>
  <div class="unrelated-card">
    <a class="event-card-link" href="https://www.eventbrite.com/e/should-not-match"></a>
  </div>
</div>
</body></html>`

func TestParseLinks(t *testing.T) {
	links, err := ParseLinks(strings.NewReader(listingHTML), ".event-card-details", "a.event-card-link")
	if err != nil {
		t.Fatalf("ParseLinks: %v", err)
	}

	expected := []string{
		"https://www.eventbrite.com/e/jazz-at-the-park-1",
		"https://www.eventbrite.com/e/open-mic-2",
	}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("ParseLinks = %v, want %v", links, expected)
	}
}

func TestParseLinksNoCards(t *testing.T) {
	links, err := ParseLinks(strings.NewReader("<html><body><p>nothing here</p></body></html>"), ".event-card-details", "a.event-card-link")
	if err != nil {
		t.Fatalf("ParseLinks: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("ParseLinks = %v, want empty", links)
	}
}

func newTestScraper(baseURL string) *Scraper {
	return NewScraper(&config.EventbriteConfig{
		BaseURL:        baseURL,
		CardSelector:   ".event-card-details",
		LinkSelector:   "a.event-card-link",
		DetailSelector: ".event-details",
		SettleTimeout:  time.Millisecond,
		DetailWorkers:  2,
		Timeout:        5 * time.Second,
	})
}

func TestEventLinksBuildsListingURL(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		fmt.Fprint(w, listingHTML)
	}))
	defer srv.Close()

	links := newTestScraper(srv.URL).EventLinks(context.Background(), "france", "lyon", "music")

	if requested != "/france--lyon/music" {
		t.Errorf("requested path = %q, want /france--lyon/music", requested)
	}
	if len(links) != 2 {
		t.Errorf("got %d links, want 2", len(links))
	}
}

func TestEventLinksFetchFailureYieldsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	links := newTestScraper(srv.URL).EventLinks(context.Background(), "france", "lyon", "music")
	if len(links) != 0 {
		t.Errorf("got %d links from a failing source, want 0", len(links))
	}
}
