package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tripagent/tripagent/internal/pkg/models"
)

func sampleResultSet() models.SearchResultSet {
	return models.SearchResultSet{
		Ticketmaster: []models.EventRecord{
			{
				Name:        "Indie Night",
				Date:        "2026-03-14",
				Venue:       "Le Transbordeur",
				Description: "An evening of indie rock",
				Price:       "from 20 to 45 EUR",
				URL:         "https://tickets.example/indie-night",
			},
		},
		Eventbrite: []models.ListingReference{
			{
				State:    "france",
				City:     "lyon",
				Category: "music",
				URL:      "https://www.eventbrite.com/e/some-show",
			},
		},
	}
}

func TestRenderDeterministic(t *testing.T) {
	rs := sampleResultSet()

	first := Render(rs)
	for i := 0; i < 5; i++ {
		if got := Render(rs); got != first {
			t.Fatalf("Render is not deterministic, run %d differs", i)
		}
	}
}

func TestRenderFieldOrder(t *testing.T) {
	out := Render(sampleResultSet())

	fields := []string{
		"=== Ticketmaster Events ===",
		"Event name: Indie Night",
		"Date: 2026-03-14",
		"Venue: Le Transbordeur",
		"Description: An evening of indie rock",
		"Price: from 20 to 45 EUR",
		"URL: https://tickets.example/indie-night",
		"=== Eventbrite Events ===",
		"State: france",
		"City: lyon",
		"Category: music",
		"URL: https://www.eventbrite.com/e/some-show",
	}

	pos := -1
	for _, field := range fields {
		idx := strings.Index(out, field)
		if idx < 0 {
			t.Fatalf("output is missing %q", field)
		}
		if idx < pos {
			t.Errorf("field %q appears out of order", field)
		}
		pos = idx
	}
}

func TestRenderEmptySections(t *testing.T) {
	out := Render(models.SearchResultSet{})

	if !strings.Contains(out, "No events found for these search criteria.") {
		t.Error("empty ticketmaster section is missing its placeholder line")
	}
	if !strings.Contains(out, "No Eventbrite events found.") {
		t.Error("empty eventbrite section is missing its placeholder line")
	}
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.txt")
	w := NewWriter(path)

	if err := w.Write(sampleResultSet()); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := w.Write(models.SearchResultSet{}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	content, err := w.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(content, "Indie Night") {
		t.Error("second write should have replaced the previous artifact, not appended")
	}
	if content != Render(models.SearchResultSet{}) {
		t.Error("artifact content does not round-trip the rendered text")
	}
}
