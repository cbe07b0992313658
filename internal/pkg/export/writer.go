// Package export renders a SearchResultSet to the plain-text artifact the
// composer prompt is fed with. The rendering is deterministic: fixed section
// headers, fixed field order, byte-identical output for identical input.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/tripagent/tripagent/internal/pkg/models"
)

const separator = "--------------------------------------------------"

// Writer persists one result set per run, overwriting the previous artifact.
type Writer struct {
	path string
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the artifact location.
func (w *Writer) Path() string {
	return w.path
}

// Write renders the result set and overwrites the artifact file.
func (w *Writer) Write(rs models.SearchResultSet) error {
	if err := os.WriteFile(w.path, []byte(Render(rs)), 0o644); err != nil {
		return fmt.Errorf("write artifact %s: %w", w.path, err)
	}
	return nil
}

// Read returns the current artifact contents as a text blob.
func (w *Writer) Read() (string, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return "", fmt.Errorf("read artifact %s: %w", w.path, err)
	}
	return string(data), nil
}

// Render produces the human-readable text form of a result set.
func Render(rs models.SearchResultSet) string {
	var b strings.Builder

	b.WriteString("=== Ticketmaster Events ===\n\n")
	if len(rs.Ticketmaster) > 0 {
		for _, event := range rs.Ticketmaster {
			fmt.Fprintf(&b, "Event name: %s\n", event.Name)
			fmt.Fprintf(&b, "Date: %s\n", event.Date)
			fmt.Fprintf(&b, "Venue: %s\n", event.Venue)
			fmt.Fprintf(&b, "Description: %s\n", event.Description)
			fmt.Fprintf(&b, "Price: %s\n", event.Price)
			fmt.Fprintf(&b, "URL: %s\n", event.URL)
			b.WriteString(separator + "\n")
		}
	} else {
		b.WriteString("No events found for these search criteria.\n")
	}

	b.WriteString("\n=== Eventbrite Events ===\n\n")
	if len(rs.Eventbrite) > 0 {
		for _, listing := range rs.Eventbrite {
			fmt.Fprintf(&b, "State: %s\n", listing.State)
			fmt.Fprintf(&b, "City: %s\n", listing.City)
			fmt.Fprintf(&b, "Category: %s\n", listing.Category)
			fmt.Fprintf(&b, "URL: %s\n", listing.URL)
			for _, block := range listing.Details {
				fmt.Fprintf(&b, "Details: %s\n", block)
			}
			b.WriteString(separator + "\n")
		}
	} else {
		b.WriteString("No Eventbrite events found.\n")
	}

	return b.String()
}
