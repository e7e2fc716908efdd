// Package releasewatch polls release announcement feeds and matches new
// releases against the open request backlog, so requests can be flagged
// for fulfillment as soon as matching content appears.
package releasewatch

import "time"

// Release is one entry pulled from a release feed.
type Release struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	FetchedAt   time.Time `json:"fetched_at"`
	Summary     string    `json:"summary,omitempty"`

	// Full page content, populated by the extractor on demand.
	Content         string `json:"content,omitempty"`
	ContentText     string `json:"content_text,omitempty"`
	ExtractionError string `json:"extraction_error,omitempty"`
}
