// Package notify publishes request lifecycle events so downstream
// consumers (admin channels, fulfillment workers) can react to new,
// duplicate, fulfilled and rejected requests.
package notify

import (
	"context"
	"time"

	"contentbot/types"
)

// EventType identifies a request lifecycle event.
type EventType string

const (
	EventRequestCreated   EventType = "request.created"
	EventRequestDuplicate EventType = "request.duplicate"
	EventRequestFulfilled EventType = "request.fulfilled"
	EventRequestRejected  EventType = "request.rejected"
	EventReleaseMatched   EventType = "release.matched"
)

// Event is the payload published for every lifecycle transition.
type Event struct {
	Type    EventType               `json:"type"`
	Request *types.Request          `json:"request,omitempty"`
	Matches []types.SimilarityMatch `json:"matches,omitempty"`
	// Release fields are set on release.matched events.
	ReleaseTitle string    `json:"release_title,omitempty"`
	ReleaseURL   string    `json:"release_url,omitempty"`
	At           time.Time `json:"at"`
}

// Publisher delivers lifecycle events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
