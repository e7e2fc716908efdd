// Package ingest turns raw chat messages into content requests. Messages
// flow through an intent gate, scoring, title extraction and duplicate
// detection before anything is persisted; everything below the creation
// threshold is dropped silently.
package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"contentbot/analyzer"
	"contentbot/config"
	"contentbot/deduplication"
	"contentbot/notify"
	"contentbot/types"
)

// CreationThreshold is the minimum intent score for a message to become
// a request. Messages below it are ignored without a reply.
const CreationThreshold = config.CreationThreshold

// ChatMessage is one inbound group-chat message.
type ChatMessage struct {
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Outcome reports what the pipeline did with a message.
type Outcome string

const (
	OutcomeIgnored   Outcome = "ignored"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeCreated   Outcome = "created"
)

// Result carries the pipeline verdict for one message.
type Result struct {
	Outcome  Outcome
	Analysis *types.IntentAnalysis
	Request  *types.Request
	Matches  []types.SimilarityMatch
}

// RequestCreator persists new requests. Implemented by requeststore.Store.
type RequestCreator interface {
	Create(ctx context.Context, req *types.Request) error
}

// DuplicateChecker screens titles against the open backlog.
// Implemented by deduplication.Deduplicator.
type DuplicateChecker interface {
	CheckTitle(ctx context.Context, title string, category types.Category) (*deduplication.DeduplicationResult, error)
	RecordTitle(ctx context.Context, title string, category types.Category)
}

// Pipeline wires intent analysis, duplicate detection, persistence and
// notifications into one message path.
type Pipeline struct {
	analyzer  *analyzer.Analyzer
	dedup     DuplicateChecker
	store     RequestCreator
	publisher notify.Publisher
}

// NewPipeline assembles a pipeline. Publisher may be nil.
func NewPipeline(a *analyzer.Analyzer, dedup DuplicateChecker, store RequestCreator, publisher notify.Publisher) (*Pipeline, error) {
	if a == nil {
		return nil, fmt.Errorf("analyzer cannot be nil")
	}
	if dedup == nil {
		return nil, fmt.Errorf("duplicate checker cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("request store cannot be nil")
	}
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &Pipeline{analyzer: a, dedup: dedup, store: store, publisher: publisher}, nil
}

// ProcessMessage runs one message through the full path. A nil error with
// OutcomeIgnored means the message was deliberately dropped, not that
// anything failed.
func (p *Pipeline) ProcessMessage(ctx context.Context, msg ChatMessage) (*Result, error) {
	if !p.analyzer.CouldBeRequest(msg.Text) {
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	score := p.analyzer.Score(msg.Text)
	if score < CreationThreshold {
		return &Result{Outcome: OutcomeIgnored}, nil
	}

	analysis := p.analyzer.Analyze(msg.Text, score)
	if !analysis.IsClearRequest && !analysis.MightBeRequest {
		return &Result{Outcome: OutcomeIgnored, Analysis: &analysis}, nil
	}
	if analysis.Title == "" {
		return &Result{Outcome: OutcomeIgnored, Analysis: &analysis}, nil
	}

	dupResult, err := p.dedup.CheckTitle(ctx, analysis.Title, analysis.Category)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if dupResult.IsDuplicate {
		event := notify.Event{
			Type:    notify.EventRequestDuplicate,
			Matches: dupResult.Matches,
			At:      time.Now().UTC(),
		}
		if err := p.publisher.Publish(ctx, event); err != nil {
			log.Printf("Warning: failed to publish duplicate event: %v", err)
		}
		return &Result{
			Outcome:  OutcomeDuplicate,
			Analysis: &analysis,
			Matches:  dupResult.Matches,
		}, nil
	}

	req := &types.Request{
		UserID:     msg.UserID,
		RawText:    msg.Text,
		Title:      analysis.Title,
		Category:   analysis.Category,
		Score:      analysis.RawScore,
		Confidence: analysis.Confidence,
	}
	if err := p.store.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	p.dedup.RecordTitle(ctx, req.Title, req.Category)

	event := notify.Event{
		Type:    notify.EventRequestCreated,
		Request: req,
		At:      time.Now().UTC(),
	}
	if err := p.publisher.Publish(ctx, event); err != nil {
		log.Printf("Warning: failed to publish created event: %v", err)
	}

	log.Printf("📝 Created request %d (%s, score=%d): %s", req.ID, req.Category, req.Score, req.Title)
	return &Result{Outcome: OutcomeCreated, Analysis: &analysis, Request: req}, nil
}
