package ingest

import (
	"context"
	"errors"
	"testing"

	"contentbot/analyzer"
	"contentbot/deduplication"
	"contentbot/notify"
	"contentbot/types"
)

type fakeCreator struct {
	created []*types.Request
	err     error
}

func (f *fakeCreator) Create(_ context.Context, req *types.Request) error {
	if f.err != nil {
		return f.err
	}
	req.ID = int64(len(f.created) + 1)
	req.Status = types.StatusPending
	f.created = append(f.created, req)
	return nil
}

type fakeDup struct {
	result   *deduplication.DeduplicationResult
	err      error
	recorded []string
}

func (f *fakeDup) CheckTitle(_ context.Context, _ string, _ types.Category) (*deduplication.DeduplicationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &deduplication.DeduplicationResult{}, nil
}

func (f *fakeDup) RecordTitle(_ context.Context, title string, _ types.Category) {
	f.recorded = append(f.recorded, title)
}

type fakePublisher struct {
	events []notify.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, event notify.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func newTestPipeline(t *testing.T, dedup DuplicateChecker, store RequestCreator, publisher notify.Publisher) *Pipeline {
	t.Helper()
	p, err := NewPipeline(analyzer.New(analyzer.Lexicon{}), dedup, store, publisher)
	if err != nil {
		t.Fatalf("failed to build pipeline: %v", err)
	}
	return p
}

func TestProcessMessageIgnoresCasualChat(t *testing.T) {
	store := &fakeCreator{}
	dedup := &fakeDup{err: errors.New("duplicate checker must not run")}
	p := newTestPipeline(t, dedup, store, nil)

	for _, text := range []string{
		"",
		"תודה רבה",
		"חחחח",
		"בוקר טוב לכולם",
	} {
		result, err := p.ProcessMessage(context.Background(), ChatMessage{UserID: "u1", Text: text})
		if err != nil {
			t.Fatalf("ProcessMessage(%q) returned error: %v", text, err)
		}
		if result.Outcome != OutcomeIgnored {
			t.Fatalf("ProcessMessage(%q) = %s; want ignored", text, result.Outcome)
		}
	}
	if len(store.created) != 0 {
		t.Fatalf("casual chat must not create requests, got %d", len(store.created))
	}
}

func TestProcessMessageCreatesRequest(t *testing.T) {
	store := &fakeCreator{}
	dedup := &fakeDup{}
	publisher := &fakePublisher{}
	p := newTestPipeline(t, dedup, store, publisher)

	msg := ChatMessage{UserID: "u7", Text: "אפשר בבקשה את הסרט אווטאר 2022?"}
	result, err := p.ProcessMessage(context.Background(), msg)
	if err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}
	if result.Outcome != OutcomeCreated {
		t.Fatalf("expected created outcome, got %s", result.Outcome)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one stored request, got %d", len(store.created))
	}

	req := store.created[0]
	if req.UserID != "u7" || req.RawText != msg.Text {
		t.Fatalf("request provenance lost: %+v", req)
	}
	if req.Title == "" {
		t.Fatal("created request must carry an extracted title")
	}
	if req.Score < CreationThreshold {
		t.Fatalf("stored score %d below creation threshold", req.Score)
	}
	if len(dedup.recorded) != 1 || dedup.recorded[0] != req.Title {
		t.Fatalf("expected title recorded for fast-path, got %v", dedup.recorded)
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != notify.EventRequestCreated {
		t.Fatalf("expected one created event, got %+v", publisher.events)
	}
}

func TestProcessMessageBlocksDuplicate(t *testing.T) {
	store := &fakeCreator{}
	dedup := &fakeDup{result: &deduplication.DeduplicationResult{
		IsDuplicate: true,
		Matches:     []types.SimilarityMatch{{ID: 42, Score: 0.93}},
	}}
	publisher := &fakePublisher{}
	p := newTestPipeline(t, dedup, store, publisher)

	result, err := p.ProcessMessage(context.Background(), ChatMessage{UserID: "u1", Text: "יש את הסרט אווטאר?"})
	if err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}
	if result.Outcome != OutcomeDuplicate {
		t.Fatalf("expected duplicate outcome, got %s", result.Outcome)
	}
	if len(result.Matches) != 1 || result.Matches[0].ID != 42 {
		t.Fatalf("expected duplicate matches forwarded, got %+v", result.Matches)
	}
	if len(store.created) != 0 {
		t.Fatal("duplicates must not be stored")
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != notify.EventRequestDuplicate {
		t.Fatalf("expected one duplicate event, got %+v", publisher.events)
	}
}

func TestProcessMessagePropagatesCheckError(t *testing.T) {
	p := newTestPipeline(t, &fakeDup{err: errors.New("redis down")}, &fakeCreator{}, nil)

	if _, err := p.ProcessMessage(context.Background(), ChatMessage{Text: "אפשר בבקשה את הסרט אווטאר 2022?"}); err == nil {
		t.Fatal("expected error when duplicate check fails")
	}
}

func TestProcessMessagePropagatesStoreError(t *testing.T) {
	p := newTestPipeline(t, &fakeDup{}, &fakeCreator{err: errors.New("write failed")}, nil)

	if _, err := p.ProcessMessage(context.Background(), ChatMessage{Text: "אפשר בבקשה את הסרט אווטאר 2022?"}); err == nil {
		t.Fatal("expected error when persistence fails")
	}
}

func TestProcessMessageSurvivesPublisherFailure(t *testing.T) {
	store := &fakeCreator{}
	p := newTestPipeline(t, &fakeDup{}, store, &fakePublisher{err: errors.New("broker down")})

	result, err := p.ProcessMessage(context.Background(), ChatMessage{UserID: "u2", Text: "אפשר בבקשה את הסרט אווטאר 2022?"})
	if err != nil {
		t.Fatalf("publisher failure must not fail the pipeline: %v", err)
	}
	if result.Outcome != OutcomeCreated {
		t.Fatalf("expected created outcome, got %s", result.Outcome)
	}
	if len(store.created) != 1 {
		t.Fatal("request must still be stored when publishing fails")
	}
}

func TestChatMessageHandlerSkipsMalformed(t *testing.T) {
	p := newTestPipeline(t, &fakeDup{}, &fakeCreator{}, nil)
	handler := &ChatMessageHandler{Pipeline: p}

	shouldMark, err := handler.HandleMessage(context.Background(), []byte("{not json"))
	if err != nil {
		t.Fatalf("malformed message must not error: %v", err)
	}
	if !shouldMark {
		t.Fatal("malformed messages must be marked to avoid redelivery loops")
	}

	shouldMark, err = handler.HandleMessage(context.Background(), []byte(`{"user_id":"u1","text":""}`))
	if err != nil || !shouldMark {
		t.Fatalf("empty text must be marked and skipped, got mark=%v err=%v", shouldMark, err)
	}
}
