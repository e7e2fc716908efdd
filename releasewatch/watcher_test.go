package releasewatch

import (
	"context"
	"testing"

	"contentbot/types"
)

type fakePending struct {
	pending map[types.Category][]types.Candidate
}

func (f *fakePending) GetPending(_ context.Context, category types.Category, limit int) ([]types.Candidate, error) {
	candidates := f.pending[category]
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func newTestWatcher(t *testing.T, store PendingProvider) *Watcher {
	t.Helper()
	w, err := NewWatcher(store, nil, WatcherConfig{FeedURLs: []string{"http://example.com/rss"}})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	return w
}

func TestMatchReleasesFindsFulfillment(t *testing.T) {
	store := &fakePending{pending: map[types.Category][]types.Candidate{
		types.CategorySeries: {
			{ID: 1, Title: "The Matrix", Status: types.StatusPending},
			{ID: 2, Title: "Breaking Bad", Status: types.StatusPending},
		},
	}}
	w := newTestWatcher(t, store)

	backlog, err := w.loadBacklog(context.Background())
	if err != nil {
		t.Fatalf("loadBacklog failed: %v", err)
	}
	if len(backlog) != 2 {
		t.Fatalf("expected 2 backlog entries, got %d", len(backlog))
	}

	releases := []*Release{
		{ID: "r1", Title: "The Matrix 1080p", URL: "http://example.com/matrix"},
		{ID: "r2", Title: "Some Unrelated Documentary"},
	}

	matches := w.matchReleases(releases, backlog)
	if len(matches) != 1 {
		t.Fatalf("expected exactly one match, got %+v", matches)
	}
	if matches[0].RequestID != 1 || matches[0].Category != types.CategorySeries {
		t.Fatalf("matched wrong request: %+v", matches[0])
	}
	if matches[0].Score < DefaultMatchThreshold {
		t.Fatalf("match score %v below threshold", matches[0].Score)
	}
}

func TestMatchReleasesSkipsEmptyTitles(t *testing.T) {
	w := newTestWatcher(t, &fakePending{})

	backlog := []categorizedCandidate{
		{candidate: types.Candidate{ID: 1}, category: types.CategoryGeneral},
	}
	releases := []*Release{{ID: "r1", Title: ""}}

	if matches := w.matchReleases(releases, backlog); len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestNewWatcherRequiresFeeds(t *testing.T) {
	if _, err := NewWatcher(&fakePending{}, nil, WatcherConfig{}); err == nil {
		t.Fatal("expected error for empty feed list")
	}
}
