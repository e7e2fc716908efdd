package export

import (
	"context"
	"testing"
	"time"

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

func TestBuildSnapshot(t *testing.T) {
	store := &fakePending{pending: map[types.Category][]types.Candidate{
		types.CategorySeries: {
			{ID: 1, Title: "מטריקס", Status: types.StatusPending},
			{ID: 2, Title: "שובר שורות", Status: types.StatusPending},
		},
		types.CategoryBooks: {
			{ID: 3, Title: "dune", Status: types.StatusPending},
		},
	}}

	snapshot, err := BuildSnapshot(context.Background(), store)
	if err != nil {
		t.Fatalf("BuildSnapshot failed: %v", err)
	}
	if snapshot.TotalCount != 3 {
		t.Fatalf("expected 3 requests, got %d", snapshot.TotalCount)
	}
	if len(snapshot.Backlog) != 2 {
		t.Fatalf("empty categories must be omitted, got %d", len(snapshot.Backlog))
	}
	if snapshot.TakenAt.IsZero() {
		t.Fatal("snapshot must carry its time")
	}
}

func TestSnapshotKey(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 30, 45, 0, time.UTC)
	key := SnapshotKey("backlog", at)
	if key != "backlog/2026-08-30T12-30-45Z.json" {
		t.Fatalf("unexpected key %q", key)
	}
}
