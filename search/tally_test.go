package search

import (
	"context"
	"testing"
)

func TestMemoryTallyRanksByCount(t *testing.T) {
	tally := NewMemoryTally()
	ctx := context.Background()

	for _, term := range []string{
		"The Matrix", "matrix", "המטריקס",
		"avatar", "Avatar",
		"breaking bad",
	} {
		if err := tally.Record(ctx, term); err != nil {
			t.Fatalf("Record(%q) failed: %v", term, err)
		}
	}

	top, err := tally.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	// "The Matrix"/"matrix" and "avatar"/"Avatar" each normalize to one
	// term with 2 counts; the tie breaks alphabetically.
	if top[0].Term != "avatar" || top[0].Count != 2 {
		t.Fatalf("unexpected leader: %+v", top[0])
	}
	if top[1].Term != "matrix" || top[1].Count != 2 {
		t.Fatalf("unexpected runner-up: %+v", top[1])
	}
}

func TestMemoryTallyDropsEmptyTerms(t *testing.T) {
	tally := NewMemoryTally()
	ctx := context.Background()

	if err := tally.Record(ctx, "   "); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	top, err := tally.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(top) != 0 {
		t.Fatalf("expected empty tally, got %+v", top)
	}
}

func TestMemoryTallyTopZero(t *testing.T) {
	tally := NewMemoryTally()
	_ = tally.Record(context.Background(), "avatar")

	top, err := tally.Top(context.Background(), 0)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if top != nil {
		t.Fatalf("Top(0) should return nothing, got %+v", top)
	}
}
