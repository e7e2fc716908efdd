package deduplication

import (
	"context"
	"errors"
	"testing"

	"contentbot/types"
)

type fakeBacklog struct {
	pending map[types.Category][]types.Candidate
	err     error
}

func newFakeBacklog() *fakeBacklog {
	return &fakeBacklog{pending: make(map[types.Category][]types.Candidate)}
}

func (f *fakeBacklog) GetPending(_ context.Context, category types.Category, limit int) ([]types.Candidate, error) {
	if f.err != nil {
		return nil, f.err
	}
	candidates := f.pending[category]
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (f *fakeBacklog) add(category types.Category, c types.Candidate) {
	f.pending[category] = append(f.pending[category], c)
}

type fakeEmbeddings struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbeddings) ModelName() string { return "fake-embed-model" }

func (f *fakeEmbeddings) EmbedTexts(texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := f.vectors[text]
		if !ok {
			vec = []float32{1, 0, 0}
		}
		out[i] = vec
	}
	return out, nil
}

func TestCheckTitleDetectsNearDuplicate(t *testing.T) {
	backlog := newFakeBacklog()
	backlog.add(types.CategorySeries, types.Candidate{ID: 1, Title: "המטריקס", Status: types.StatusPending})
	backlog.add(types.CategorySeries, types.Candidate{ID: 2, Title: "משחקי הכס עונה 3", Status: types.StatusPending})

	dedup, err := NewDeduplicator(backlog, DeduplicatorConfig{})
	if err != nil {
		t.Fatalf("failed to create deduplicator: %v", err)
	}

	result, err := dedup.CheckTitle(context.Background(), "מטריקס", types.CategorySeries)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.IsDuplicate {
		t.Fatal("expected duplicate verdict")
	}
	if len(result.Matches) != 1 || result.Matches[0].ID != 1 {
		t.Fatalf("expected single match against ID 1, got %+v", result.Matches)
	}
	if result.Matches[0].Score != 1.0 {
		t.Fatalf("expected score 1.0 for normalized-identical titles, got %v", result.Matches[0].Score)
	}
}

func TestCheckTitleNoDuplicateAcrossCategories(t *testing.T) {
	backlog := newFakeBacklog()
	backlog.add(types.CategorySeries, types.Candidate{ID: 1, Title: "המטריקס", Status: types.StatusPending})

	dedup, err := NewDeduplicator(backlog, DeduplicatorConfig{})
	if err != nil {
		t.Fatalf("failed to create deduplicator: %v", err)
	}

	result, err := dedup.CheckTitle(context.Background(), "מטריקס", types.CategorySoftware)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.IsDuplicate {
		t.Fatalf("expected no duplicate in a different category, got %+v", result.Matches)
	}
}

func TestCheckTitleEmptyTitle(t *testing.T) {
	backlog := newFakeBacklog()
	backlog.err = errors.New("backlog must not be queried")

	dedup, err := NewDeduplicator(backlog, DeduplicatorConfig{})
	if err != nil {
		t.Fatalf("failed to create deduplicator: %v", err)
	}

	result, err := dedup.CheckTitle(context.Background(), "", types.CategoryGeneral)
	if err != nil {
		t.Fatalf("empty title must not error: %v", err)
	}
	if result.IsDuplicate {
		t.Fatal("empty title can never be a duplicate")
	}
}

func TestCheckTitleSkipsCandidatesWithoutTitle(t *testing.T) {
	backlog := newFakeBacklog()
	backlog.add(types.CategoryGeneral, types.Candidate{ID: 1, Status: types.StatusPending})
	backlog.add(types.CategoryGeneral, types.Candidate{ID: 2, Title: "אווטאר", Status: types.StatusPending})

	dedup, err := NewDeduplicator(backlog, DeduplicatorConfig{})
	if err != nil {
		t.Fatalf("failed to create deduplicator: %v", err)
	}

	result, err := dedup.CheckTitle(context.Background(), "אווטאר", types.CategoryGeneral)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(result.Matches) != 1 || result.Matches[0].ID != 2 {
		t.Fatalf("expected match only against titled candidate, got %+v", result.Matches)
	}
}

func TestCheckTitleBacklogError(t *testing.T) {
	backlog := newFakeBacklog()
	backlog.err = errors.New("redis down")

	dedup, err := NewDeduplicator(backlog, DeduplicatorConfig{})
	if err != nil {
		t.Fatalf("failed to create deduplicator: %v", err)
	}

	if _, err := dedup.CheckTitle(context.Background(), "avatar", types.CategoryGeneral); err == nil {
		t.Fatal("expected error when backlog lookup fails")
	}
}

func TestConfirmBorderlineVetoesWeakMatch(t *testing.T) {
	embeddings := &fakeEmbeddings{vectors: map[string][]float32{
		"dark matter":  {1, 0, 0},
		"dark water":   {0, 1, 0}, // orthogonal: borderline match gets vetoed
		"dark matters": {1, 0.1, 0},
	}}

	dedup, err := NewDeduplicator(newFakeBacklog(), DeduplicatorConfig{
		Threshold:  0.8,
		Embeddings: embeddings,
	})
	if err != nil {
		t.Fatalf("failed to create deduplicator: %v", err)
	}

	candidates := []types.Candidate{
		{ID: 1, Title: "dark water"},
		{ID: 2, Title: "dark matters"},
	}
	matches := []types.SimilarityMatch{
		{ID: 2, Score: 0.96}, // above the band, passes through untouched
		{ID: 1, Score: 0.82}, // inside the band, subject to veto
	}

	kept := dedup.confirmBorderline("dark matter", candidates, matches)
	if embeddings.calls != 1 {
		t.Fatalf("expected one embeddings call, got %d", embeddings.calls)
	}
	if len(kept) != 1 || kept[0].ID != 2 {
		t.Fatalf("expected only the clear match to survive, got %+v", kept)
	}
}

func TestConfirmBorderlineKeepsVerdictOnProviderError(t *testing.T) {
	embeddings := &fakeEmbeddings{err: errors.New("api unavailable")}

	dedup, err := NewDeduplicator(newFakeBacklog(), DeduplicatorConfig{
		Threshold:  0.8,
		Embeddings: embeddings,
	})
	if err != nil {
		t.Fatalf("failed to create deduplicator: %v", err)
	}

	candidates := []types.Candidate{{ID: 3, Title: "breaking bad"}}
	matches := []types.SimilarityMatch{{ID: 3, Score: 0.81}}

	kept := dedup.confirmBorderline("braking bad", candidates, matches)
	if len(kept) != 1 {
		t.Fatal("provider failure must keep the lexical verdict")
	}
}

func TestTitleHashStableAcrossSurfaceForms(t *testing.T) {
	a := TitleHash("The Matrix", types.CategorySeries)
	b := TitleHash("the   matrix", types.CategorySeries)
	if a != b {
		t.Fatal("normalized-identical titles must hash identically")
	}

	c := TitleHash("The Matrix", types.CategorySoftware)
	if a == c {
		t.Fatal("same title in different categories must hash differently")
	}
}

func TestCosine(t *testing.T) {
	if got := cosine([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Fatalf("identical vectors: expected ~1, got %v", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Fatalf("orthogonal vectors: expected 0, got %v", got)
	}
	if got := cosine([]float32{1, 0}, []float32{1}); got != 0 {
		t.Fatalf("mismatched lengths: expected 0, got %v", got)
	}
}
