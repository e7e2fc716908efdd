// Package deduplication wraps the pure similarity engine with the
// operational pieces of duplicate detection: backlog lookup, an optional
// Redis bloom fast path for exact repeats, and an optional embeddings
// confirmation pass for borderline matches.
package deduplication

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"contentbot/similarity"
	"contentbot/types"
)

const (
	// DefaultThreshold is the creation-time duplicate cutoff.
	DefaultThreshold = similarity.DefaultThreshold
	// DefaultMaxCandidates bounds how many pending requests one check
	// compares against.
	DefaultMaxCandidates = 50

	// borderlineBand is the score band above the threshold in which an
	// embeddings provider, when configured, gets to veto a match.
	borderlineBand = 0.05
	// embedConfirmThreshold is the minimum embedding cosine similarity for
	// a borderline match to survive the confirmation pass.
	embedConfirmThreshold = 0.75
)

// BacklogProvider supplies the open requests a new title is compared
// against. Implementations return a bounded, read-only snapshot.
type BacklogProvider interface {
	GetPending(ctx context.Context, category types.Category, limit int) ([]types.Candidate, error)
}

// DeduplicationResult contains the result of one duplicate check.
type DeduplicationResult struct {
	IsDuplicate bool                    `json:"is_duplicate"`
	Matches     []types.SimilarityMatch `json:"matches,omitempty"`
	ExactRepeat bool                    `json:"exact_repeat,omitempty"`
	CheckedAt   time.Time               `json:"checked_at"`
}

// Deduplicator checks new request titles against the pending backlog.
type Deduplicator struct {
	engine        *similarity.Engine
	backlog       BacklogProvider
	bloom         *RedisBloom
	embeddings    EmbeddingsProvider
	threshold     float64
	maxCandidates int
}

// DeduplicatorConfig holds configuration for the deduplicator.
type DeduplicatorConfig struct {
	Engine    similarity.EngineConfig
	Threshold float64 // Default: 0.8
	// MaxCandidates caps the backlog snapshot size. Default: 50.
	MaxCandidates int
	// Optional Bloom filter configuration. If nil, the exact-repeat fast
	// path is disabled.
	BloomConfig *BloomConfig
	// Optional embeddings provider for borderline-match confirmation.
	Embeddings EmbeddingsProvider
}

// NewDeduplicator creates a deduplicator over the given backlog provider.
func NewDeduplicator(backlog BacklogProvider, config DeduplicatorConfig) (*Deduplicator, error) {
	if backlog == nil {
		return nil, fmt.Errorf("backlog provider cannot be nil")
	}
	cfg := applyConfigDefaults(config)

	var bloomClient *RedisBloom
	if cfg.BloomConfig != nil {
		b, err := NewRedisBloom(*cfg.BloomConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize RedisBloom: %w", err)
		}
		bloomClient = b
	}

	return &Deduplicator{
		engine:        similarity.NewEngine(cfg.Engine),
		backlog:       backlog,
		bloom:         bloomClient,
		embeddings:    cfg.Embeddings,
		threshold:     cfg.Threshold,
		maxCandidates: cfg.MaxCandidates,
	}, nil
}

// Engine exposes the underlying similarity engine for exploratory search.
func (d *Deduplicator) Engine() *similarity.Engine { return d.engine }

// CheckTitle checks whether title duplicates an open request in the given
// category. Candidates without a title are skipped, never an error.
func (d *Deduplicator) CheckTitle(ctx context.Context, title string, category types.Category) (*DeduplicationResult, error) {
	checkTime := time.Now()

	if title == "" {
		return &DeduplicationResult{IsDuplicate: false, CheckedAt: checkTime}, nil
	}

	// Fast path: probabilistic exact-repeat filter over normalized titles.
	if d.bloom != nil {
		exists, err := d.bloom.Exists(ctx, TitleHash(title, category))
		if err != nil {
			log.Printf("Warning: bloom check failed: %v", err)
		} else if exists {
			return &DeduplicationResult{
				IsDuplicate: true,
				ExactRepeat: true,
				CheckedAt:   checkTime,
			}, nil
		}
	}

	candidates, err := d.backlog.GetPending(ctx, category, d.maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending requests: %w", err)
	}

	matches := d.engine.FindDuplicates(title, candidates, d.threshold)
	if len(matches) > 0 && d.embeddings != nil {
		matches = d.confirmBorderline(title, candidates, matches)
	}

	return &DeduplicationResult{
		IsDuplicate: len(matches) > 0,
		Matches:     matches,
		CheckedAt:   checkTime,
	}, nil
}

// RecordTitle registers a newly created request so the exact-repeat fast
// path catches resubmissions. No-op without a bloom filter.
func (d *Deduplicator) RecordTitle(ctx context.Context, title string, category types.Category) {
	if d.bloom == nil || title == "" {
		return
	}
	if err := d.bloom.Add(ctx, TitleHash(title, category)); err != nil {
		log.Printf("Warning: failed to record title in bloom filter: %v", err)
	}
}

// confirmBorderline lets the embeddings provider veto matches that sit just
// above the lexical threshold. Matches clearly above the band pass through
// untouched; provider failures keep the lexical verdict.
func (d *Deduplicator) confirmBorderline(title string, candidates []types.Candidate, matches []types.SimilarityMatch) []types.SimilarityMatch {
	borderline := make([]int, 0, len(matches))
	for i, m := range matches {
		if m.Score < d.threshold+borderlineBand {
			borderline = append(borderline, i)
		}
	}
	if len(borderline) == 0 {
		return matches
	}

	titleByID := make(map[int64]string, len(candidates))
	for _, c := range candidates {
		titleByID[c.ID] = c.Title
	}

	texts := make([]string, 0, len(borderline)+1)
	texts = append(texts, title)
	for _, i := range borderline {
		texts = append(texts, titleByID[matches[i].ID])
	}

	vectors, err := d.embeddings.EmbedTexts(texts)
	if err != nil || len(vectors) != len(texts) {
		log.Printf("Warning: embeddings confirmation skipped: %v", err)
		return matches
	}

	rejected := make(map[int64]struct{})
	for j, i := range borderline {
		if cosine(vectors[0], vectors[j+1]) < embedConfirmThreshold {
			rejected[matches[i].ID] = struct{}{}
		}
	}
	if len(rejected) == 0 {
		return matches
	}

	kept := matches[:0]
	for _, m := range matches {
		if _, drop := rejected[m.ID]; !drop {
			kept = append(kept, m)
		}
	}
	return kept
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Close releases the bloom filter connection if one is held.
func (d *Deduplicator) Close() error {
	if d.bloom != nil {
		return d.bloom.Close()
	}
	return nil
}

func applyConfigDefaults(config DeduplicatorConfig) DeduplicatorConfig {
	if config.Threshold == 0 {
		config.Threshold = DefaultThreshold
	}
	if config.MaxCandidates == 0 {
		config.MaxCandidates = DefaultMaxCandidates
	}
	return config
}
