// Package similarity implements the blended duplicate-detection metric:
// Levenshtein edit similarity, Jaccard keyword overlap, and a cosine
// term-frequency score combined with fixed weights.
package similarity

import (
	"math"
	"sort"

	"contentbot/textnorm"
	"contentbot/types"
)

const (
	// DefaultThreshold is the creation-time duplicate cutoff.
	DefaultThreshold = 0.8
	// ExploreThreshold is the loose cutoff used by "find similar" search.
	ExploreThreshold = 0.3

	defaultLevenshteinWeight = 0.4
	defaultJaccardWeight     = 0.3
	defaultSemanticWeight    = 0.3
)

// EngineConfig holds the algorithm weights and default threshold.
// Weights must be treated as read-only once the engine is constructed;
// reconfiguration between batches only.
type EngineConfig struct {
	LevenshteinWeight float64 // Default: 0.4
	JaccardWeight     float64 // Default: 0.3
	SemanticWeight    float64 // Default: 0.3
	Threshold         float64 // Default: 0.8
}

// Engine computes blended title similarity. It is stateless: every call is a
// pure function of its inputs, safe for concurrent use.
type Engine struct {
	cfg EngineConfig
}

// NewEngine creates an engine, filling zero config fields with defaults.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{cfg: applyConfigDefaults(cfg)}
}

func applyConfigDefaults(cfg EngineConfig) EngineConfig {
	if cfg.LevenshteinWeight == 0 {
		cfg.LevenshteinWeight = defaultLevenshteinWeight
	}
	if cfg.JaccardWeight == 0 {
		cfg.JaccardWeight = defaultJaccardWeight
	}
	if cfg.SemanticWeight == 0 {
		cfg.SemanticWeight = defaultSemanticWeight
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultThreshold
	}
	return cfg
}

// Threshold returns the engine's default duplicate cutoff.
func (e *Engine) Threshold() float64 { return e.cfg.Threshold }

// Similarity returns the blended similarity of two raw strings in [0,1].
// Identical normalized forms short-circuit to 1.0.
func (e *Engine) Similarity(text1, text2 string) float64 {
	if text1 == "" || text2 == "" {
		return 0.0
	}

	norm1 := textnorm.Normalize(text1)
	norm2 := textnorm.Normalize(text2)
	if norm1 == norm2 {
		return 1.0
	}

	score := e.cfg.LevenshteinWeight*LevenshteinSimilarity(norm1, norm2) +
		e.cfg.JaccardWeight*JaccardSimilarity(norm1, norm2) +
		e.cfg.SemanticWeight*SemanticSimilarity(norm1, norm2)

	return math.Min(math.Max(score, 0.0), 1.0)
}

// FindDuplicates compares title against every candidate and returns matches
// at or above threshold, sorted descending by score. Candidates with an
// empty title are skipped; an empty query title or candidate list returns
// an empty slice without any computation. A threshold <= 0 falls back to the
// engine default.
func (e *Engine) FindDuplicates(title string, candidates []types.Candidate, threshold float64) []types.SimilarityMatch {
	if title == "" || len(candidates) == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = e.cfg.Threshold
	}

	matches := make([]types.SimilarityMatch, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Title == "" {
			continue
		}
		score := e.Similarity(title, candidate.Title)
		if score >= threshold {
			matches = append(matches, types.SimilarityMatch{ID: candidate.ID, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// SimilarTitle is one exploratory search result.
type SimilarTitle struct {
	Title           string  `json:"title"`
	Similarity      float64 `json:"similarity"`
	MatchType       string  `json:"match_type"`
	NormalizedTitle string  `json:"normalized_title"`
}

// FindSimilarTitles runs a loose exploratory comparison of title against a
// list of existing titles, returning up to limit results above minThreshold,
// best first.
func (e *Engine) FindSimilarTitles(title string, titles []string, limit int, minThreshold float64) []SimilarTitle {
	if title == "" || len(titles) == 0 {
		return nil
	}
	if minThreshold <= 0 {
		minThreshold = ExploreThreshold
	}

	results := make([]SimilarTitle, 0, len(titles))
	for _, existing := range titles {
		score := e.Similarity(title, existing)
		if score >= minThreshold {
			results = append(results, SimilarTitle{
				Title:           existing,
				Similarity:      score,
				MatchType:       classifyMatchType(score),
				NormalizedTitle: textnorm.Normalize(existing),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func classifyMatchType(similarity float64) string {
	switch {
	case similarity >= 0.95:
		return "exact"
	case similarity >= 0.85:
		return "very_high"
	case similarity >= 0.7:
		return "high"
	case similarity >= 0.5:
		return "medium"
	default:
		return "low"
	}
}
