// Package search tracks what users look for, so admins can see which
// titles are in demand even before formal requests exist.
package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"contentbot/textnorm"
)

// TermCount is one entry in a popularity ranking.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

// Tally records searched terms and reports the most popular ones.
type Tally interface {
	Record(ctx context.Context, term string) error
	Top(ctx context.Context, n int) ([]TermCount, error)
}

// MemoryTally is an in-process tally, used in tests and single-node runs.
type MemoryTally struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryTally creates an empty in-memory tally.
func NewMemoryTally() *MemoryTally {
	return &MemoryTally{counts: make(map[string]int64)}
}

// Record counts one search for the normalized form of term. Terms that
// normalize to nothing are dropped.
func (t *MemoryTally) Record(_ context.Context, term string) error {
	normalized := textnorm.Normalize(term)
	if normalized == "" {
		return nil
	}
	t.mu.Lock()
	t.counts[normalized]++
	t.mu.Unlock()
	return nil
}

// Top returns the n most searched terms, highest count first. Ties break
// alphabetically so the order is stable.
func (t *MemoryTally) Top(_ context.Context, n int) ([]TermCount, error) {
	if n <= 0 {
		return nil, nil
	}

	t.mu.Lock()
	entries := make([]TermCount, 0, len(t.counts))
	for term, count := range t.counts {
		entries = append(entries, TermCount{Term: term, Count: count})
	}
	t.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Term < entries[j].Term
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

const (
	tallyKey  = "searches:tally"
	opTimeout = 5 * time.Second
)

// RedisTally keeps counts in a Redis sorted set so they survive restarts
// and aggregate across instances.
type RedisTally struct {
	client *redis.Client
}

// NewRedisTally wraps an existing Redis client.
func NewRedisTally(client *redis.Client) *RedisTally {
	return &RedisTally{client: client}
}

// Record increments the normalized term's score via ZINCRBY.
func (t *RedisTally) Record(ctx context.Context, term string) error {
	normalized := textnorm.Normalize(term)
	if normalized == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := t.client.ZIncrBy(ctx, tallyKey, 1, normalized).Err(); err != nil {
		return fmt.Errorf("failed to record search term: %w", err)
	}
	return nil
}

// Top returns the n highest-scored terms from the sorted set.
func (t *RedisTally) Top(ctx context.Context, n int) ([]TermCount, error) {
	if n <= 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	results, err := t.client.ZRevRangeWithScores(ctx, tallyKey, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load popular searches: %w", err)
	}

	entries := make([]TermCount, 0, len(results))
	for _, z := range results {
		term, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, TermCount{Term: term, Count: int64(z.Score)})
	}
	return entries, nil
}
