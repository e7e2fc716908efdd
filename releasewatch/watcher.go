package releasewatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"contentbot/notify"
	"contentbot/similarity"
	"contentbot/types"
)

const (
	// DefaultMatchThreshold is looser than the duplicate cutoff: release
	// titles carry scene noise (year, quality tags) that lowers lexical
	// similarity even for the right title.
	DefaultMatchThreshold = 0.7
	DefaultMaxPerFeed     = 20
	DefaultInterval       = 15 * time.Minute
	backlogPageSize       = 100
)

// PendingProvider supplies the open requests per category.
// Implemented by requeststore.Store.
type PendingProvider interface {
	GetPending(ctx context.Context, category types.Category, limit int) ([]types.Candidate, error)
}

// Match pairs a feed release with an open request it likely fulfills.
type Match struct {
	Release   *Release       `json:"release"`
	RequestID int64          `json:"request_id"`
	Category  types.Category `json:"category"`
	Score     float64        `json:"score"`
}

// Watcher polls release feeds and reports pending requests the new
// releases appear to fulfill.
type Watcher struct {
	engine    *similarity.Engine
	store     PendingProvider
	publisher notify.Publisher
	config    WatcherConfig
}

// WatcherConfig configures feed polling and matching.
type WatcherConfig struct {
	FeedURLs       []string
	Interval       time.Duration // Default: 15m
	MatchThreshold float64       // Default: 0.7
	MaxPerFeed     int           // Default: 20
	// ExtractContent pulls full page text for matched releases.
	ExtractContent bool
}

// NewWatcher creates a watcher over the given backlog. Publisher may be nil.
func NewWatcher(store PendingProvider, publisher notify.Publisher, config WatcherConfig) (*Watcher, error) {
	if store == nil {
		return nil, fmt.Errorf("pending provider cannot be nil")
	}
	if len(config.FeedURLs) == 0 {
		return nil, fmt.Errorf("at least one feed URL is required")
	}
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.MatchThreshold <= 0 {
		config.MatchThreshold = DefaultMatchThreshold
	}
	if config.MaxPerFeed <= 0 {
		config.MaxPerFeed = DefaultMaxPerFeed
	}
	if publisher == nil {
		publisher = notify.NopPublisher{}
	}
	return &Watcher{
		engine:    similarity.NewEngine(similarity.EngineConfig{}),
		store:     store,
		publisher: publisher,
		config:    config,
	}, nil
}

// Run polls all feeds on the configured interval until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) {
	log.Printf("✅ Release watcher started (%d feeds, every %s)", len(w.config.FeedURLs), w.config.Interval)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		if _, err := w.CheckOnce(ctx); err != nil {
			log.Printf("Warning: release check failed: %v", err)
		}

		select {
		case <-ctx.Done():
			log.Println("Release watcher stopped")
			return
		case <-ticker.C:
		}
	}
}

// CheckOnce fetches every configured feed and matches releases against the
// pending backlog. Feed failures are logged and skipped so one dead feed
// does not starve the others.
func (w *Watcher) CheckOnce(ctx context.Context) ([]Match, error) {
	backlog, err := w.loadBacklog(ctx)
	if err != nil {
		return nil, err
	}
	if len(backlog) == 0 {
		return nil, nil
	}

	var matches []Match
	for _, feedURL := range w.config.FeedURLs {
		releases, err := FetchFeed(feedURL, w.config.MaxPerFeed)
		if err != nil {
			log.Printf("Warning: skipping feed %s: %v", feedURL, err)
			continue
		}
		matches = append(matches, w.matchReleases(releases, backlog)...)
	}

	if len(matches) > 0 && w.config.ExtractContent {
		seen := make(map[string]*Release)
		unique := make([]*Release, 0, len(matches))
		for _, m := range matches {
			if _, ok := seen[m.Release.ID]; !ok {
				seen[m.Release.ID] = m.Release
				unique = append(unique, m.Release)
			}
		}
		ExtractAllContent(unique)
	}

	for _, m := range matches {
		event := notify.Event{
			Type:         notify.EventReleaseMatched,
			Matches:      []types.SimilarityMatch{{ID: m.RequestID, Score: m.Score}},
			ReleaseTitle: m.Release.Title,
			ReleaseURL:   m.Release.URL,
			At:           time.Now().UTC(),
		}
		if err := w.publisher.Publish(ctx, event); err != nil {
			log.Printf("Warning: failed to publish release match: %v", err)
		}
	}

	return matches, nil
}

type categorizedCandidate struct {
	candidate types.Candidate
	category  types.Category
}

func (w *Watcher) loadBacklog(ctx context.Context) ([]categorizedCandidate, error) {
	var backlog []categorizedCandidate
	for _, category := range types.AllCategories {
		candidates, err := w.store.GetPending(ctx, category, backlogPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s backlog: %w", category, err)
		}
		for _, c := range candidates {
			backlog = append(backlog, categorizedCandidate{candidate: c, category: category})
		}
	}
	return backlog, nil
}

func (w *Watcher) matchReleases(releases []*Release, backlog []categorizedCandidate) []Match {
	var matches []Match
	for _, release := range releases {
		if release.Title == "" {
			continue
		}
		// Strip scene noise before comparing against request titles.
		releaseTitle := similarity.StandardizeTitle(release.Title)

		for _, entry := range backlog {
			if entry.candidate.Title == "" {
				continue
			}
			score := w.engine.Similarity(releaseTitle, similarity.StandardizeTitle(entry.candidate.Title))
			if score >= w.config.MatchThreshold {
				matches = append(matches, Match{
					Release:   release,
					RequestID: entry.candidate.ID,
					Category:  entry.category,
					Score:     score,
				})
			}
		}
	}
	return matches
}
