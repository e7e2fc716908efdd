package config

import "time"

// Intent Scoring Constants
const (
	// CreationThreshold is the minimum intent score for a message to
	// become a request. Below it the bot stays silent.
	CreationThreshold = 25

	// MaxConfidence caps the reported confidence percentage.
	MaxConfidence = 95
)

// Duplicate Detection Constants
const (
	// DuplicateThreshold is the creation-time duplicate cutoff.
	DuplicateThreshold = 0.8

	// ExploreThreshold is the loose cutoff for "find similar" search.
	ExploreThreshold = 0.3

	// MaxCandidates bounds how many pending requests one duplicate check
	// compares against.
	MaxCandidates = 50
)

// Release Watching Constants
const (
	// ReleaseMatchThreshold is the looser cutoff for matching noisy
	// release titles to pending requests.
	ReleaseMatchThreshold = 0.7

	// ReleaseCheckInterval is the feed polling cadence.
	ReleaseCheckInterval = 15 * time.Minute

	// MaxReleasesPerFeed caps how many entries one poll reads per feed.
	MaxReleasesPerFeed = 20
)

// Export Constants
const (
	// ExportInterval is the cadence of backlog snapshots to S3.
	ExportInterval = 6 * time.Hour
)
