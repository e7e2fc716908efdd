// Package export snapshots the open request backlog to S3 as timestamped
// JSON documents, giving admins an auditable history of what was pending
// and when.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"contentbot/common"
	"contentbot/types"
)

const backlogPageSize = 500

// PendingProvider supplies the open requests per category.
// Implemented by requeststore.Store.
type PendingProvider interface {
	GetPending(ctx context.Context, category types.Category, limit int) ([]types.Candidate, error)
}

// Snapshot is the exported document format.
type Snapshot struct {
	TakenAt    time.Time                            `json:"taken_at"`
	TotalCount int                                  `json:"total_count"`
	Backlog    map[types.Category][]types.Candidate `json:"backlog"`
}

// Exporter writes backlog snapshots to an S3 bucket.
type Exporter struct {
	store  PendingProvider
	s3     *common.S3
	bucket string
	prefix string
}

// ExporterConfig configures the snapshot destination.
type ExporterConfig struct {
	Bucket string
	Prefix string // Default: "backlog"
	S3     common.S3Config
}

// NewExporterConfigFromEnv reads EXPORT_BUCKET, EXPORT_PREFIX and
// AWS_REGION.
func NewExporterConfigFromEnv() ExporterConfig {
	prefix := os.Getenv("EXPORT_PREFIX")
	if prefix == "" {
		prefix = "backlog"
	}
	return ExporterConfig{
		Bucket: os.Getenv("EXPORT_BUCKET"),
		Prefix: prefix,
		S3:     common.S3Config{Region: os.Getenv("AWS_REGION")},
	}
}

// NewExporter creates an exporter. An empty bucket is an error: the caller
// decides whether export is enabled before constructing one.
func NewExporter(ctx context.Context, store PendingProvider, cfg ExporterConfig) (*Exporter, error) {
	if store == nil {
		return nil, fmt.Errorf("pending provider cannot be nil")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("export bucket cannot be empty")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "backlog"
	}

	s3Client, err := common.NewS3(ctx, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &Exporter{store: store, s3: s3Client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Export takes one snapshot and uploads it. The object key embeds the
// snapshot time, so exports never overwrite each other.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	snapshot, err := BuildSnapshot(ctx, e.store)
	if err != nil {
		return "", err
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := SnapshotKey(e.prefix, snapshot.TakenAt)
	if err := e.s3.Put(ctx, e.bucket, key, bytes.NewReader(payload), "application/json"); err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	log.Printf("📦 Exported backlog snapshot (%d requests) to s3://%s/%s", snapshot.TotalCount, e.bucket, key)
	return key, nil
}

// Run exports on the given interval until ctx is canceled.
func (e *Exporter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.Export(ctx); err != nil {
				log.Printf("Warning: backlog export failed: %v", err)
			}
		}
	}
}

// BuildSnapshot collects the current backlog across all categories.
func BuildSnapshot(ctx context.Context, store PendingProvider) (*Snapshot, error) {
	snapshot := &Snapshot{
		TakenAt: time.Now().UTC(),
		Backlog: make(map[types.Category][]types.Candidate),
	}

	for _, category := range types.AllCategories {
		candidates, err := store.GetPending(ctx, category, backlogPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s backlog: %w", category, err)
		}
		if len(candidates) == 0 {
			continue
		}
		snapshot.Backlog[category] = candidates
		snapshot.TotalCount += len(candidates)
	}

	return snapshot, nil
}

// SnapshotKey builds the S3 object key for a snapshot taken at t.
func SnapshotKey(prefix string, t time.Time) string {
	return fmt.Sprintf("%s/%s.json", prefix, t.UTC().Format("2006-01-02T15-04-05Z"))
}
