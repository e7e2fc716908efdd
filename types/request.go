package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Category buckets a content request into one of the closed set of
// content kinds the bot tracks.
type Category string

const (
	CategorySeries    Category = "series"
	CategorySoftware  Category = "software"
	CategoryGaming    Category = "gaming"
	CategoryEducation Category = "education"
	CategoryBooks     Category = "books"
	CategoryMusic     Category = "music"
	CategoryGeneral   Category = "general"
)

// AllCategories lists every category, in scan order.
var AllCategories = []Category{
	CategorySeries,
	CategorySoftware,
	CategoryGaming,
	CategoryEducation,
	CategoryBooks,
	CategoryMusic,
	CategoryGeneral,
}

// RequestStatus tracks a request through the approval workflow.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusFulfilled RequestStatus = "fulfilled"
	StatusRejected  RequestStatus = "rejected"
)

// Request is a persisted content request.
type Request struct {
	ID         int64         `json:"id"`
	UserID     string        `json:"user_id,omitempty"`
	RawText    string        `json:"raw_text"`
	Title      string        `json:"title"`
	Category   Category      `json:"category"`
	Status     RequestStatus `json:"status"`
	Score      int           `json:"score"`
	Confidence int           `json:"confidence"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Notes      string        `json:"notes,omitempty"`
}

// Candidate is a read-only snapshot of an open request handed in for
// duplicate comparison. The comparison code never mutates it.
type Candidate struct {
	ID     int64         `json:"id"`
	Title  string        `json:"title"`
	Status RequestStatus `json:"status,omitempty"`
}

// IntentAnalysis is the result of scoring and classifying one message.
type IntentAnalysis struct {
	RawScore       int      `json:"raw_score"`
	IsClearRequest bool     `json:"is_clear_request"`
	MightBeRequest bool     `json:"might_be_request"`
	Category       Category `json:"category"`
	Confidence     int      `json:"confidence"`
	Title          string   `json:"title,omitempty"`
}

// SimilarityMatch is one ranked duplicate-detection result.
type SimilarityMatch struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
