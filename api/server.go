// Package api exposes the bot's analysis, duplicate-detection and request
// management operations over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"contentbot/analyzer"
	"contentbot/deduplication"
	"contentbot/ingest"
	"contentbot/notify"
	"contentbot/search"
	"contentbot/types"
)

// RequestStore is the persistence surface the API needs.
// Implemented by requeststore.Store.
type RequestStore interface {
	Create(ctx context.Context, req *types.Request) error
	Get(ctx context.Context, id int64) (*types.Request, error)
	GetPending(ctx context.Context, category types.Category, limit int) ([]types.Candidate, error)
	Fulfill(ctx context.Context, id int64, notes string) (*types.Request, error)
	Reject(ctx context.Context, id int64, notes string) (*types.Request, error)
}

// Deps bundles the collaborators the route handlers share.
type Deps struct {
	Analyzer  *analyzer.Analyzer
	Dedup     *deduplication.Deduplicator
	Store     RequestStore
	Pipeline  *ingest.Pipeline
	Tally     search.Tally
	Publisher notify.Publisher
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterAnalyzeRoutes(r, deps)
	RegisterDuplicateRoutes(r, deps)
	RegisterRequestRoutes(r, deps)
	RegisterSearchRoutes(r, deps)
	RegisterHealthRoutes(r)
	return r
}

// RegisterHealthRoutes registers the health check endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}
