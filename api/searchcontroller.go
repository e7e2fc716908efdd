package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contentbot/similarity"
	"contentbot/types"
)

// RegisterSearchRoutes registers search tracking endpoints.
func RegisterSearchRoutes(r *gin.Engine, deps Deps) {
	g := r.Group("/api/search")
	g.POST("", func(c *gin.Context) { handleSearch(c, deps) })
	g.GET("/popular", func(c *gin.Context) { handlePopularSearches(c, deps) })
}

// SearchRequest records one user search and looks for matching open
// requests.
type SearchRequest struct {
	Term     string         `json:"term" binding:"required"`
	Category types.Category `json:"category"`
}

func handleSearch(c *gin.Context, deps Deps) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category == "" {
		req.Category = types.CategoryGeneral
	}

	ctx := c.Request.Context()
	if err := deps.Tally.Record(ctx, req.Term); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record search: " + err.Error()})
		return
	}

	candidates, err := deps.Store.GetPending(ctx, req.Category, defaultPendingLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search backlog: " + err.Error()})
		return
	}

	matches := deps.Dedup.Engine().FindDuplicates(req.Term, candidates, similarity.ExploreThreshold)

	c.JSON(http.StatusOK, gin.H{
		"term":    req.Term,
		"matches": matches,
	})
}

func handlePopularSearches(c *gin.Context, deps Deps) {
	n := 10
	if v := c.Query("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			n = parsed
		}
	}

	top, err := deps.Tally.Top(c.Request.Context(), n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load popular searches: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"popular": top})
}
