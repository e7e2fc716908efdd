package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contentbot/types"
)

// RegisterDuplicateRoutes registers duplicate-detection endpoints.
func RegisterDuplicateRoutes(r *gin.Engine, deps Deps) {
	g := r.Group("/api/duplicates")
	g.POST("/check", func(c *gin.Context) { handleCheckDuplicate(c, deps) })
	g.POST("/similar", func(c *gin.Context) { handleFindSimilar(c, deps) })
}

// CheckDuplicateRequest asks whether a title duplicates an open request.
type CheckDuplicateRequest struct {
	Title    string         `json:"title" binding:"required"`
	Category types.Category `json:"category"`
}

// handleCheckDuplicate checks a title against the pending backlog.
func handleCheckDuplicate(c *gin.Context, deps Deps) {
	var req CheckDuplicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category == "" {
		req.Category = types.CategoryGeneral
	}

	result, err := deps.Dedup.CheckTitle(c.Request.Context(), req.Title, req.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check duplicates: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// FindSimilarRequest asks for titles similar to the given one, ranked.
type FindSimilarRequest struct {
	Title        string   `json:"title" binding:"required"`
	Titles       []string `json:"titles" binding:"required"`
	Limit        int      `json:"limit"`
	MinThreshold float64  `json:"min_threshold"`
}

// handleFindSimilar runs exploratory similarity search over a supplied
// title list, without touching the backlog.
func handleFindSimilar(c *gin.Context, deps Deps) {
	var req FindSimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	similar := deps.Dedup.Engine().FindSimilarTitles(req.Title, req.Titles, req.Limit, req.MinThreshold)
	c.JSON(http.StatusOK, gin.H{"similar": similar})
}
