package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contentbot/ingest"
)

// RegisterAnalyzeRoutes registers intent analysis endpoints.
func RegisterAnalyzeRoutes(r *gin.Engine, deps Deps) {
	g := r.Group("/api/analyze")
	g.POST("", func(c *gin.Context) { handleAnalyze(c, deps) })
	g.POST("/message", func(c *gin.Context) { handleProcessMessage(c, deps) })
}

// AnalyzeRequest carries one message to classify.
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// handleAnalyze scores and classifies a message without side effects.
func handleAnalyze(c *gin.Context, deps Deps) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !deps.Analyzer.CouldBeRequest(req.Text) {
		c.JSON(http.StatusOK, gin.H{"could_be_request": false})
		return
	}

	score := deps.Analyzer.Score(req.Text)
	analysis := deps.Analyzer.Analyze(req.Text, score)

	c.JSON(http.StatusOK, gin.H{
		"could_be_request": true,
		"analysis":         analysis,
	})
}

// ProcessMessageRequest carries one chat message through the full pipeline.
type ProcessMessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text" binding:"required"`
}

// handleProcessMessage runs a message through analysis, duplicate check and
// persistence, exactly as the Kafka path does.
func handleProcessMessage(c *gin.Context, deps Deps) {
	var req ProcessMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := deps.Pipeline.ProcessMessage(c.Request.Context(), ingest.ChatMessage{
		UserID: req.UserID,
		Text:   req.Text,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message: " + err.Error()})
		return
	}

	response := gin.H{"outcome": result.Outcome}
	if result.Analysis != nil {
		response["analysis"] = result.Analysis
	}
	if result.Request != nil {
		response["request"] = result.Request
	}
	if len(result.Matches) > 0 {
		response["matches"] = result.Matches
	}
	c.JSON(http.StatusOK, response)
}
