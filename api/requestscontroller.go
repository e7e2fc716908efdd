package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"contentbot/notify"
	"contentbot/types"
)

const defaultPendingLimit = 50

// RegisterRequestRoutes registers request management endpoints.
func RegisterRequestRoutes(r *gin.Engine, deps Deps) {
	g := r.Group("/api/requests")
	g.POST("", func(c *gin.Context) { handleCreateRequest(c, deps) })
	g.GET("/:id", func(c *gin.Context) { handleGetRequest(c, deps) })
	g.GET("", func(c *gin.Context) { handleListPending(c, deps) })
	g.POST("/:id/fulfill", func(c *gin.Context) { handleFulfillRequest(c, deps) })
	g.POST("/:id/reject", func(c *gin.Context) { handleRejectRequest(c, deps) })
}

// CreateRequestRequest creates a request directly, bypassing intent
// analysis. Admins use this for requests made out of band.
type CreateRequestRequest struct {
	UserID   string         `json:"user_id"`
	Title    string         `json:"title" binding:"required"`
	Category types.Category `json:"category"`
	RawText  string         `json:"raw_text"`
}

func handleCreateRequest(c *gin.Context, deps Deps) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category == "" {
		req.Category = types.CategoryGeneral
	}

	ctx := c.Request.Context()

	dupResult, err := deps.Dedup.CheckTitle(ctx, req.Title, req.Category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check duplicates: " + err.Error()})
		return
	}
	if dupResult.IsDuplicate {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "duplicate",
			"matches": dupResult.Matches,
		})
		return
	}

	request := &types.Request{
		UserID:   req.UserID,
		Title:    req.Title,
		Category: req.Category,
		RawText:  req.RawText,
	}
	if err := deps.Store.Create(ctx, request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request: " + err.Error()})
		return
	}
	deps.Dedup.RecordTitle(ctx, request.Title, request.Category)
	publishEvent(c, deps, notify.EventRequestCreated, request)

	c.JSON(http.StatusCreated, request)
}

func handleGetRequest(c *gin.Context, deps Deps) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	request, err := deps.Store.Get(c.Request.Context(), id)
	if err == redis.Nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load request: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}

func handleListPending(c *gin.Context, deps Deps) {
	category := types.Category(c.DefaultQuery("category", string(types.CategoryGeneral)))
	limit := defaultPendingLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	candidates, err := deps.Store.GetPending(c.Request.Context(), category, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pending requests: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
		"pending":  candidates,
	})
}

// TransitionRequest carries optional admin notes for fulfill/reject.
type TransitionRequest struct {
	Notes string `json:"notes"`
}

func handleFulfillRequest(c *gin.Context, deps Deps) {
	transitionRequest(c, deps, deps.Store.Fulfill, notify.EventRequestFulfilled)
}

func handleRejectRequest(c *gin.Context, deps Deps) {
	transitionRequest(c, deps, deps.Store.Reject, notify.EventRequestRejected)
}

func transitionRequest(
	c *gin.Context,
	deps Deps,
	transition func(ctx context.Context, id int64, notes string) (*types.Request, error),
	eventType notify.EventType,
) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	request, err := transition(c.Request.Context(), id, req.Notes)
	if err == redis.Nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	publishEvent(c, deps, eventType, request)

	c.JSON(http.StatusOK, request)
}

func publishEvent(c *gin.Context, deps Deps, eventType notify.EventType, request *types.Request) {
	if deps.Publisher == nil {
		return
	}
	event := notify.Event{Type: eventType, Request: request, At: time.Now().UTC()}
	if err := deps.Publisher.Publish(c.Request.Context(), event); err != nil {
		// Lifecycle events are best effort from the API's perspective.
		c.Header("X-Event-Publish-Failed", "true")
	}
}
