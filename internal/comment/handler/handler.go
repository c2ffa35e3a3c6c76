package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/go-comments/internal/comment"
	"github.com/gogotex/gogotex/backend/go-comments/internal/comment/service"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/logger"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/metrics"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/middleware"
)

// Response bodies are part of the public contract and must not change.
const (
	MsgFetchFailed  = "Failed to fetch comments"
	MsgCreateFailed = "Failed to create comment"
	MsgDeleteFailed = "Failed to delete comment"
	MsgNotFound     = "Comment not found"
	MsgDeleted      = "Comment deleted successfully"
)

// RegisterCommentRoutes mounts list, create and delete on r. The caller owns
// the mount point, e.g. r.Group("/api/comments"). The collection is served
// both with and without a trailing slash.
func RegisterCommentRoutes(r gin.IRouter, svc service.Service) {
	list := func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			fail(c, "list", http.StatusInternalServerError, MsgFetchFailed, err)
			return
		}
		metrics.CommentOperations.WithLabelValues("list", "ok").Inc()
		c.JSON(http.StatusOK, list)
	}

	create := func(c *gin.Context) {
		fields, err := readPayload(c)
		if err != nil {
			fail(c, "create", http.StatusInternalServerError, MsgCreateFailed, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), fields)
		if err != nil {
			fail(c, "create", http.StatusInternalServerError, MsgCreateFailed, err)
			return
		}
		metrics.CommentOperations.WithLabelValues("create", "ok").Inc()
		c.JSON(http.StatusCreated, created)
	}

	for _, p := range collectionPaths(r) {
		r.GET(p, list)
		r.POST(p, create)
	}

	r.DELETE("/:id", func(c *gin.Context) {
		err := svc.Delete(c.Request.Context(), c.Param("id"))
		switch {
		case err == nil:
			metrics.CommentOperations.WithLabelValues("delete", "ok").Inc()
			c.JSON(http.StatusOK, gin.H{"message": MsgDeleted})
		case service.Kind(err) == service.KindNotFound:
			fail(c, "delete", http.StatusNotFound, MsgNotFound, err)
		default:
			fail(c, "delete", http.StatusInternalServerError, MsgDeleteFailed, err)
		}
	})
}

// collectionPaths returns the relative paths for the collection routes.
// A mount point that already ends in "/" (the root included) gets one route,
// since "" and "/" resolve to the same path there.
func collectionPaths(r gin.IRouter) []string {
	if g, ok := r.(interface{ BasePath() string }); ok && strings.HasSuffix(g.BasePath(), "/") {
		return []string{""}
	}
	return []string{"", "/"}
}

// readPayload decodes the request body into a field map. An empty body is
// an empty comment; anything but a JSON object is ErrInvalidPayload.
func readPayload(c *gin.Context) (map[string]interface{}, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", comment.ErrInvalidPayload, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]interface{}{}, nil
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", comment.ErrInvalidPayload, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: body is null", comment.ErrInvalidPayload)
	}
	return fields, nil
}

// fail writes the fixed error body for op and records the underlying cause
// by kind. The wire response never carries the cause.
func fail(c *gin.Context, op string, status int, msg string, err error) {
	kind := service.Kind(err)
	metrics.CommentOperations.WithLabelValues(op, "error").Inc()
	metrics.StoreErrors.WithLabelValues(op, kind).Inc()
	rid := middleware.RequestIDFromContext(c)
	if kind == service.KindNotFound {
		logger.Debugf("comments %s: %v (request_id=%s)", op, err, rid)
	} else {
		logger.Errorf("comments %s failed: kind=%s request_id=%s: %v", op, kind, rid, err)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}
