// Package handlers contains the thin gin layer over the store. Handlers do
// exactly two things: hand the store a verified user id plus a parsed body,
// and translate store errors into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskwell/taskwell/internal/apperr"
	"github.com/taskwell/taskwell/internal/model"
)

// Store is the persistence surface the handlers call.
type Store interface {
	CreateProject(ctx context.Context, userID string, req model.CreateProjectRequest) (*model.Project, error)
	GetProject(ctx context.Context, projectID string) (*model.Project, error)
	ListProjectsByUser(ctx context.Context, userID string, limit int32, cursor string) ([]*model.Project, string, error)
	UpdateProject(ctx context.Context, userID, projectID string, req model.UpdateProjectRequest) (*model.Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error

	CreateTask(ctx context.Context, userID, projectID string, req model.CreateTaskRequest) (*model.Task, error)
	GetTask(ctx context.Context, projectID, taskID string) (*model.Task, error)
	ListTasksByProject(ctx context.Context, projectID string, limit int32, cursor string) ([]*model.Task, string, error)
	UpdateTask(ctx context.Context, userID, projectID, taskID string, req model.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, userID, projectID, taskID string) error

	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
	PutProfile(ctx context.Context, userID string, req model.PutProfileRequest) (*model.UserProfile, error)
}

// respondError maps the store's error taxonomy to HTTP. Internal errors stay
// opaque apart from the correlation id; the cause is logged server-side under
// that id so the two can be matched up later.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	if ve, ok := apperr.IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "messages": ve.Messages})
		return
	}
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": "resource not found"})
		return
	}
	if errors.Is(err, apperr.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "invalid credentials"})
		return
	}
	ie := apperr.Internal(err)
	log.Error("request failed",
		zap.String("correlation_id", ie.CorrelationID),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL", "correlationId": ie.CorrelationID})
}

// pageParams reads the optional limit and cursor query parameters.
func pageParams(c *gin.Context) (int32, string) {
	var limit int32
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			limit = int32(n)
		}
	}
	return limit, c.Query("cursor")
}
