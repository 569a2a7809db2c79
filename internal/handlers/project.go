package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskwell/taskwell/internal/middleware"
	"github.com/taskwell/taskwell/internal/model"
)

type ProjectHandler struct {
	store Store
	log   *zap.Logger
}

func NewProjectHandler(store Store, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{store: store, log: log}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req model.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "messages": []string{"request body is not valid JSON"}})
		return
	}
	project, err := h.store.CreateProject(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.store.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	limit, cursor := pageParams(c)
	projects, next, err := h.store.ListProjectsByUser(c.Request.Context(), middleware.UserID(c), limit, cursor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := gin.H{"projects": projects}
	if next != "" {
		out["nextCursor"] = next
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req model.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "messages": []string{"request body is not valid JSON"}})
		return
	}
	project, err := h.store.UpdateProject(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.store.DeleteProject(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
