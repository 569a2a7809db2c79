package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskwell/taskwell/internal/middleware"
	"github.com/taskwell/taskwell/internal/model"
)

type TaskHandler struct {
	store Store
	log   *zap.Logger
}

func NewTaskHandler(store Store, log *zap.Logger) *TaskHandler {
	return &TaskHandler{store: store, log: log}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "messages": []string{"request body is not valid JSON"}})
		return
	}
	task, err := h.store.CreateTask(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.store.GetTask(c.Request.Context(), c.Param("id"), c.Param("taskId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	limit, cursor := pageParams(c)
	tasks, next, err := h.store.ListTasksByProject(c.Request.Context(), c.Param("id"), limit, cursor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := gin.H{"tasks": tasks}
	if next != "" {
		out["nextCursor"] = next
	}
	c.JSON(http.StatusOK, out)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req model.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "messages": []string{"request body is not valid JSON"}})
		return
	}
	task, err := h.store.UpdateTask(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("taskId"), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.store.DeleteTask(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("taskId")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
