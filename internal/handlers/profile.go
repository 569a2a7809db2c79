package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taskwell/taskwell/internal/middleware"
	"github.com/taskwell/taskwell/internal/model"
)

type ProfileHandler struct {
	store Store
	log   *zap.Logger
}

func NewProfileHandler(store Store, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, log: log}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.store.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) PutProfile(c *gin.Context) {
	var req model.PutProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "VALIDATION_FAILED", "messages": []string{"request body is not valid JSON"}})
		return
	}
	profile, err := h.store.PutProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
