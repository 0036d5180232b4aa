package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prestaforge/content-engine/internal/service/generation"
	"github.com/prestaforge/content-engine/pkg/logger"
)

type PromptHandler struct {
	service generation.Service
	logger  logger.Logger
}

func NewPromptHandler(service generation.Service, log logger.Logger) *PromptHandler {
	return &PromptHandler{
		service: service,
		logger:  log,
	}
}

type createPromptRequest struct {
	Text string `json:"text" binding:"required"`
}

type generateRequest struct {
	PromptID string `json:"promptId" binding:"required"`
}

// Create records a TEXT prompt.
func (h *PromptHandler) Create(c *gin.Context) {
	var req createPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	prompt, err := h.service.CreateTextPrompt(c.Request.Context(), userID(c), req.Text)
	if err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Failed to create prompt", err)
		return
	}

	c.JSON(http.StatusCreated, prompt)
}

// List returns the caller's prompts, newest first.
func (h *PromptHandler) List(c *gin.Context) {
	prompts, err := h.service.ListPrompts(c.Request.Context(), userID(c))
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to list prompts", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}

// Get returns one prompt.
func (h *PromptHandler) Get(c *gin.Context) {
	id := c.Param("id")

	prompt, err := h.service.GetPrompt(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to get prompt", err)
		return
	}
	if prompt == nil {
		handleError(c, h.logger, http.StatusNotFound, "Prompt not found", nil)
		return
	}

	c.JSON(http.StatusOK, prompt)
}

// Generate queues a presentation generation request for a prompt.
func (h *PromptHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	genReq, err := h.service.RequestGeneration(c.Request.Context(), userID(c), req.PromptID)
	if err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Failed to request generation", err)
		return
	}

	c.JSON(http.StatusAccepted, genReq)
}

// GetGeneration returns one generation request.
func (h *PromptHandler) GetGeneration(c *gin.Context) {
	id := c.Param("id")

	req, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to get generation request", err)
		return
	}
	if req == nil {
		handleError(c, h.logger, http.StatusNotFound, "Generation request not found", nil)
		return
	}

	c.JSON(http.StatusOK, req)
}
