package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prestaforge/content-engine/internal/service/voice"
	"github.com/prestaforge/content-engine/pkg/logger"
)

type VoiceHandler struct {
	service voice.Service
	logger  logger.Logger
}

func NewVoiceHandler(service voice.Service, log logger.Logger) *VoiceHandler {
	return &VoiceHandler{
		service: service,
		logger:  log,
	}
}

// Submit accepts an audio clip and queues its transcription. Format
// validation happens in the job: an unsupported format resolves to a
// FAILED voice input, not a rejected request.
func (h *VoiceHandler) Submit(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Invalid audio upload", err)
		return
	}
	defer file.Close()

	language := c.PostForm("language")

	vi, err := h.service.Submit(c.Request.Context(), userID(c), file, header, language)
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to submit voice input", err)
		return
	}

	c.JSON(http.StatusCreated, vi)
}

// Get returns a voice input with its current status and, once
// COMPLETED, the transcription.
func (h *VoiceHandler) Get(c *gin.Context) {
	id := c.Param("id")

	vi, err := h.service.GetVoiceInput(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to get voice input", err)
		return
	}
	if vi == nil {
		handleError(c, h.logger, http.StatusNotFound, "Voice input not found", nil)
		return
	}

	c.JSON(http.StatusOK, vi)
}
