package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prestaforge/content-engine/internal/service/document"
	"github.com/prestaforge/content-engine/internal/service/generation"
	"github.com/prestaforge/content-engine/internal/service/voice"
	"github.com/prestaforge/content-engine/pkg/logger"
)

type Handlers struct {
	Document *DocumentHandler
	Voice    *VoiceHandler
	Prompt   *PromptHandler
	Catalog  *CatalogHandler
}

func NewHandlers(
	documentService document.Service,
	voiceService voice.Service,
	generationService generation.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Document: NewDocumentHandler(documentService, log),
		Voice:    NewVoiceHandler(voiceService, log),
		Prompt:   NewPromptHandler(generationService, log),
		Catalog:  NewCatalogHandler(),
	}
}

// ErrorResponse is the uniform error shape for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// userID resolves the acting user. There is no authentication layer;
// callers identify themselves with the X-User-ID header.
func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

func handleError(c *gin.Context, log logger.Logger, status int, message string, err error) {
	log.Error(message,
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)

	response := ErrorResponse{
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(status, response)
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
