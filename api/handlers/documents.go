package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prestaforge/content-engine/internal/service/document"
	"github.com/prestaforge/content-engine/pkg/logger"
)

type DocumentHandler struct {
	service document.Service
	logger  logger.Logger
}

func NewDocumentHandler(service document.Service, log logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  log,
	}
}

// Upload accepts a single document and queues its extraction.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Invalid file upload", err)
		return
	}
	defer file.Close()

	doc, err := h.service.Upload(c.Request.Context(), userID(c), file, header)
	if err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Failed to upload document", err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// UploadBatch accepts several documents in one multipart form.
func (h *DocumentHandler) UploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		handleError(c, h.logger, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		handleError(c, h.logger, http.StatusBadRequest, "No files provided", nil)
		return
	}

	docs, err := h.service.UploadBatch(c.Request.Context(), userID(c), files)
	if err != nil {
		// Documents accepted before the failure are reported alongside
		// the error.
		c.JSON(http.StatusMultiStatus, gin.H{
			"error":     err.Error(),
			"documents": docs,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   fmt.Sprintf("Accepted %d documents", len(docs)),
		"documents": docs,
	})
}

// Get returns one document record.
func (h *DocumentHandler) Get(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.service.GetDocument(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to get document", err)
		return
	}
	if doc == nil {
		handleError(c, h.logger, http.StatusNotFound, "Document not found", nil)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// GetAnalysis returns the extraction projection for a document.
func (h *DocumentHandler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")

	analysis, err := h.service.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to get analysis", err)
		return
	}
	if analysis == nil {
		handleError(c, h.logger, http.StatusNotFound, "Analysis not found", nil)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// Delete removes a document, its stored bytes and its analysis.
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	err := h.service.DeleteDocument(c.Request.Context(), id)
	if errors.Is(err, document.ErrNotFound) {
		handleError(c, h.logger, http.StatusNotFound, "Document not found", err)
		return
	}
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to delete document", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Document deleted",
		"id":      id,
	})
}

// GetTaskStatus reports the queue-side progress of an extraction task.
func (h *DocumentHandler) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		handleError(c, h.logger, http.StatusBadRequest, "Task ID is required", nil)
		return
	}

	status, err := h.service.GetTaskStatus(c.Request.Context(), taskID)
	if err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to get task status", err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// CancelTask removes a still-queued extraction task.
func (h *DocumentHandler) CancelTask(c *gin.Context) {
	taskID := c.Param("taskId")
	if taskID == "" {
		handleError(c, h.logger, http.StatusBadRequest, "Task ID is required", nil)
		return
	}

	if err := h.service.CancelTask(c.Request.Context(), taskID); err != nil {
		handleError(c, h.logger, http.StatusInternalServerError, "Failed to cancel task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task cancelled",
		"taskId":  taskID,
	})
}
