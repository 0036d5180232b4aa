package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/prestaforge/content-engine/api/handlers"
	"github.com/prestaforge/content-engine/api/middleware"
)

// SetupRoutes wires every endpoint group onto the engine.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handlers.HealthCheck)

	docs := v1.Group("/documents")
	{
		docs.POST("/upload", h.Document.Upload)
		docs.POST("/batch", h.Document.UploadBatch)
		docs.GET("/:id", h.Document.Get)
		docs.GET("/:id/analysis", h.Document.GetAnalysis)
		docs.DELETE("/:id", h.Document.Delete)
	}

	// Extraction tasks live under their own group: the documents group
	// routes on /:id, which the router cannot mix with a static
	// segment.
	tasks := v1.Group("/tasks")
	{
		tasks.GET("/:taskId", h.Document.GetTaskStatus)
		tasks.DELETE("/:taskId", h.Document.CancelTask)
	}

	voice := v1.Group("/voice")
	{
		voice.POST("/upload", h.Voice.Submit)
		voice.GET("/:id", h.Voice.Get)
	}

	prompts := v1.Group("/prompts")
	{
		prompts.POST("", h.Prompt.Create)
		prompts.GET("", h.Prompt.List)
		prompts.GET("/:id", h.Prompt.Get)
	}

	generations := v1.Group("/generations")
	{
		generations.POST("", h.Prompt.Generate)
		generations.GET("/:id", h.Prompt.GetGeneration)
	}

	catalog := v1.Group("/catalog")
	{
		catalog.GET("/themes", h.Catalog.ListThemes)
		catalog.GET("/themes/:name", h.Catalog.GetTheme)
		catalog.GET("/templates", h.Catalog.ListTemplates)
		catalog.GET("/templates/:name", h.Catalog.GetTemplate)
	}
}
